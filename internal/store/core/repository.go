package core

import "context"

// UserRepository es el contrato del credential store.
// Todas las operaciones sobre refresh_token_hashes son sentencias atómicas
// del lado del store: no hay read-modify-write en la aplicación.
type UserRepository interface {
	// Create inserta la cuenta. Email duplicado retorna ErrConflict.
	Create(ctx context.Context, in CreateUserInput) (*User, error)

	// GetByEmail busca por email normalizado. ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca por ID. ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*User, error)

	// AppendRefreshTokenHash agrega un hash al final de la lista recortando
	// por el frente para que nunca queden más de MaxRefreshTokenHashes.
	AppendRefreshTokenHash(ctx context.Context, userID, hash string) error

	// RemoveRefreshTokenHash quita exactamente ese hash (no-op si no está).
	RemoveRefreshTokenHash(ctx context.Context, userID, hash string) error

	// ClearRefreshTokenHashes vacía la lista (revoca todas las sesiones).
	ClearRefreshTokenHashes(ctx context.Context, userID string) error

	// HasRefreshTokenHash verifica pertenencia del hash en la lista vigente.
	HasRefreshTokenHash(ctx context.Context, userID, hash string) (bool, error)
}

// ResumeRepository es el contrato del resume store.
type ResumeRepository interface {
	Create(ctx context.Context, in CreateResumeInput) (*Resume, error)
	SetAnalysis(ctx context.Context, id string, a ResumeAnalysis) error
	GetByID(ctx context.Context, id string) (*Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
}
