package core

import "time"

// MaxRefreshTokenHashes acota la cantidad de sesiones activas por usuario.
// La lista se recorta por el frente (FIFO): siempre quedan los 3 más nuevos.
const MaxRefreshTokenHashes = 3

// User es el registro de credenciales de una cuenta.
// PasswordHash nil señala una cuenta social-only (sin login por password).
// RefreshTokenHashes guarda digests SHA-256 de los refresh tokens vigentes,
// nunca el token crudo.
type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       *string
	RefreshTokenHashes []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateUserInput datos para crear una cuenta.
type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash *string
}

// Resume es un CV subido por un usuario, con el resultado del análisis
// externo una vez disponible.
type Resume struct {
	ID              string
	UserID          string
	FileName        string
	FilePath        string
	Score           *int
	Skills          []string
	ExperienceYears *int
	Education       *string
	UploadedAt      time.Time
}

// ResumeAnalysis es el resultado del análisis del motor externo.
type ResumeAnalysis struct {
	Score           int
	Skills          []string
	ExperienceYears int
	Education       string
}

// CreateResumeInput datos para registrar un CV recién subido.
type CreateResumeInput struct {
	UserID   string
	FileName string
	FilePath string
}
