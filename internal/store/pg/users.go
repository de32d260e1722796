package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cvision/internal/store/core"
)

type userRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, name, email, password_hash, refresh_token_hashes, created_at, updated_at`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RefreshTokenHashes, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, in core.CreateUserInput) (*core.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO app_user (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		in.Name, in.Email, in.PasswordHash,
	)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, core.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE email = $1`, email)
	return scanUser(row)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*core.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1`, id)
	return scanUser(row)
}

// AppendRefreshTokenHash agrega el hash y recorta por el frente en una sola
// sentencia: nunca hay una ventana donde la lista exceda el tope, y dos
// appends concurrentes no se pisan entre sí.
func (r *userRepo) AppendRefreshTokenHash(ctx context.Context, userID, hash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE app_user
		   SET refresh_token_hashes = (
		         SELECT coalesce(array_agg(h ORDER BY ord), '{}')
		           FROM unnest(array_append(refresh_token_hashes, $2)) WITH ORDINALITY AS t(h, ord)
		          WHERE ord > greatest(coalesce(array_length(refresh_token_hashes, 1), 0) + 1 - $3, 0)
		       ),
		       updated_at = now()
		 WHERE id = $1`,
		userID, hash, core.MaxRefreshTokenHashes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *userRepo) RemoveRefreshTokenHash(ctx context.Context, userID, hash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE app_user
		   SET refresh_token_hashes = array_remove(refresh_token_hashes, $2),
		       updated_at = now()
		 WHERE id = $1`,
		userID, hash,
	)
	return err
}

func (r *userRepo) ClearRefreshTokenHashes(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE app_user
		   SET refresh_token_hashes = '{}',
		       updated_at = now()
		 WHERE id = $1`,
		userID,
	)
	return err
}

func (r *userRepo) HasRefreshTokenHash(ctx context.Context, userID, hash string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT $2 = ANY(refresh_token_hashes) FROM app_user WHERE id = $1`,
		userID, hash,
	).Scan(&ok)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, core.ErrNotFound
		}
		return false, err
	}
	return ok, nil
}
