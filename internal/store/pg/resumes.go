package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cvision/internal/store/core"
)

type resumeRepo struct{ pool *pgxpool.Pool }

const resumeColumns = `id, user_id, file_name, file_path, score, skills, experience_years, education, uploaded_at`

func scanResume(row pgx.Row) (*core.Resume, error) {
	var r core.Resume
	err := row.Scan(&r.ID, &r.UserID, &r.FileName, &r.FilePath, &r.Score, &r.Skills, &r.ExperienceYears, &r.Education, &r.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (r *resumeRepo) Create(ctx context.Context, in core.CreateResumeInput) (*core.Resume, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO resume (user_id, file_name, file_path)
		VALUES ($1, $2, $3)
		RETURNING `+resumeColumns,
		in.UserID, in.FileName, in.FilePath,
	)
	return scanResume(row)
}

func (r *resumeRepo) SetAnalysis(ctx context.Context, id string, a core.ResumeAnalysis) error {
	skills := a.Skills
	if skills == nil {
		skills = []string{}
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE resume
		   SET score = $2, skills = $3, experience_years = $4, education = $5
		 WHERE id = $1`,
		id, a.Score, skills, a.ExperienceYears, a.Education,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*core.Resume, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resume WHERE id = $1`, id)
	return scanResume(row)
}

func (r *resumeRepo) ListByUser(ctx context.Context, userID string) ([]core.Resume, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resumeColumns+`
		  FROM resume
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Resume
	for rows.Next() {
		var rec core.Resume
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.FileName, &rec.FilePath, &rec.Score, &rec.Skills, &rec.ExperienceYears, &rec.Education, &rec.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
