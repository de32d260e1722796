package pg

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cvision/internal/observability/logger"
)

// MigrateUp aplica todas las migraciones *_up.sql del filesystem dado,
// en orden ascendente por nombre. Cada archivo se ejecuta completo; los
// scripts deben ser idempotentes (IF NOT EXISTS) porque no llevamos
// tabla de versiones.
func MigrateUp(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	return migrate(ctx, pool, fsys, "_up.sql", false)
}

// MigrateDown aplica las migraciones *_down.sql en orden inverso.
func MigrateDown(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	return migrate(ctx, pool, fsys, "_down.sql", true)
}

func migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, suffix string, reverse bool) error {
	log := logger.L().With(logger.Component("pg.migrate"))

	names, err := planMigrations(fsys, suffix, reverse)
	if err != nil {
		return fmt.Errorf("pg: list migrations: %w", err)
	}
	if len(names) == 0 {
		log.Info("no migrations to apply", logger.String("suffix", suffix))
		return nil
	}

	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("pg: read %s: %w", name, err)
		}
		start := time.Now()
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("pg: exec %s: %w", name, err)
		}
		log.Info("migration applied",
			logger.String("file", name),
			logger.Duration(time.Since(start)),
		)
	}
	return nil
}

// planMigrations lista los scripts con el sufijo dado en orden de
// aplicación: ascendente por nombre, invertido para los down.
func planMigrations(fsys fs.FS, suffix string, reverse bool) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}
