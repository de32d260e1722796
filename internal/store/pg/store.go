// Package pg implementa los repositorios sobre PostgreSQL usando pgxpool.
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cvision/internal/store/core"
)

// Config parámetros de conexión.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
}

// Store agrupa el pool y los repositorios.
type Store struct {
	Pool    *pgxpool.Pool
	Users   core.UserRepository
	Resumes core.ResumeRepository
}

// New abre el pool, verifica conectividad y arma los repositorios.
func New(ctx context.Context, cfg Config) (*Store, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}

	return &Store{
		Pool:    pool,
		Users:   &userRepo{pool: pool},
		Resumes: &resumeRepo{pool: pool},
	}, nil
}

// Close cierra el pool.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
