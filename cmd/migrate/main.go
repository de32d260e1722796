package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cvision/internal/config"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/store/pg"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "Path del YAML de configuración")
		dir        = flag.String("dir", "migrations/postgres", "Directorio con *_up.sql y *_down.sql")
	)
	flag.Parse()

	// Posicional: [up|down]
	action := "up"
	if args := flag.Args(); len(args) >= 1 && args[0] != "" {
		action = strings.ToLower(args[0])
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: "info", ServiceName: "cvision-migrate"})
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	fsys := os.DirFS(*dir)

	switch action {
	case "up":
		if err := pg.MigrateUp(ctx, pool, fsys); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("up migrations completed")
	case "down":
		if err := pg.MigrateDown(ctx, pool, fsys); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		log.Println("down migrations completed")
	default:
		log.Fatalf("unknown action %q. Use: up | down", action)
	}
}
