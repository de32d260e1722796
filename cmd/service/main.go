package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/cvision/internal/cache"
	"github.com/dropDatabas3/cvision/internal/config"
	"github.com/dropDatabas3/cvision/internal/email"
	"github.com/dropDatabas3/cvision/internal/files"
	authctrl "github.com/dropDatabas3/cvision/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/cvision/internal/http/controllers/health"
	resumectrl "github.com/dropDatabas3/cvision/internal/http/controllers/resume"
	"github.com/dropDatabas3/cvision/internal/http/router"
	authsvc "github.com/dropDatabas3/cvision/internal/http/services/auth"
	healthsvc "github.com/dropDatabas3/cvision/internal/http/services/health"
	resumesvc "github.com/dropDatabas3/cvision/internal/http/services/resume"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/observability/metrics"
	"github.com/dropDatabas3/cvision/internal/rate"
	"github.com/dropDatabas3/cvision/internal/scoring"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
	"github.com/dropDatabas3/cvision/internal/security/otp"
	"github.com/dropDatabas3/cvision/internal/store/pg"
	"github.com/jackc/pgx/v5/pgxpool"

	migrations "github.com/dropDatabas3/cvision/migrations/postgres"
)

func main() {
	// .env es opcional; las variables del sistema pisan al YAML igual
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	configPath := flag.String("config", envOr("CONFIG_PATH", "configs/config.yaml"), "Path del YAML de configuración")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       envOr("LOG_LEVEL", "info"),
		ServiceName: "cvision",
		Version:     os.Getenv("SERVICE_VERSION"),
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.L().With(logger.Component("main"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	pgCfg := pg.Config{
		DSN:      cfg.Storage.DSN,
		MaxConns: int32(cfg.Storage.Postgres.MaxConns),
		MinConns: int32(cfg.Storage.Postgres.MinConns),
	}
	if d, err := time.ParseDuration(cfg.Storage.Postgres.ConnMaxLifetime); err == nil {
		pgCfg.ConnMaxLifetime = d
	}
	store, err := pg.New(ctx, pgCfg)
	if err != nil {
		lg.Fatal("postgres init failed", logger.Err(err))
	}
	defer store.Close()

	if cfg.Flags.Migrate {
		if err := pg.MigrateUp(ctx, store.Pool, migrations.FS); err != nil {
			lg.Fatal("migrations failed", logger.Err(err))
		}
	}

	// --- Cache ---
	cacheTTL, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
	cacheClient, err := cache.New(cache.Config{
		Driver:     cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: cacheTTL,
	})
	if err != nil {
		lg.Fatal("cache init failed", logger.Err(err))
	}
	defer func() { _ = cacheClient.Close() }()

	// --- JWT ---
	issuer, err := jwtx.NewIssuer(cfg.JWT.Issuer, cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)
	if err != nil {
		lg.Fatal("jwt issuer init failed", logger.Err(err))
	}
	if d := cfg.AccessTTL(); d > 0 {
		issuer.AccessTTL = d
	}
	if d := cfg.RefreshTTL(); d > 0 {
		issuer.RefreshTTL = d
	}

	// --- Seguridad ---
	bl := blacklist.New(cacheClient)
	otpStore := otp.NewStore(cacheClient)
	if d := cfg.OTPTTL(); d > 0 {
		otpStore.TTL = d
	}

	// --- Email ---
	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:               cfg.SMTP.Host,
		Port:               cfg.SMTP.Port,
		Username:           cfg.SMTP.Username,
		Password:           cfg.SMTP.Password,
		FromEmail:          cfg.SMTP.From,
		TLSMode:            cfg.SMTP.TLS,
		InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
	})
	sendOTP := func(to, name, code string, ttl time.Duration) error {
		return email.SendOTP(sender, to, name, code, ttl)
	}

	// --- Scoring ---
	var analyzer scoring.Analyzer
	var scoringCheck func(ctx context.Context) error
	if cfg.Scoring.EngineURL != "" {
		client := scoring.NewClient(scoring.Config{
			BaseURL: cfg.Scoring.EngineURL,
			Timeout: cfg.ScoringTimeout(),
		})
		analyzer = client
		scoringCheck = client.Ping
	} else {
		lg.Warn("scoring engine not configured, resumes won't be analyzed")
	}

	// --- Archivos ---
	uploadsDir := cfg.Uploads.Dir
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	fileStore := files.NewDiskStore(uploadsDir)

	// --- Services ---
	services := authsvc.NewServices(authsvc.Deps{
		Users:     store.Users,
		Issuer:    issuer,
		OTPStore:  otpStore,
		Blacklist: bl,
		SendOTP:   sendOTP,
	})
	resumeService := resumesvc.NewService(resumesvc.Deps{
		Resumes:  store.Resumes,
		Files:    fileStore,
		Analyzer: analyzer,
	})
	healthService := healthsvc.NewHealthService(healthsvc.Deps{
		Issuer:       issuer,
		DBCheck:      func(ctx context.Context) error { return store.Pool.Ping(ctx) },
		CacheCheck:   cacheClient.Ping,
		ScoringCheck: scoringCheck,
	})

	// --- Controllers ---
	authControllers := authctrl.NewControllers(services, store.Users, authctrl.CookieConfig{
		Name:     cfg.Auth.Session.CookieName,
		Domain:   cfg.Auth.Session.Domain,
		SameSite: cfg.Auth.Session.SameSite,
		Secure:   cfg.Auth.Session.Secure,
		TTL:      issuer.RefreshTTL,
	})
	resumeController := resumectrl.NewController(resumeService)
	healthController := healthctrl.NewHealthController(healthService)

	// --- Métricas ---
	metricsHandler, err := metrics.Register(metrics.Config{
		Pool: func() *pgxpool.Pool { return store.Pool },
	})
	if err != nil {
		lg.Fatal("metrics init failed", logger.Err(err))
	}

	// --- Rate limiting ---
	var sendOTPLimiter, loginLimiter, refreshLimiter rate.Limiter
	if cfg.Rate.Enabled {
		sendOTPLimiter = buildLimiter(cfg, cfg.Rate.SendOTP.Limit, cfg.Rate.SendOTP.Window, "rl:otp:")
		loginLimiter = buildLimiter(cfg, cfg.Rate.Login.Limit, cfg.Rate.Login.Window, "rl:login:")
		refreshLimiter = buildLimiter(cfg, cfg.Rate.Refresh.Limit, cfg.Rate.Refresh.Window, "rl:refresh:")
	}

	handler := router.New(router.Deps{
		Auth:               authControllers,
		Resume:             resumeController,
		Health:             healthController,
		Issuer:             issuer,
		Blacklist:          bl,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		SendOTPLimiter:     sendOTPLimiter,
		LoginLimiter:       loginLimiter,
		RefreshLimiter:     refreshLimiter,
		MetricsHandler:     metricsHandler,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second, // uploads + análisis sincrónico
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		lg.Info("server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", logger.Err(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown error", logger.Err(err))
	}
}

// buildLimiter crea el limiter según el backend de cache configurado.
// Con cache en memoria el límite es por proceso.
func buildLimiter(cfg *config.Config, limit int, window string, prefix string) rate.Limiter {
	if limit <= 0 {
		return nil
	}
	w, err := time.ParseDuration(window)
	if err != nil || w <= 0 {
		return nil
	}
	if cfg.Cache.Kind == "redis" {
		client := rdb.NewClient(&rdb.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		return rate.NewRedisLimiter(client, cfg.Cache.Redis.Prefix+prefix, limit, w)
	}
	return rate.NewMemoryLimiter(limit, w)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
