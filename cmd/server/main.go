package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"keyproof/internal/identity"
	"keyproof/internal/identity/handler"
	identitymetrics "keyproof/internal/identity/metrics"
	"keyproof/internal/platform/config"
	"keyproof/internal/platform/httpserver"
	"keyproof/internal/platform/logger"
	"keyproof/internal/platform/metrics"
	"keyproof/internal/platform/postgres"
	redisclient "keyproof/internal/platform/redis"
	"keyproof/pkg/platform/middleware/admin"
)

// main wires the pipeline, then either runs one driver and exits (-once) or
// serves the read model, operator triggers, health and metrics until
// interrupted. Scheduling sweeps is left to whatever calls the triggers.
func main() {
	configPath := flag.String("config", os.Getenv("KEYPROOF_CONFIG"), "path to an optional YAML config file")
	once := flag.String("once", "", "run a single driver (store, sources, profiles) and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redis, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redis != nil {
		defer redis.Close()
	}

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	backends := identity.Backends{Postgres: db}
	if redis != nil {
		backends.Redis = redis.Client
	}

	svc, err := identity.New(ctx, cfg, backends, identity.Sources{}, log, identitymetrics.New())
	if err != nil {
		log.Error("failed to build identity pipeline", "error", err)
		os.Exit(1)
	}

	if *once != "" {
		if err := runOnce(ctx, svc, *once); err != nil {
			log.Error("driver failed", "driver", *once, "error", err)
			os.Exit(1)
		}
		return
	}

	router := newRouter(cfg, svc, log, redis, db)
	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting keyproof", "addr", cfg.Server.Addr, "network", cfg.Network.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func runOnce(ctx context.Context, svc *identity.Service, driver string) error {
	report, err := svc.Run(ctx, driver)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(report)
}

func newRouter(cfg *config.Config, svc *identity.Service, log *slog.Logger, redis *redisclient.Client, db *sql.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	checks := map[string]handler.Check{}
	if redis != nil {
		checks["redis"] = redis.Health
	}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	r.Method(http.MethodGet, "/health", handler.NewHealth(checks))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	h := handler.New(svc, log, metrics.New())
	h.Register(r)
	if cfg.Server.AdminToken == "" {
		log.Warn("server.adminToken not set, sweep triggers disabled")
		return r
	}
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(cfg.Server.AdminToken, log))
		h.RegisterAdmin(r)
	})
	return r
}
