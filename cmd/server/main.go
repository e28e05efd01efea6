package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"blockstream/internal/api"
	"blockstream/internal/api/handlers"
	"blockstream/internal/api/middleware"
	"blockstream/internal/engine/dataaccess"
	"blockstream/internal/engine/status"
	"blockstream/internal/pkg/logger"
	"blockstream/internal/platform/audit"
	"blockstream/internal/platform/config"
	"blockstream/internal/platform/database"
	"blockstream/internal/platform/ids"
	"blockstream/internal/platform/observability"
	"blockstream/internal/platform/repositories"
	"blockstream/internal/platform/repositories/memory"
	"blockstream/internal/workers"
)

const auditCapacity = 500

func main() {
	configPath := flag.String("config", "", "Path to config file (default: configs/config.yaml)")
	envDir := flag.String("env", ".", "Directory holding .env files")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Logging)

	gen, err := ids.New(cfg.IDs.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create id generator")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	repos, db, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open storage")
	}
	if db != nil {
		defer db.Close()
	}

	// Observability
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace)
	}
	auditLog := audit.NewLogger(auditCapacity, gen, audit.WithHook(metrics.IncAudit))

	// Services
	svc := dataaccess.NewService(repos, gen,
		dataaccess.WithWorkers(cfg.DataAccess.Workers),
		dataaccess.WithMetrics(metrics),
		dataaccess.WithAudit(auditLog),
	)
	defer svc.Close()

	started := time.Now()
	refresher := status.NewRefresher(repos, started, status.WithMetrics(metrics))

	// Background jobs
	runner := workers.NewRunner()
	runner.Start(ctx, workers.Job{
		Name:     "status-refresh",
		Interval: cfg.Status.RefreshInterval,
		Run: func(ctx context.Context) error {
			_, err := refresher.Refresh(ctx)
			return err
		},
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.WritePerMinute)
	go limiter.Cleanup(ctx, time.Minute)

	// Handlers
	checks := map[string]handlers.Check{
		"storage": storageCheck(db, svc),
	}
	deps := &api.Dependencies{
		WebhookHandler:   handlers.NewWebhookHandler(svc),
		IndexingHandler:  handlers.NewIndexingHandler(svc),
		DatabaseHandler:  handlers.NewDatabaseHandler(svc),
		ExplorerHandler:  handlers.NewExplorerHandler(svc),
		DashboardHandler: handlers.NewDashboardHandler(svc),
		StatusHandler:    handlers.NewStatusHandler(svc),
		AuditHandler:     handlers.NewAuditHandler(auditLog),
		HealthHandler:    handlers.NewHealthHandler(checks),
		MetricsHandler:   handlers.NewMetricsHandler(metrics),
		RateLimiter:      limiter,
		IDs:              gen,
		Metrics:          metrics,
		TrustProxy:       cfg.Server.TrustProxy,
	}
	router := api.NewRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Msg("server starting")
		auditLog.Event(audit.LevelInfo, "System started successfully")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	runner.Wait()
	log.Info().Msg("server stopped")
}

// openStorage returns the repository set for the configured driver. The
// *sql.DB is nil for the in-memory driver.
func openStorage(ctx context.Context, cfg config.StorageConfig) (repositories.Set, *sql.DB, error) {
	if cfg.Driver == config.StorageMemory {
		repos, err := memory.NewSeeded()
		return repos, nil, err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return repositories.Set{}, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return repositories.Set{}, nil, err
	}
	if cfg.Seed {
		if err := database.Seed(ctx, db); err != nil {
			db.Close()
			return repositories.Set{}, nil, err
		}
	}
	return repositories.NewSQLSet(db), db, nil
}

func storageCheck(db *sql.DB, svc *dataaccess.Service) handlers.Check {
	if db != nil {
		return db.PingContext
	}
	return func(ctx context.Context) error {
		_, err := svc.GetSystemStatus(ctx)
		return err
	}
}
