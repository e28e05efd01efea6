package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"blockstream/internal/engine/status"
	"blockstream/internal/pkg/logger"
	"blockstream/internal/platform/config"
	"blockstream/internal/platform/database"
	"blockstream/internal/platform/repositories"
	"blockstream/internal/workers"
)

// The worker refreshes the persisted status snapshot out of process, so it
// only makes sense against the sqlite store shared with the server.
func main() {
	configPath := flag.String("config", "", "Path to config file (default: configs/config.yaml)")
	envDir := flag.String("env", ".", "Directory holding .env files")
	interval := flag.Duration("interval", 0, "Refresh interval (overrides status.refresh_interval)")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Logging)

	if cfg.Storage.Driver != config.StorageSQLite {
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("worker requires the sqlite storage driver")
	}

	every := cfg.Status.RefreshInterval
	if *interval > 0 {
		every = *interval
	}
	if every <= 0 {
		every = time.Minute
	}

	db, err := database.Open(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	refresher := status.NewRefresher(repositories.NewSQLSet(db), time.Now())

	log.Info().Dur("interval", every).Msg("starting blockstream background workers")
	runner := workers.NewRunner()
	runner.Start(ctx, workers.Job{
		Name:     "status-refresh",
		Interval: every,
		Run: func(ctx context.Context) error {
			s, err := refresher.Refresh(ctx)
			if err != nil {
				return err
			}
			log.Info().
				Int("webhooks_active", s.WebhooksActive).
				Int("indexers_running", s.IndexersRunning).
				Bool("db_connected", s.DBConnected).
				Msg("status refreshed")
			return nil
		},
	})

	<-ctx.Done()
	runner.Wait()
	log.Info().Msg("workers stopped")
}
