package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"blockstream/internal/pkg/logger"
	"blockstream/internal/platform/config"
	"blockstream/internal/platform/database"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: configs/config.yaml)")
	envDir := flag.String("env", ".", "Directory holding .env files")
	dbPath := flag.String("db", "", "SQLite file to migrate (overrides storage.sqlite_path)")
	seed := flag.Bool("seed", false, "Insert the fixture records after migrating")

	flag.Parse()

	cfg, err := config.Load(*configPath, *envDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Logging)

	storage := cfg.Storage
	if *dbPath != "" {
		storage.SQLitePath = *dbPath
	}

	db, err := database.Open(storage)
	if err != nil {
		log.Fatal().Err(err).Str("path", storage.SQLitePath).Msg("failed to open database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if *seed {
		if err := database.Seed(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
	}

	fmt.Println("Migration completed successfully")
}
