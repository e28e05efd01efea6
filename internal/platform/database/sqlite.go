package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"blockstream/internal/platform/config"
)

// Open connects to the SQLite file named in cfg and checks it is reachable.
func Open(cfg config.StorageConfig) (*sql.DB, error) {
	dsn := strings.TrimPrefix(cfg.SQLitePath, "file:")
	if dsn == "" {
		dsn = ":memory:"
	}
	if dsn != ":memory:" && !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 1
	}
	// Every new connection to :memory: would see an empty database.
	if dsn == ":memory:" {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
