package repositories

import (
	"context"
	"database/sql"
	"errors"

	"blockstream/internal/platform/models"
)

type SQLStatusRepository struct {
	db *sql.DB
}

func NewSQLStatusRepository(db *sql.DB) *SQLStatusRepository {
	return &SQLStatusRepository{db: db}
}

func (r *SQLStatusRepository) Get(ctx context.Context) (models.SystemStatus, error) {
	var s models.SystemStatus
	var lastEvent int64
	err := r.db.QueryRowContext(ctx, `
		SELECT webhooks_active, indexers_running, db_connected, last_event, uptime
		FROM system_status WHERE id = 1
	`).Scan(&s.WebhooksActive, &s.IndexersRunning, &s.DBConnected, &lastEvent, &s.Uptime)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SystemStatus{}, ErrNotFound
	}
	if err != nil {
		return models.SystemStatus{}, err
	}
	s.LastEvent = fromMillis(lastEvent)
	return s, nil
}

func (r *SQLStatusRepository) Save(ctx context.Context, s models.SystemStatus) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_status (id, webhooks_active, indexers_running, db_connected, last_event, uptime)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			webhooks_active=excluded.webhooks_active,
			indexers_running=excluded.indexers_running,
			db_connected=excluded.db_connected,
			last_event=excluded.last_event,
			uptime=excluded.uptime
	`, s.WebhooksActive, s.IndexersRunning, s.DBConnected, toMillis(s.LastEvent), s.Uptime)
	return err
}

// NewSQLSet wires every SQL repository over one connection pool.
func NewSQLSet(db *sql.DB) Set {
	return Set{
		Webhooks:    NewSQLWebhookRepository(db),
		Indexing:    NewSQLIndexingConfigRepository(db),
		Database:    NewSQLDatabaseConfigRepository(db),
		NFTBids:     NewSQLNFTBidRepository(db),
		TokenPrices: NewSQLTokenPriceRepository(db),
		Status:      NewSQLStatusRepository(db),
	}
}
