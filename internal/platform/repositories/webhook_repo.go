package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"blockstream/internal/platform/models"
)

type SQLWebhookRepository struct {
	db *sql.DB
}

func NewSQLWebhookRepository(db *sql.DB) *SQLWebhookRepository {
	return &SQLWebhookRepository{db: db}
}

const webhookColumns = `id, name, url, api_key, status, events, created_at, last_triggered_at`

func (r *SQLWebhookRepository) Create(ctx context.Context, webhook *models.WebhookConfig) error {
	if webhook == nil || webhook.ID == "" {
		return ErrInvalidInput
	}

	eventsJSON, err := json.Marshal(webhook.Events)
	if err != nil {
		return err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM webhooks WHERE id = ?)`, webhook.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrDuplicateKey
	}

	query := `
		INSERT INTO webhooks (id, name, url, api_key, status, events, created_at, last_triggered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		webhook.ID,
		webhook.Name,
		webhook.URL,
		webhook.APIKey,
		string(webhook.Status),
		string(eventsJSON),
		toMillis(webhook.CreatedAt),
		nullMillis(webhook.LastTriggered),
	)
	return err
}

func (r *SQLWebhookRepository) GetByID(ctx context.Context, id string) (*models.WebhookConfig, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+webhookColumns+` FROM webhooks WHERE id = ?`, id)
	w, err := scanWebhook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return w, err
}

func (r *SQLWebhookRepository) List(ctx context.Context) ([]*models.WebhookConfig, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+webhookColumns+` FROM webhooks ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	webhooks := []*models.WebhookConfig{}
	for rows.Next() {
		w, err := scanWebhook(rows)
		if err != nil {
			return nil, err
		}
		webhooks = append(webhooks, w)
	}
	return webhooks, rows.Err()
}

// Update rewrites every mutable column. created_at is never touched.
func (r *SQLWebhookRepository) Update(ctx context.Context, webhook *models.WebhookConfig) error {
	if webhook == nil || webhook.ID == "" {
		return ErrInvalidInput
	}

	eventsJSON, err := json.Marshal(webhook.Events)
	if err != nil {
		return err
	}

	query := `
		UPDATE webhooks
		SET name = ?, url = ?, api_key = ?, status = ?, events = ?, last_triggered_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		webhook.Name,
		webhook.URL,
		webhook.APIKey,
		string(webhook.Status),
		string(eventsJSON),
		nullMillis(webhook.LastTriggered),
		webhook.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanWebhook(s scanner) (*models.WebhookConfig, error) {
	var w models.WebhookConfig
	var status, eventsStr string
	var createdAt int64
	var lastTriggered sql.NullInt64

	if err := s.Scan(&w.ID, &w.Name, &w.URL, &w.APIKey, &status, &eventsStr, &createdAt, &lastTriggered); err != nil {
		return nil, err
	}

	w.Status = models.WebhookStatus(status)
	w.CreatedAt = fromMillis(createdAt)
	w.LastTriggered = fromNullMillis(lastTriggered)
	if err := json.Unmarshal([]byte(eventsStr), &w.Events); err != nil {
		return nil, fmt.Errorf("decode events of webhook %s: %w", w.ID, err)
	}
	return &w, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
