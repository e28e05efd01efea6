package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"blockstream/internal/platform/models"
)

type SQLIndexingConfigRepository struct {
	db *sql.DB
}

func NewSQLIndexingConfigRepository(db *sql.DB) *SQLIndexingConfigRepository {
	return &SQLIndexingConfigRepository{db: db}
}

const indexingColumns = `id, name, type, enabled, filters, created_at, last_indexed_at`

func (r *SQLIndexingConfigRepository) Create(ctx context.Context, cfg *models.IndexingConfig) error {
	if cfg == nil || cfg.ID == "" {
		return ErrInvalidInput
	}

	filtersJSON, err := json.Marshal(cfg.Filters)
	if err != nil {
		return err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM indexing_configs WHERE id = ?)`, cfg.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrDuplicateKey
	}

	query := `
		INSERT INTO indexing_configs (id, name, type, enabled, filters, created_at, last_indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.Name,
		string(cfg.Type),
		cfg.Enabled,
		string(filtersJSON),
		toMillis(cfg.CreatedAt),
		nullMillis(cfg.LastIndexed),
	)
	return err
}

func (r *SQLIndexingConfigRepository) GetByID(ctx context.Context, id string) (*models.IndexingConfig, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+indexingColumns+` FROM indexing_configs WHERE id = ?`, id)
	c, err := scanIndexingConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *SQLIndexingConfigRepository) List(ctx context.Context) ([]*models.IndexingConfig, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+indexingColumns+` FROM indexing_configs ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := []*models.IndexingConfig{}
	for rows.Next() {
		c, err := scanIndexingConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (r *SQLIndexingConfigRepository) Update(ctx context.Context, cfg *models.IndexingConfig) error {
	if cfg == nil || cfg.ID == "" {
		return ErrInvalidInput
	}

	filtersJSON, err := json.Marshal(cfg.Filters)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE indexing_configs
		SET name = ?, type = ?, enabled = ?, filters = ?, last_indexed_at = ?
		WHERE id = ?
	`, cfg.Name, string(cfg.Type), cfg.Enabled, string(filtersJSON), nullMillis(cfg.LastIndexed), cfg.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanIndexingConfig(s scanner) (*models.IndexingConfig, error) {
	var c models.IndexingConfig
	var typ, filtersStr string
	var createdAt int64
	var lastIndexed sql.NullInt64

	if err := s.Scan(&c.ID, &c.Name, &typ, &c.Enabled, &filtersStr, &createdAt, &lastIndexed); err != nil {
		return nil, err
	}

	c.Type = models.IndexingType(typ)
	c.CreatedAt = fromMillis(createdAt)
	c.LastIndexed = fromNullMillis(lastIndexed)
	if err := json.Unmarshal([]byte(filtersStr), &c.Filters); err != nil {
		return nil, fmt.Errorf("decode filters of indexing config %s: %w", c.ID, err)
	}
	return &c, nil
}
