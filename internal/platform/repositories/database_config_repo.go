package repositories

import (
	"context"
	"database/sql"
	"errors"

	"blockstream/internal/platform/models"
)

// SQLDatabaseConfigRepository keeps the singleton in row id 1.
type SQLDatabaseConfigRepository struct {
	db *sql.DB
}

func NewSQLDatabaseConfigRepository(db *sql.DB) *SQLDatabaseConfigRepository {
	return &SQLDatabaseConfigRepository{db: db}
}

func (r *SQLDatabaseConfigRepository) Get(ctx context.Context) (models.DatabaseConfig, error) {
	var c models.DatabaseConfig
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT host, port, username, password, database_name, ssl, status
		FROM database_config WHERE id = 1
	`).Scan(&c.Host, &c.Port, &c.Username, &c.Password, &c.Database, &c.SSL, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DatabaseConfig{}, ErrNotFound
	}
	if err != nil {
		return models.DatabaseConfig{}, err
	}
	c.Status = models.DatabaseStatus(status)
	return c, nil
}

func (r *SQLDatabaseConfigRepository) Save(ctx context.Context, c models.DatabaseConfig) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO database_config (id, host, port, username, password, database_name, ssl, status)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			host=excluded.host,
			port=excluded.port,
			username=excluded.username,
			password=excluded.password,
			database_name=excluded.database_name,
			ssl=excluded.ssl,
			status=excluded.status
	`, c.Host, c.Port, c.Username, c.Password, c.Database, c.SSL, string(c.Status))
	return err
}
