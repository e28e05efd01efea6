// Package repositories defines the storage contracts behind the data access layer
// and their SQLite implementations. In-memory implementations live in the memory
// subpackage.
package repositories

import (
	"context"

	"blockstream/internal/platform/models"
)

type WebhookRepository interface {
	List(ctx context.Context) ([]*models.WebhookConfig, error)
	GetByID(ctx context.Context, id string) (*models.WebhookConfig, error)
	Create(ctx context.Context, webhook *models.WebhookConfig) error
	Update(ctx context.Context, webhook *models.WebhookConfig) error
}

type IndexingConfigRepository interface {
	List(ctx context.Context) ([]*models.IndexingConfig, error)
	GetByID(ctx context.Context, id string) (*models.IndexingConfig, error)
	Create(ctx context.Context, cfg *models.IndexingConfig) error
	Update(ctx context.Context, cfg *models.IndexingConfig) error
}

// DatabaseConfigRepository stores the single target-database profile.
type DatabaseConfigRepository interface {
	Get(ctx context.Context) (models.DatabaseConfig, error)
	Save(ctx context.Context, cfg models.DatabaseConfig) error
}

// NFTBidRepository and TokenPriceRepository are read-only.
type NFTBidRepository interface {
	List(ctx context.Context) ([]*models.NFTBid, error)
	GetByID(ctx context.Context, id string) (*models.NFTBid, error)
}

type TokenPriceRepository interface {
	List(ctx context.Context) ([]*models.TokenPrice, error)
	GetByID(ctx context.Context, id string) (*models.TokenPrice, error)
}

type StatusRepository interface {
	Get(ctx context.Context) (models.SystemStatus, error)
	Save(ctx context.Context, status models.SystemStatus) error
}

// Set groups one repository per entity.
type Set struct {
	Webhooks    WebhookRepository
	Indexing    IndexingConfigRepository
	Database    DatabaseConfigRepository
	NFTBids     NFTBidRepository
	TokenPrices TokenPriceRepository
	Status      StatusRepository
}
