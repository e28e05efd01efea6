package memory

import (
	"context"

	"blockstream/internal/platform/fixtures"
	"blockstream/internal/platform/models"
	"blockstream/internal/platform/repositories"
)

type WebhookRepository struct {
	store *orderedStore[models.WebhookConfig]
}

func NewWebhookRepository() *WebhookRepository {
	return &WebhookRepository{store: newOrderedStore(
		func(w *models.WebhookConfig) string { return w.ID },
		(*models.WebhookConfig).Clone,
	)}
}

func (r *WebhookRepository) List(ctx context.Context) ([]*models.WebhookConfig, error) {
	return r.store.list(ctx)
}

func (r *WebhookRepository) GetByID(ctx context.Context, id string) (*models.WebhookConfig, error) {
	return r.store.get(ctx, id)
}

func (r *WebhookRepository) Create(ctx context.Context, w *models.WebhookConfig) error {
	return r.store.insert(ctx, w)
}

func (r *WebhookRepository) Update(ctx context.Context, w *models.WebhookConfig) error {
	return r.store.replace(ctx, w)
}

type IndexingConfigRepository struct {
	store *orderedStore[models.IndexingConfig]
}

func NewIndexingConfigRepository() *IndexingConfigRepository {
	return &IndexingConfigRepository{store: newOrderedStore(
		func(c *models.IndexingConfig) string { return c.ID },
		(*models.IndexingConfig).Clone,
	)}
}

func (r *IndexingConfigRepository) List(ctx context.Context) ([]*models.IndexingConfig, error) {
	return r.store.list(ctx)
}

func (r *IndexingConfigRepository) GetByID(ctx context.Context, id string) (*models.IndexingConfig, error) {
	return r.store.get(ctx, id)
}

func (r *IndexingConfigRepository) Create(ctx context.Context, c *models.IndexingConfig) error {
	return r.store.insert(ctx, c)
}

func (r *IndexingConfigRepository) Update(ctx context.Context, c *models.IndexingConfig) error {
	return r.store.replace(ctx, c)
}

type NFTBidRepository struct {
	store *orderedStore[models.NFTBid]
}

// NewNFTBidRepository returns a read-only repository over bids.
func NewNFTBidRepository(bids []*models.NFTBid) (*NFTBidRepository, error) {
	r := &NFTBidRepository{store: newOrderedStore(
		func(b *models.NFTBid) string { return b.ID },
		func(b *models.NFTBid) *models.NFTBid { c := *b; return &c },
	)}
	for _, b := range bids {
		if err := r.store.insert(context.Background(), b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *NFTBidRepository) List(ctx context.Context) ([]*models.NFTBid, error) {
	return r.store.list(ctx)
}

func (r *NFTBidRepository) GetByID(ctx context.Context, id string) (*models.NFTBid, error) {
	return r.store.get(ctx, id)
}

type TokenPriceRepository struct {
	store *orderedStore[models.TokenPrice]
}

// NewTokenPriceRepository returns a read-only repository over prices.
func NewTokenPriceRepository(prices []*models.TokenPrice) (*TokenPriceRepository, error) {
	r := &TokenPriceRepository{store: newOrderedStore(
		func(p *models.TokenPrice) string { return p.ID },
		func(p *models.TokenPrice) *models.TokenPrice { c := *p; return &c },
	)}
	for _, p := range prices {
		if err := r.store.insert(context.Background(), p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *TokenPriceRepository) List(ctx context.Context) ([]*models.TokenPrice, error) {
	return r.store.list(ctx)
}

func (r *TokenPriceRepository) GetByID(ctx context.Context, id string) (*models.TokenPrice, error) {
	return r.store.get(ctx, id)
}

type DatabaseConfigRepository struct {
	valueStore[models.DatabaseConfig]
}

func NewDatabaseConfigRepository() *DatabaseConfigRepository {
	return &DatabaseConfigRepository{}
}

type StatusRepository struct {
	valueStore[models.SystemStatus]
}

func NewStatusRepository() *StatusRepository {
	return &StatusRepository{}
}

// NewSet returns empty repositories, with no market data.
func NewSet() repositories.Set {
	bids, _ := NewNFTBidRepository(nil)
	prices, _ := NewTokenPriceRepository(nil)
	return repositories.Set{
		Webhooks:    NewWebhookRepository(),
		Indexing:    NewIndexingConfigRepository(),
		Database:    NewDatabaseConfigRepository(),
		NFTBids:     bids,
		TokenPrices: prices,
		Status:      NewStatusRepository(),
	}
}

// NewSeeded returns repositories populated with the fixture records.
func NewSeeded() (repositories.Set, error) {
	ctx := context.Background()

	webhooks := NewWebhookRepository()
	for _, w := range fixtures.Webhooks() {
		if err := webhooks.Create(ctx, w); err != nil {
			return repositories.Set{}, err
		}
	}

	indexing := NewIndexingConfigRepository()
	for _, c := range fixtures.IndexingConfigs() {
		if err := indexing.Create(ctx, c); err != nil {
			return repositories.Set{}, err
		}
	}

	bids, err := NewNFTBidRepository(fixtures.NFTBids())
	if err != nil {
		return repositories.Set{}, err
	}
	prices, err := NewTokenPriceRepository(fixtures.TokenPrices())
	if err != nil {
		return repositories.Set{}, err
	}

	database := NewDatabaseConfigRepository()
	if err := database.Save(ctx, fixtures.DatabaseConfig()); err != nil {
		return repositories.Set{}, err
	}
	status := NewStatusRepository()
	if err := status.Save(ctx, fixtures.SystemStatus()); err != nil {
		return repositories.Set{}, err
	}

	return repositories.Set{
		Webhooks:    webhooks,
		Indexing:    indexing,
		Database:    database,
		NFTBids:     bids,
		TokenPrices: prices,
		Status:      status,
	}, nil
}
