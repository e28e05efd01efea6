package dataaccess

import (
	"context"

	"blockstream/internal/platform/models"
)

func (s *Service) ListNFTBids(ctx context.Context) ([]*models.NFTBid, error) {
	return run(ctx, s, "ListNFTBids", s.repos.NFTBids.List)
}

func (s *Service) ListTokenPrices(ctx context.Context) ([]*models.TokenPrice, error) {
	return run(ctx, s, "ListTokenPrices", s.repos.TokenPrices.List)
}

func (s *Service) GetSystemStatus(ctx context.Context) (models.SystemStatus, error) {
	return run(ctx, s, "GetSystemStatus", s.repos.Status.Get)
}

// Dashboard is everything the overview page renders.
type Dashboard struct {
	Status   models.SystemStatus      `json:"status"`
	Webhooks []*models.WebhookConfig  `json:"webhooks"`
	Indexing []*models.IndexingConfig `json:"indexing"`
}

// LoadDashboard fetches the status snapshot, webhooks and indexing configs
// concurrently. If any fetch fails the whole load fails.
func (s *Service) LoadDashboard(ctx context.Context) (Dashboard, error) {
	return run(ctx, s, "LoadDashboard", func(ctx context.Context) (Dashboard, error) {
		status := Go(ctx, s, s.GetSystemStatus)
		webhooks := Go(ctx, s, s.ListWebhooks)
		indexing := Go(ctx, s, s.ListIndexingConfigs)

		var d Dashboard
		var err error
		if d.Status, err = status.Await(ctx); err != nil {
			return Dashboard{}, err
		}
		if d.Webhooks, err = webhooks.Await(ctx); err != nil {
			return Dashboard{}, err
		}
		if d.Indexing, err = indexing.Await(ctx); err != nil {
			return Dashboard{}, err
		}
		return d, nil
	})
}

// Explorer is the market data shown by the data explorer.
type Explorer struct {
	NFTBids     []*models.NFTBid     `json:"nftBids"`
	TokenPrices []*models.TokenPrice `json:"tokenPrices"`
}

// LoadExplorer fetches bids and prices concurrently, all or nothing.
func (s *Service) LoadExplorer(ctx context.Context) (Explorer, error) {
	return run(ctx, s, "LoadExplorer", func(ctx context.Context) (Explorer, error) {
		bids := Go(ctx, s, s.ListNFTBids)
		prices := Go(ctx, s, s.ListTokenPrices)

		var e Explorer
		var err error
		if e.NFTBids, err = bids.Await(ctx); err != nil {
			return Explorer{}, err
		}
		if e.TokenPrices, err = prices.Await(ctx); err != nil {
			return Explorer{}, err
		}
		return e, nil
	})
}
