package aggregate

import (
	"strings"

	"github.com/shopspring/decimal"

	"blockstream/internal/platform/models"
)

// FilterNFTBids matches on token address, bidder and marketplace.
func FilterNFTBids(bids []*models.NFTBid, query string) []*models.NFTBid {
	return Filter(bids, query, func(b *models.NFTBid) []string {
		return []string{b.TokenAddress, b.Bidder, b.Marketplace}
	})
}

// FilterTokenPrices matches on symbol, name and address.
func FilterTokenPrices(prices []*models.TokenPrice, query string) []*models.TokenPrice {
	return Filter(prices, query, func(p *models.TokenPrice) []string {
		return []string{p.Symbol, p.Name, p.Address}
	})
}

// AverageBid is the mean bid amount, zero for no bids.
func AverageBid(bids []*models.NFTBid) decimal.Decimal {
	return Mean(bids, func(b *models.NFTBid) decimal.Decimal { return b.BidAmount })
}

// TopGainer is the token with the largest 24h change.
func TopGainer(prices []*models.TokenPrice) (*models.TokenPrice, bool) {
	return MaxBy(prices, func(p *models.TokenPrice) decimal.Decimal { return p.PriceChange24h })
}

// Ratio is an "n of total" figure.
type Ratio struct {
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func newRatio(n, total int) Ratio {
	return Ratio{Count: n, Total: total, Percent: Percentage(n, total)}
}

// WebhookSummary counts active webhooks.
func WebhookSummary(webhooks []*models.WebhookConfig) Ratio {
	active := CountWhere(webhooks, func(w *models.WebhookConfig) bool {
		return w.Status == models.WebhookStatusActive
	})
	return newRatio(active, len(webhooks))
}

// IndexerSummary counts enabled indexing configurations.
func IndexerSummary(configs []*models.IndexingConfig) Ratio {
	enabled := CountWhere(configs, func(c *models.IndexingConfig) bool { return c.Enabled })
	return newRatio(enabled, len(configs))
}

// IndexersByCategory splits configs by the prefix of their type, preserving
// order within each group. Recognised categories are "nft" and "token".
func IndexersByCategory(configs []*models.IndexingConfig) map[string][]*models.IndexingConfig {
	out := map[string][]*models.IndexingConfig{
		"nft":   {},
		"token": {},
	}
	for _, c := range configs {
		cat := c.Type.Category()
		out[cat] = append(out[cat], c)
	}
	return out
}

// ByCategory returns the configs of one category ("nft" or "token").
func ByCategory(configs []*models.IndexingConfig, category string) []*models.IndexingConfig {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return configs
	}
	return IndexersByCategory(configs)[category]
}

// MarketplaceShare is the most common marketplace and its share of bids.
type MarketplaceShare struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TopMarketplace returns the marketplace with the most bids; ties go to the
// one seen first.
func TopMarketplace(bids []*models.NFTBid) (MarketplaceShare, bool) {
	if len(bids) == 0 {
		return MarketplaceShare{}, false
	}
	counts := make(map[string]int)
	var order []string
	for _, b := range bids {
		if _, seen := counts[b.Marketplace]; !seen {
			order = append(order, b.Marketplace)
		}
		counts[b.Marketplace]++
	}

	best := order[0]
	for _, name := range order[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return MarketplaceShare{Name: best, Count: counts[best], Percent: Percentage(counts[best], len(bids))}, true
}

// UniqueCollections counts distinct token addresses.
func UniqueCollections(bids []*models.NFTBid) int {
	seen := make(map[string]struct{}, len(bids))
	for _, b := range bids {
		seen[b.TokenAddress] = struct{}{}
	}
	return len(seen)
}

// NFTStats summarises the bid table.
type NFTStats struct {
	TotalBids         int               `json:"totalBids"`
	UniqueCollections int               `json:"uniqueCollections"`
	AverageBid        decimal.Decimal   `json:"averageBid"`
	TopMarketplace    *MarketplaceShare `json:"topMarketplace,omitempty"`
}

// TokenStats summarises the price table.
type TokenStats struct {
	TokensTracked int                `json:"tokensTracked"`
	TopGainer     *models.TokenPrice `json:"topGainer,omitempty"`
}

// NFTBidStats computes NFTStats with the average rounded to cents.
func NFTBidStats(bids []*models.NFTBid) NFTStats {
	s := NFTStats{
		TotalBids:         Count(bids),
		UniqueCollections: UniqueCollections(bids),
		AverageBid:        AverageBid(bids).Round(2),
	}
	if top, ok := TopMarketplace(bids); ok {
		s.TopMarketplace = &top
	}
	return s
}

// TokenPriceStats computes TokenStats; TopGainer is nil for no prices.
func TokenPriceStats(prices []*models.TokenPrice) TokenStats {
	s := TokenStats{TokensTracked: Count(prices)}
	if top, ok := TopGainer(prices); ok {
		s.TopGainer = top
	}
	return s
}

// ExplorerSummary bundles both tables' summaries.
type ExplorerSummary struct {
	NFT   NFTStats   `json:"nft"`
	Token TokenStats `json:"token"`
}

// ExplorerStats summarises both explorer tables.
func ExplorerStats(bids []*models.NFTBid, prices []*models.TokenPrice) ExplorerSummary {
	return ExplorerSummary{NFT: NFTBidStats(bids), Token: TokenPriceStats(prices)}
}
