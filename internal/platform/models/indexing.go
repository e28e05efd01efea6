package models

import (
	"encoding/json"
	"strings"
	"time"
)

type IndexingType string

const (
	IndexingNFTBids      IndexingType = "nft-bids"
	IndexingNFTListings  IndexingType = "nft-listings"
	IndexingTokenPricing IndexingType = "token-pricing"
	IndexingTokenLending IndexingType = "token-lending"
)

func AllIndexingTypes() []IndexingType {
	return []IndexingType{IndexingNFTBids, IndexingNFTListings, IndexingTokenPricing, IndexingTokenLending}
}

func (t IndexingType) Valid() bool {
	for _, known := range AllIndexingTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Category is the prefix before the first dash: "nft" or "token".
func (t IndexingType) Category() string {
	if i := strings.IndexByte(string(t), '-'); i > 0 {
		return string(t)[:i]
	}
	return string(t)
}

// DefaultFilters returns the filters applied when a config is created without any.
func (t IndexingType) DefaultFilters() map[string]any {
	switch t {
	case IndexingNFTBids:
		return map[string]any{
			"collections":  []any{"DeGods", "y00ts"},
			"minBidAmount": float64(1),
		}
	case IndexingTokenPricing:
		return map[string]any{
			"tokens":          []any{"SOL", "BONK", "JTO"},
			"updateFrequency": "hourly",
		}
	default:
		return map[string]any{}
	}
}

type IndexingConfig struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        IndexingType   `json:"type"`
	Enabled     bool           `json:"enabled"`
	Filters     map[string]any `json:"filters"`
	CreatedAt   time.Time      `json:"createdAt"`
	LastIndexed *time.Time     `json:"lastIndexed,omitempty"`
}

// Clone deep-copies the record. Filters are round-tripped through JSON since
// their values are arbitrary decoded structures.
func (c *IndexingConfig) Clone() *IndexingConfig {
	out := *c
	if c.LastIndexed != nil {
		t := *c.LastIndexed
		out.LastIndexed = &t
	}
	out.Filters = CloneFilters(c.Filters)
	return &out
}

func CloneFilters(filters map[string]any) map[string]any {
	if filters == nil {
		return nil
	}
	raw, err := json.Marshal(filters)
	if err != nil {
		cp := make(map[string]any, len(filters))
		for k, v := range filters {
			cp[k] = v
		}
		return cp
	}
	var cp map[string]any
	if err := json.Unmarshal(raw, &cp); err != nil {
		return filters
	}
	return cp
}
