// Package fixtures holds the seed records served until a real backend is wired in.
// Every call returns fresh copies.
package fixtures

import (
	"time"

	"github.com/shopspring/decimal"

	"blockstream/internal/platform/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(s string) *time.Time {
	t := ts(s)
	return &t
}

func Webhooks() []*models.WebhookConfig {
	return []*models.WebhookConfig{
		{
			ID:            "1",
			Name:          "NFT Bids Webhook",
			URL:           "https://api.example.com/webhooks/nft-bids",
			APIKey:        "hel_1a2b3c4d5e6f7g8h9i0j",
			Status:        models.WebhookStatusActive,
			CreatedAt:     ts("2023-06-15T10:30:00Z"),
			LastTriggered: tsPtr("2023-06-20T14:45:00Z"),
			Events:        []models.WebhookEventType{models.EventNFTBid, models.EventNFTListing},
		},
		{
			ID:        "2",
			Name:      "Token Pricing Webhook",
			URL:       "https://api.example.com/webhooks/token-prices",
			APIKey:    "hel_9i8h7g6f5e4d3c2b1a0",
			Status:    models.WebhookStatusInactive,
			CreatedAt: ts("2023-05-10T08:15:00Z"),
			Events:    []models.WebhookEventType{models.EventTokenPrice, models.EventTokenSwap},
		},
	}
}

func IndexingConfigs() []*models.IndexingConfig {
	return []*models.IndexingConfig{
		{
			ID:      "1",
			Name:    "Popular NFT Collections",
			Type:    models.IndexingNFTBids,
			Enabled: true,
			Filters: map[string]any{
				"collections":  []any{"DeGods", "y00ts", "Solana Monkey Business"},
				"minBidAmount": float64(5),
			},
			CreatedAt:   ts("2023-06-01T10:30:00Z"),
			LastIndexed: tsPtr("2023-06-20T15:45:00Z"),
		},
		{
			ID:      "2",
			Name:    "DeFi Tokens",
			Type:    models.IndexingTokenPricing,
			Enabled: true,
			Filters: map[string]any{
				"tokens":          []any{"SOL", "BONK", "JTO", "PYTH"},
				"updateFrequency": "hourly",
			},
			CreatedAt:   ts("2023-05-15T09:45:00Z"),
			LastIndexed: tsPtr("2023-06-20T16:00:00Z"),
		},
	}
}

func DatabaseConfig() models.DatabaseConfig {
	return models.DatabaseConfig{
		Host:     "postgres.example.com",
		Port:     5432,
		Username: "blockstream_user",
		Password: "********",
		Database: "blockstream_db",
		SSL:      true,
		Status:   models.DatabaseConnected,
	}
}

func NFTBids() []*models.NFTBid {
	return []*models.NFTBid{
		{
			ID:           "1",
			TokenAddress: "DGOD5Lgv9EnxPpzMcuUNPAWEGS4JGwAqpvbqjTGMoF1j",
			BidAmount:    decimal.RequireFromString("105.5"),
			Bidder:       "8JUjWjmgxkSxd2jzjKTPPYYUpPYo16PNzUz1La3T14XM",
			Marketplace:  "Magic Eden",
			Timestamp:    ts("2023-06-20T14:30:00Z"),
		},
		{
			ID:           "2",
			TokenAddress: "Y00T5SbsGFjG5ZQhCPin6zSSvU1mHk91z3UWFZdKJvM3",
			BidAmount:    decimal.RequireFromString("78.2"),
			Bidder:       "6KCQfqY5fT3QZd6YBBgXmP6FMBs9AsR4tAFQJ1zQzBD3",
			Marketplace:  "Tensor",
			Timestamp:    ts("2023-06-20T13:15:00Z"),
		},
		{
			ID:           "3",
			TokenAddress: "DGOD5Lgv9EnxPpzMcuUNPAWEGS4JGwAqpvbqjTGMoF1j",
			BidAmount:    decimal.RequireFromString("104.8"),
			Bidder:       "9YQFFbMNRYJHRx9mS8SHJrEPVsQvRQkwXGHhBSuMrjJY",
			Marketplace:  "Magic Eden",
			Timestamp:    ts("2023-06-20T12:45:00Z"),
		},
	}
}

func TokenPrices() []*models.TokenPrice {
	return []*models.TokenPrice{
		{
			ID:             "1",
			Symbol:         "SOL",
			Name:           "Solana",
			Address:        "So11111111111111111111111111111111111111112",
			Price:          decimal.RequireFromString("68.42"),
			PriceChange24h: decimal.RequireFromString("5.2"),
			Volume24h:      decimal.NewFromInt(1254897654),
			LastUpdated:    ts("2023-06-20T16:05:00Z"),
		},
		{
			ID:             "2",
			Symbol:         "BONK",
			Name:           "Bonk",
			Address:        "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
			Price:          decimal.RequireFromString("0.0000124"),
			PriceChange24h: decimal.RequireFromString("-2.3"),
			Volume24h:      decimal.NewFromInt(89654123),
			LastUpdated:    ts("2023-06-20T16:02:00Z"),
		},
		{
			ID:             "3",
			Symbol:         "JTO",
			Name:           "Jito",
			Address:        "J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn",
			Price:          decimal.RequireFromString("2.14"),
			PriceChange24h: decimal.RequireFromString("0.8"),
			Volume24h:      decimal.NewFromInt(32541789),
			LastUpdated:    ts("2023-06-20T16:00:00Z"),
		},
	}
}

func SystemStatus() models.SystemStatus {
	return models.SystemStatus{
		WebhooksActive:  1,
		IndexersRunning: 2,
		DBConnected:     true,
		LastEvent:       ts("2023-06-20T15:45:00Z"),
		Uptime:          685412,
	}
}
