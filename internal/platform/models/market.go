package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type NFTBid struct {
	ID           string          `json:"id"`
	TokenAddress string          `json:"tokenAddress"`
	BidAmount    decimal.Decimal `json:"bidAmount"`
	Bidder       string          `json:"bidder"`
	Marketplace  string          `json:"marketplace"`
	Timestamp    time.Time       `json:"timestamp"`
}

type TokenPrice struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Price          decimal.Decimal `json:"price"`
	PriceChange24h decimal.Decimal `json:"priceChange24h"`
	Volume24h      decimal.Decimal `json:"volume24h"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}
