package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"blockstream/internal/engine/aggregate"
	"blockstream/internal/engine/dataaccess"
	"blockstream/internal/platform/models"
)

type ExplorerHandler struct {
	svc *dataaccess.Service
}

func NewExplorerHandler(svc *dataaccess.Service) *ExplorerHandler {
	return &ExplorerHandler{svc: svc}
}

type nftBidsResponse struct {
	Query string             `json:"query"`
	Items []*models.NFTBid   `json:"items"`
	Total int                `json:"total"`
	Stats aggregate.NFTStats `json:"stats"`
}

// NFTBids filters with ?q=; stats always describe the unfiltered table.
func (h *ExplorerHandler) NFTBids(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.LoadExplorer(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, nftBidsResponse{
		Query: q,
		Items: aggregate.FilterNFTBids(data.NFTBids, q),
		Total: len(data.NFTBids),
		Stats: aggregate.NFTBidStats(data.NFTBids),
	})
}

type tokenPriceView struct {
	*models.TokenPrice
	Display tokenPriceDisplay `json:"display"`
}

type tokenPriceDisplay struct {
	Price     string `json:"price"`
	Change24h string `json:"change24h"`
	Direction string `json:"direction"`
	Volume24h string `json:"volume24h"`
}

type tokenPricesResponse struct {
	Query string               `json:"query"`
	Items []tokenPriceView     `json:"items"`
	Total int                  `json:"total"`
	Stats aggregate.TokenStats `json:"stats"`
}

func (h *ExplorerHandler) TokenPrices(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.LoadExplorer(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	q := r.URL.Query().Get("q")
	filtered := aggregate.FilterTokenPrices(data.TokenPrices, q)
	items := make([]tokenPriceView, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, tokenPriceView{TokenPrice: p, Display: displayPrice(p)})
	}

	writeJSON(w, http.StatusOK, tokenPricesResponse{
		Query: q,
		Items: items,
		Total: len(data.TokenPrices),
		Stats: aggregate.TokenPriceStats(data.TokenPrices),
	})
}

func displayPrice(p *models.TokenPrice) tokenPriceDisplay {
	direction := "up"
	if p.PriceChange24h.LessThan(decimal.Zero) {
		direction = "down"
	}
	return tokenPriceDisplay{
		Price:     aggregate.FormatCurrency(p.Price),
		Change24h: aggregate.FormatChange(p.PriceChange24h),
		Direction: direction,
		Volume24h: aggregate.FormatVolume(p.Volume24h),
	}
}
