package handlers

import (
	"net/http"

	"blockstream/internal/engine/aggregate"
	"blockstream/internal/engine/dataaccess"
	"blockstream/internal/platform/models"
)

type DashboardHandler struct {
	svc *dataaccess.Service
}

func NewDashboardHandler(svc *dataaccess.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

type dashboardResponse struct {
	Status          models.SystemStatus                 `json:"status"`
	UptimeDisplay   string                              `json:"uptimeDisplay"`
	Webhooks        aggregate.Ratio                     `json:"webhooks"`
	Indexers        aggregate.Ratio                     `json:"indexers"`
	IndexersByType  map[string]int                      `json:"indexersByCategory"`
	RecentWebhooks  []*models.WebhookConfig             `json:"recentWebhooks"`
	IndexingConfigs map[string][]*models.IndexingConfig `json:"indexingConfigs"`
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.LoadDashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	groups := aggregate.IndexersByCategory(d.Indexing)
	counts := make(map[string]int, len(groups))
	for cat, configs := range groups {
		counts[cat] = len(configs)
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Status:          d.Status,
		UptimeDisplay:   aggregate.FormatUptime(d.Status.Uptime),
		Webhooks:        aggregate.WebhookSummary(d.Webhooks),
		Indexers:        aggregate.IndexerSummary(d.Indexing),
		IndexersByType:  counts,
		RecentWebhooks:  d.Webhooks,
		IndexingConfigs: groups,
	})
}
