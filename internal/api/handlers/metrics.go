package handlers

import (
	"net/http"

	"blockstream/internal/platform/observability"
)

type MetricsHandler struct {
	handler http.Handler
}

func NewMetricsHandler(m *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{handler: m.Handler()}
}

func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
