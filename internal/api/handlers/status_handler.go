package handlers

import (
	"net/http"

	"blockstream/internal/engine/dataaccess"
)

type StatusHandler struct {
	svc *dataaccess.Service
}

func NewStatusHandler(svc *dataaccess.Service) *StatusHandler {
	return &StatusHandler{svc: svc}
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GetSystemStatus(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
