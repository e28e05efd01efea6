package handlers

import (
	"net/http"

	"blockstream/internal/engine/dataaccess"
	"blockstream/internal/platform/models"
)

type DatabaseHandler struct {
	svc *dataaccess.Service
}

func NewDatabaseHandler(svc *dataaccess.Service) *DatabaseHandler {
	return &DatabaseHandler{svc: svc}
}

// Get never returns the stored password.
func (h *DatabaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetDatabaseConfig(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg.Masked())
}

func (h *DatabaseHandler) Save(w http.ResponseWriter, r *http.Request) {
	var patch models.DatabaseConfigPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	cfg, err := h.svc.SaveDatabaseConfig(r.Context(), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg.Masked())
}

func (h *DatabaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.DatabaseConfigPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	cfg, err := h.svc.UpdateDatabaseConfig(r.Context(), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg.Masked())
}

func (h *DatabaseHandler) Test(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.TestDatabaseConnection(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
