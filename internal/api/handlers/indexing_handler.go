package handlers

import (
	"encoding/json"
	"net/http"

	"blockstream/internal/engine/aggregate"
	"blockstream/internal/engine/dataaccess"
	"blockstream/internal/pkg/errors"
	"blockstream/internal/pkg/parser"
	"blockstream/internal/platform/models"
)

type IndexingHandler struct {
	svc *dataaccess.Service
}

func NewIndexingHandler(svc *dataaccess.Service) *IndexingHandler {
	return &IndexingHandler{svc: svc}
}

// List returns every configuration, or one category with ?category=nft|token.
func (h *IndexingHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && category != "nft" && category != "token" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "category must be nft or token", nil)
		return
	}

	configs, err := h.svc.ListIndexingConfigs(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, aggregate.ByCategory(configs, category))
}

// Create accepts filters either as a JSON object or as a string holding the
// object's text. Enabled defaults to true.
func (h *IndexingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string              `json:"name"`
		Type    models.IndexingType `json:"type"`
		Enabled *bool               `json:"enabled"`
		Filters json.RawMessage     `json:"filters"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	text, err := parser.FiltersText(req.Filters)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Filters must be a JSON object", nil)
		return
	}

	in := dataaccess.IndexingInput{Name: req.Name, Type: req.Type, Enabled: true}
	if req.Enabled != nil {
		in.Enabled = *req.Enabled
	}

	cfg, err := h.svc.CreateIndexingConfigFromText(r.Context(), in, text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cfg)
}

func (h *IndexingHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetIndexingConfig(r.Context(), param(r, "config_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

func (h *IndexingHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.ToggleIndexingConfig(r.Context(), param(r, "config_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// SetEnabled handles PATCH {"enabled": bool}.
func (h *IndexingHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "enabled is required", nil)
		return
	}

	cfg, err := h.svc.SetIndexingEnabled(r.Context(), param(r, "config_id"), *req.Enabled)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}
