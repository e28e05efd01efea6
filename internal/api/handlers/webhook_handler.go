package handlers

import (
	"net/http"

	"blockstream/internal/engine/dataaccess"
)

type WebhookHandler struct {
	svc *dataaccess.Service
}

func NewWebhookHandler(svc *dataaccess.Service) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

func (h *WebhookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dataaccess.WebhookInput
	if !decodeJSON(w, r, &req) {
		return
	}

	webhook, err := h.svc.CreateWebhook(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, webhook)
}

func (h *WebhookHandler) List(w http.ResponseWriter, r *http.Request) {
	webhooks, err := h.svc.ListWebhooks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, webhooks)
}

func (h *WebhookHandler) Get(w http.ResponseWriter, r *http.Request) {
	webhook, err := h.svc.GetWebhook(r.Context(), param(r, "webhook_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, webhook)
}
