package dataaccess

import (
	"context"

	"blockstream/internal/pkg/validator"
	"blockstream/internal/platform/ids"
	"blockstream/internal/platform/models"
)

// WebhookInput is the caller-supplied part of a new webhook. Status is
// accepted for wire compatibility and ignored.
type WebhookInput struct {
	Name   string                    `json:"name"`
	URL    string                    `json:"url"`
	APIKey string                    `json:"apiKey"`
	Events []models.WebhookEventType `json:"events"`
	Status models.WebhookStatus      `json:"status,omitempty"`
}

func (in WebhookInput) validate() error {
	var errs validator.Errors
	errs.Required("name", in.Name)
	errs.Required("url", in.URL)
	errs.Required("apiKey", in.APIKey)
	if len(in.Events) == 0 {
		errs.Add("events", "at least one event type is required")
	}
	for _, e := range in.Events {
		if !e.Valid() {
			errs.OneOf("events", string(e), false, eventNames())
		}
	}
	return errs.Err()
}

func eventNames() []string {
	all := models.AllWebhookEventTypes()
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = string(e)
	}
	return names
}

func (s *Service) ListWebhooks(ctx context.Context) ([]*models.WebhookConfig, error) {
	return run(ctx, s, "ListWebhooks", s.repos.Webhooks.List)
}

func (s *Service) GetWebhook(ctx context.Context, id string) (*models.WebhookConfig, error) {
	return run(ctx, s, "GetWebhook", func(ctx context.Context) (*models.WebhookConfig, error) {
		return s.repos.Webhooks.GetByID(ctx, id)
	})
}

// CreateWebhook stores a new webhook. New webhooks always start active and
// duplicate events are collapsed keeping first-seen order.
func (s *Service) CreateWebhook(ctx context.Context, in WebhookInput) (*models.WebhookConfig, error) {
	return run(ctx, s, "CreateWebhook", func(ctx context.Context) (*models.WebhookConfig, error) {
		if err := in.validate(); err != nil {
			return nil, err
		}

		webhook := &models.WebhookConfig{
			ID:        s.ids.NewID(ids.PrefixWebhook),
			Name:      in.Name,
			URL:       in.URL,
			APIKey:    in.APIKey,
			Status:    models.WebhookStatusActive,
			CreatedAt: s.stamp(),
			Events:    dedupeEvents(in.Events),
		}
		if err := s.repos.Webhooks.Create(ctx, webhook); err != nil {
			return nil, err
		}

		s.record(ctx, "webhook.created", "webhook", webhook.ID, "Created webhook "+webhook.Name, map[string]any{
			"events": webhook.Events,
		})
		return webhook, nil
	})
}

func dedupeEvents(events []models.WebhookEventType) []models.WebhookEventType {
	seen := make(map[models.WebhookEventType]struct{}, len(events))
	out := make([]models.WebhookEventType, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
