package models

import "time"

type WebhookStatus string

const (
	WebhookStatusActive   WebhookStatus = "active"
	WebhookStatusInactive WebhookStatus = "inactive"
	WebhookStatusError    WebhookStatus = "error"
)

func (s WebhookStatus) Valid() bool {
	switch s {
	case WebhookStatusActive, WebhookStatusInactive, WebhookStatusError:
		return true
	}
	return false
}

type WebhookEventType string

const (
	EventNFTBid        WebhookEventType = "nft.bid"
	EventNFTListing    WebhookEventType = "nft.listing"
	EventNFTSale       WebhookEventType = "nft.sale"
	EventTokenTransfer WebhookEventType = "token.transfer"
	EventTokenSwap     WebhookEventType = "token.swap"
	EventTokenPrice    WebhookEventType = "token.price"
)

// AllWebhookEventTypes returns the closed set of subscribable events in display order.
func AllWebhookEventTypes() []WebhookEventType {
	return []WebhookEventType{
		EventNFTBid,
		EventNFTListing,
		EventNFTSale,
		EventTokenTransfer,
		EventTokenSwap,
		EventTokenPrice,
	}
}

func (e WebhookEventType) Valid() bool {
	for _, known := range AllWebhookEventTypes() {
		if e == known {
			return true
		}
	}
	return false
}

type WebhookConfig struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	URL           string             `json:"url"`
	APIKey        string             `json:"apiKey"`
	Status        WebhookStatus      `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastTriggered *time.Time         `json:"lastTriggered,omitempty"`
	Events        []WebhookEventType `json:"events"`
}

// Clone returns a deep copy so stored records cannot be mutated through returned values.
func (w *WebhookConfig) Clone() *WebhookConfig {
	c := *w
	if w.LastTriggered != nil {
		t := *w.LastTriggered
		c.LastTriggered = &t
	}
	c.Events = append([]WebhookEventType(nil), w.Events...)
	return &c
}

// HasEvent reports whether the webhook is subscribed to the given event type.
func (w *WebhookConfig) HasEvent(e WebhookEventType) bool {
	for _, ev := range w.Events {
		if ev == e {
			return true
		}
	}
	return false
}
