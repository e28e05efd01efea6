// Package status recomputes the system status snapshot from stored records.
package status

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"blockstream/internal/platform/models"
	"blockstream/internal/platform/observability"
	"blockstream/internal/platform/repositories"
)

type Refresher struct {
	repos   repositories.Set
	started time.Time
	now     func() time.Time
	metrics *observability.Metrics
}

type Option func(*Refresher)

func WithClock(now func() time.Time) Option {
	return func(r *Refresher) { r.now = now }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(r *Refresher) { r.metrics = m }
}

// NewRefresher measures uptime from started.
func NewRefresher(repos repositories.Set, started time.Time, opts ...Option) *Refresher {
	r := &Refresher{repos: repos, started: started, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh derives a new snapshot and stores it. The last event time of the
// previous snapshot is kept; without one, the most recent webhook trigger or
// indexing run is used.
func (r *Refresher) Refresh(ctx context.Context) (models.SystemStatus, error) {
	webhooks, err := r.repos.Webhooks.List(ctx)
	if err != nil {
		return models.SystemStatus{}, err
	}
	configs, err := r.repos.Indexing.List(ctx)
	if err != nil {
		return models.SystemStatus{}, err
	}

	dbConnected := false
	dbCfg, err := r.repos.Database.Get(ctx)
	switch {
	case err == nil:
		dbConnected = dbCfg.Status == models.DatabaseConnected
	case !errors.Is(err, repositories.ErrNotFound):
		return models.SystemStatus{}, err
	}

	var lastEvent time.Time
	prev, err := r.repos.Status.Get(ctx)
	switch {
	case err == nil:
		lastEvent = prev.LastEvent
	case errors.Is(err, repositories.ErrNotFound):
		lastEvent = latestActivity(webhooks, configs)
	default:
		return models.SystemStatus{}, err
	}

	snapshot := models.SystemStatus{
		LastEvent: lastEvent,
		Uptime:    int64(r.now().Sub(r.started) / time.Second),
	}
	for _, w := range webhooks {
		if w.Status == models.WebhookStatusActive {
			snapshot.WebhooksActive++
		}
	}
	for _, c := range configs {
		if c.Enabled {
			snapshot.IndexersRunning++
		}
	}
	snapshot.DBConnected = dbConnected

	if err := r.repos.Status.Save(ctx, snapshot); err != nil {
		return models.SystemStatus{}, err
	}
	r.metrics.SetStatus(snapshot)

	log.Debug().
		Int("webhooks_active", snapshot.WebhooksActive).
		Int("indexers_running", snapshot.IndexersRunning).
		Bool("db_connected", snapshot.DBConnected).
		Int64("uptime", snapshot.Uptime).
		Msg("status refreshed")
	return snapshot, nil
}

func latestActivity(webhooks []*models.WebhookConfig, configs []*models.IndexingConfig) time.Time {
	var latest time.Time
	for _, w := range webhooks {
		if w.LastTriggered != nil && w.LastTriggered.After(latest) {
			latest = *w.LastTriggered
		}
	}
	for _, c := range configs {
		if c.LastIndexed != nil && c.LastIndexed.After(latest) {
			latest = *c.LastIndexed
		}
	}
	return latest
}
