package dataaccess

import (
	"context"

	"blockstream/internal/pkg/parser"
	"blockstream/internal/pkg/validator"
	"blockstream/internal/platform/ids"
	"blockstream/internal/platform/models"
)

// IndexingInput describes a new indexing configuration. Nil Filters select
// the defaults of Type.
type IndexingInput struct {
	Name    string              `json:"name"`
	Type    models.IndexingType `json:"type"`
	Enabled bool                `json:"enabled"`
	Filters map[string]any      `json:"filters"`
}

func (in IndexingInput) validate() error {
	var errs validator.Errors
	errs.Required("name", in.Name)
	if !in.Type.Valid() {
		errs.OneOf("type", string(in.Type), false, indexingTypeNames())
	}
	return errs.Err()
}

func indexingTypeNames() []string {
	all := models.AllIndexingTypes()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = string(t)
	}
	return names
}

func (s *Service) ListIndexingConfigs(ctx context.Context) ([]*models.IndexingConfig, error) {
	return run(ctx, s, "ListIndexingConfigs", s.repos.Indexing.List)
}

func (s *Service) GetIndexingConfig(ctx context.Context, id string) (*models.IndexingConfig, error) {
	return run(ctx, s, "GetIndexingConfig", func(ctx context.Context) (*models.IndexingConfig, error) {
		return s.repos.Indexing.GetByID(ctx, id)
	})
}

// CreateIndexingConfig stores a new configuration. Filters are kept as given.
func (s *Service) CreateIndexingConfig(ctx context.Context, in IndexingInput) (*models.IndexingConfig, error) {
	return run(ctx, s, "CreateIndexingConfig", func(ctx context.Context) (*models.IndexingConfig, error) {
		return s.createIndexingConfig(ctx, in)
	})
}

// CreateIndexingConfigFromText is CreateIndexingConfig for filters typed as
// free-form text. Text that is not a JSON object fails with KindMalformed and
// nothing is stored. Blank text selects the type defaults.
func (s *Service) CreateIndexingConfigFromText(ctx context.Context, in IndexingInput, filtersText string) (*models.IndexingConfig, error) {
	return run(ctx, s, "CreateIndexingConfig", func(ctx context.Context) (*models.IndexingConfig, error) {
		if err := in.validate(); err != nil {
			return nil, err
		}
		filters, err := parser.ParseFilters(filtersText)
		if err != nil {
			return nil, err
		}
		in.Filters = filters
		return s.createIndexingConfig(ctx, in)
	})
}

func (s *Service) createIndexingConfig(ctx context.Context, in IndexingInput) (*models.IndexingConfig, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	filters := models.CloneFilters(in.Filters)
	if filters == nil {
		filters = in.Type.DefaultFilters()
	}

	cfg := &models.IndexingConfig{
		ID:        s.ids.NewID(ids.PrefixIndexing),
		Name:      in.Name,
		Type:      in.Type,
		Enabled:   in.Enabled,
		Filters:   filters,
		CreatedAt: s.stamp(),
	}
	if err := s.repos.Indexing.Create(ctx, cfg); err != nil {
		return nil, err
	}

	s.record(ctx, "indexing.created", "indexing_config", cfg.ID, "Created indexing configuration "+cfg.Name, map[string]any{
		"type":    cfg.Type,
		"enabled": cfg.Enabled,
	})
	return cfg, nil
}

// SetIndexingEnabled switches a configuration on or off.
func (s *Service) SetIndexingEnabled(ctx context.Context, id string, enabled bool) (*models.IndexingConfig, error) {
	return run(ctx, s, "SetIndexingEnabled", func(ctx context.Context) (*models.IndexingConfig, error) {
		return s.setIndexingEnabled(ctx, id, func(bool) bool { return enabled })
	})
}

// ToggleIndexingConfig flips the enabled flag.
func (s *Service) ToggleIndexingConfig(ctx context.Context, id string) (*models.IndexingConfig, error) {
	return run(ctx, s, "ToggleIndexingConfig", func(ctx context.Context) (*models.IndexingConfig, error) {
		return s.setIndexingEnabled(ctx, id, func(cur bool) bool { return !cur })
	})
}

func (s *Service) setIndexingEnabled(ctx context.Context, id string, next func(bool) bool) (*models.IndexingConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.repos.Indexing.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg.Enabled = next(cfg.Enabled)
	if err := s.repos.Indexing.Update(ctx, cfg); err != nil {
		return nil, err
	}

	action, verb := "indexing.disabled", "Disabled"
	if cfg.Enabled {
		action, verb = "indexing.enabled", "Enabled"
	}
	s.record(ctx, action, "indexing_config", cfg.ID, verb+" indexer "+cfg.Name, nil)
	return cfg, nil
}
