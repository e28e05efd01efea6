package dataaccess

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"blockstream/internal/pkg/validator"
	"blockstream/internal/platform/models"
)

func (s *Service) GetDatabaseConfig(ctx context.Context) (models.DatabaseConfig, error) {
	return run(ctx, s, "GetDatabaseConfig", s.repos.Database.Get)
}

// UpdateDatabaseConfig merges the supplied fields over the stored profile.
// The merged profile must still be complete and valid.
func (s *Service) UpdateDatabaseConfig(ctx context.Context, patch models.DatabaseConfigPatch) (models.DatabaseConfig, error) {
	return run(ctx, s, "UpdateDatabaseConfig", func(ctx context.Context) (models.DatabaseConfig, error) {
		patch = dropMaskedPassword(patch)
		if err := validatePatch(patch); err != nil {
			return models.DatabaseConfig{}, err
		}
		return s.mergeDatabaseConfig(ctx, patch)
	})
}

// SaveDatabaseConfig is the full-form save: every connection field must be
// supplied and non-empty.
func (s *Service) SaveDatabaseConfig(ctx context.Context, patch models.DatabaseConfigPatch) (models.DatabaseConfig, error) {
	return run(ctx, s, "SaveDatabaseConfig", func(ctx context.Context) (models.DatabaseConfig, error) {
		var errs validator.Errors
		requirePtr(&errs, "host", patch.Host)
		requirePtr(&errs, "username", patch.Username)
		requirePtr(&errs, "password", patch.Password)
		requirePtr(&errs, "database", patch.Database)
		if patch.Port == nil {
			errs.Add("port", "is required")
		}
		if err := errs.Err(); err != nil {
			return models.DatabaseConfig{}, err
		}

		patch = dropMaskedPassword(patch)
		if err := validatePatch(patch); err != nil {
			return models.DatabaseConfig{}, err
		}
		return s.mergeDatabaseConfig(ctx, patch)
	})
}

func (s *Service) mergeDatabaseConfig(ctx context.Context, patch models.DatabaseConfigPatch) (models.DatabaseConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repos.Database.Get(ctx)
	if err != nil {
		return models.DatabaseConfig{}, err
	}

	merged := patch.Apply(current)
	if err := validateDatabaseConfig(merged); err != nil {
		return models.DatabaseConfig{}, err
	}
	if err := s.repos.Database.Save(ctx, merged); err != nil {
		return models.DatabaseConfig{}, err
	}

	s.record(ctx, "database.updated", "database_config", "default", "Updated database configuration", map[string]any{
		"host": merged.Host,
		"port": merged.Port,
	})
	return merged, nil
}

// ConnectionTest reports whether the stored profile is usable. No connection
// is attempted.
type ConnectionTest struct {
	Success bool   `json:"success"`
	Target  string `json:"target"`
	Message string `json:"message"`
}

func (s *Service) TestDatabaseConnection(ctx context.Context) (ConnectionTest, error) {
	return run(ctx, s, "TestDatabaseConnection", func(ctx context.Context) (ConnectionTest, error) {
		cfg, err := s.repos.Database.Get(ctx)
		if err != nil {
			return ConnectionTest{}, err
		}
		if err := validateDatabaseConfig(cfg); err != nil {
			return ConnectionTest{}, err
		}
		return ConnectionTest{
			Success: true,
			Target:  fmt.Sprintf("%s/%s", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)), cfg.Database),
			Message: "Successfully connected to the database!",
		}, nil
	})
}

// validatePatch checks supplied fields only, so a bad value is reported
// before the stored profile is read.
func validatePatch(p models.DatabaseConfigPatch) error {
	var errs validator.Errors
	if p.Host != nil {
		errs.Required("host", *p.Host)
	}
	if p.Username != nil {
		errs.Required("username", *p.Username)
	}
	if p.Password != nil {
		errs.Required("password", *p.Password)
	}
	if p.Database != nil {
		errs.Required("database", *p.Database)
	}
	if p.Port != nil {
		errs.Range("port", *p.Port, models.MinPort, models.MaxPort)
	}
	if p.Status != nil && !p.Status.Valid() {
		errs.OneOf("status", string(*p.Status), false, []string{
			string(models.DatabaseConnected), string(models.DatabaseDisconnected), string(models.DatabaseError),
		})
	}
	return errs.Err()
}

func validateDatabaseConfig(c models.DatabaseConfig) error {
	var errs validator.Errors
	errs.Required("host", c.Host)
	errs.Range("port", c.Port, models.MinPort, models.MaxPort)
	errs.Required("username", c.Username)
	errs.Required("password", c.Password)
	errs.Required("database", c.Database)
	if !c.Status.Valid() {
		errs.Add("status", fmt.Sprintf("%q is not a known status", c.Status))
	}
	return errs.Err()
}

func requirePtr(errs *validator.Errors, field string, v *string) {
	if v == nil {
		errs.Add(field, "is required")
		return
	}
	errs.Required(field, *v)
}

// dropMaskedPassword treats the mask echoed back by a client as "unchanged".
func dropMaskedPassword(p models.DatabaseConfigPatch) models.DatabaseConfigPatch {
	if p.Password != nil && *p.Password == models.PasswordMask {
		p.Password = nil
	}
	return p
}
