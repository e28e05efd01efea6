// Package dataaccess is the single entry point for reading and mutating the
// admin data set. Every operation validates its input before touching a
// repository and reports failures as *Error.
package dataaccess

import (
	"context"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/rs/zerolog"

	"blockstream/internal/pkg/logger"
	"blockstream/internal/platform/ids"
	"blockstream/internal/platform/observability"
	"blockstream/internal/platform/repositories"
)

const DefaultWorkers = 8

// AuditRecorder receives one call per successful mutation.
type AuditRecorder interface {
	Log(ctx context.Context, action, resourceType, resourceID, message string, metadata map[string]any)
}

type Service struct {
	repos   repositories.Set
	ids     ids.Generator
	now     func() time.Time
	pool    pond.Pool
	metrics *observability.Metrics
	audit   AuditRecorder
	logger  zerolog.Logger

	// mu serialises read-modify-write updates so concurrent toggles and
	// merges are not lost.
	mu sync.Mutex
}

type Option func(*Service)

// WithClock overrides time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithWorkers bounds the pool used by Go and the batch loads.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pool = pond.NewPool(n)
		}
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(a AuditRecorder) Option {
	return func(s *Service) { s.audit = a }
}

func NewService(repos repositories.Set, gen ids.Generator, opts ...Option) *Service {
	s := &Service{
		repos:  repos,
		ids:    gen,
		now:    time.Now,
		logger: logger.Component("dataaccess"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = pond.NewPool(DefaultWorkers)
	}
	return s
}

// Close stops the worker pool after queued operations finish.
func (s *Service) Close() {
	s.pool.StopAndWait()
}

// stamp is the creation time given to new records. Storage keeps
// millisecond precision, so the returned record matches later reads.
func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// run wraps an operation with error classification, logging and metrics.
func run[T any](ctx context.Context, s *Service, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := fn(ctx)
	err = wrapErr(op, err)
	elapsed := time.Since(start)

	s.metrics.ObserveOperation(op, err, elapsed)
	if err != nil {
		s.logger.Warn().Err(err).Str("op", op).Str("kind", KindOf(err).String()).Dur("took", elapsed).Msg("operation failed")
		var zero T
		return zero, err
	}
	s.logger.Debug().Str("op", op).Dur("took", elapsed).Msg("operation completed")
	return v, nil
}

func (s *Service) record(ctx context.Context, action, resourceType, resourceID, message string, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	s.audit.Log(ctx, action, resourceType, resourceID, message, metadata)
}
