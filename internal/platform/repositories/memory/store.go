// Package memory provides in-memory repositories. Values are copied on the way
// in and on the way out so callers never share state with the store.
package memory

import (
	"context"
	"sync"

	"blockstream/internal/platform/repositories"
)

// orderedStore keeps records keyed by id in insertion order.
type orderedStore[T any] struct {
	mu    sync.RWMutex
	order []string
	data  map[string]*T
	id    func(*T) string
	clone func(*T) *T
}

func newOrderedStore[T any](id func(*T) string, clone func(*T) *T) *orderedStore[T] {
	return &orderedStore[T]{
		data:  make(map[string]*T),
		id:    id,
		clone: clone,
	}
}

func (s *orderedStore[T]) list(ctx context.Context) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*T, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.clone(s.data[id]))
	}
	return result, nil
}

func (s *orderedStore[T]) get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s.clone(v), nil
}

func (s *orderedStore[T]) insert(ctx context.Context, v *T) error {
	if v == nil || s.id(v) == "" {
		return repositories.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(v)
	if _, exists := s.data[id]; exists {
		return repositories.ErrDuplicateKey
	}
	s.data[id] = s.clone(v)
	s.order = append(s.order, id)
	return nil
}

func (s *orderedStore[T]) replace(ctx context.Context, v *T) error {
	if v == nil || s.id(v) == "" {
		return repositories.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(v)
	if _, exists := s.data[id]; !exists {
		return repositories.ErrNotFound
	}
	s.data[id] = s.clone(v)
	return nil
}

// valueStore holds a single value, such as the database profile or the
// status snapshot. It reports ErrNotFound until the first Save.
type valueStore[T any] struct {
	mu  sync.RWMutex
	set bool
	v   T
}

func (s *valueStore[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return zero, repositories.ErrNotFound
	}
	return s.v, nil
}

func (s *valueStore[T]) Save(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.v = v
	s.set = true
	return nil
}
