package dataaccess

import (
	"context"
	"sync"

	"github.com/alitto/pond/v2"
)

// LoadState is the observable progress of an asynchronous operation.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadFulfilled
	LoadRejected
)

func (s LoadState) String() string {
	switch s {
	case LoadFulfilled:
		return "fulfilled"
	case LoadRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Pending is the handle of an operation running on the service pool.
type Pending[T any] struct {
	task pond.Task

	once  sync.Once
	value T
	err   error
}

// Go starts fn on the service pool and returns immediately. The operation
// runs to completion even if ctx is later cancelled; only waiting stops.
func Go[T any](ctx context.Context, s *Service, fn func(context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{}
	workCtx := context.WithoutCancel(ctx)
	p.task = s.pool.SubmitErr(func() error {
		v, err := fn(workCtx)
		p.value = v
		return err
	})
	return p
}

// State reports progress without blocking.
func (p *Pending[T]) State() LoadState {
	select {
	case <-p.task.Done():
	default:
		return LoadPending
	}
	if _, err := p.result(); err != nil {
		return LoadRejected
	}
	return LoadFulfilled
}

// Await blocks until the operation finishes or ctx is done. In the latter
// case ctx.Err() is returned and the eventual result is dropped.
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.task.Done():
		return p.result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the operation has finished.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.task.Done()
}

func (p *Pending[T]) result() (T, error) {
	p.once.Do(func() {
		p.err = p.task.Wait()
		if p.err != nil {
			var zero T
			p.value = zero
		}
	})
	return p.value, p.err
}
