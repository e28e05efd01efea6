package dataaccess

import (
	"context"
	"errors"
	"fmt"

	"blockstream/internal/pkg/parser"
	"blockstream/internal/pkg/validator"
	"blockstream/internal/platform/repositories"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// KindUnavailable covers any backend failure that is not one of the
	// caller-facing kinds below.
	KindUnavailable Kind = iota
	KindValidation
	KindMalformed
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMalformed:
		return "malformed"
	case KindNotFound:
		return "not found"
	default:
		return "unavailable"
	}
}

// Error is returned by every Service operation.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err. Errors not produced by this package are
// treated as KindUnavailable.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// FieldErrors returns the per-field failures carried by a validation error.
func FieldErrors(err error) validator.Errors {
	var fe validator.Errors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	kind := KindUnavailable
	var fe validator.Errors
	switch {
	case errors.As(err, &fe), errors.Is(err, repositories.ErrInvalidInput):
		kind = KindValidation
	case errors.Is(err, parser.ErrMalformed):
		kind = KindMalformed
	case errors.Is(err, repositories.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = KindUnavailable
	}
	return &Error{Op: op, Kind: kind, Err: err}
}
