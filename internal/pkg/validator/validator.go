// Package validator collects per-field validation failures.
package validator

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is an ordered list of field failures. The zero value is empty and
// ready to use.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a failure for field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Required records a failure when value is blank.
func (e *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

// Range records a failure when value falls outside [min, max].
func (e *Errors) Range(field string, value, min, max int) {
	if value < min || value > max {
		e.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
}

// OneOf records a failure when ok is false, listing the allowed values.
func (e *Errors) OneOf(field string, value string, ok bool, allowed []string) {
	if !ok {
		sorted := append([]string(nil), allowed...)
		sort.Strings(sorted)
		e.Add(field, fmt.Sprintf("%q is not one of %s", value, strings.Join(sorted, ", ")))
	}
}

// Has reports whether field has at least one failure.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when no failures were recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
