// Package parser decodes free-form structured input supplied by operators.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is returned when filter text is not a JSON object.
var ErrMalformed = errors.New("malformed filters")

// ParseFilters decodes text into a filter map. Blank text yields (nil, nil) so
// callers can apply their own defaults. Anything that is not a single JSON
// object, including arrays, scalars and trailing data, is ErrMalformed.
func ParseFilters(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))

	var filters map[string]any
	if err := dec.Decode(&filters); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after object", ErrMalformed)
	}
	if filters == nil {
		filters = map[string]any{}
	}
	return filters, nil
}

// FiltersText returns the filter text carried by a raw JSON value. A JSON
// string yields its contents, so clients may send either an object or the
// object's text. Null or absent values yield "".
func FiltersText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return text, nil
	}
	return string(trimmed), nil
}
