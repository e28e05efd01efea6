package parser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      map[string]any
		malformed bool
	}{
		{name: "blank", input: "   ", want: nil},
		{name: "empty object", input: "{}", want: map[string]any{}},
		{
			name:  "nested",
			input: `{"tokens":["SOL","BONK"],"minBidAmount":1,"ratio":0.5,"deep":{"on":true}}`,
			want: map[string]any{
				"tokens":       []any{"SOL", "BONK"},
				"minBidAmount": float64(1),
				"ratio":        0.5,
				"deep":         map[string]any{"on": true},
			},
		},
		{name: "not json", input: "{tokens: SOL}", malformed: true},
		{name: "array", input: `["SOL"]`, malformed: true},
		{name: "scalar", input: `42`, malformed: true},
		{name: "trailing data", input: `{"a":1} {"b":2}`, malformed: true},
		{name: "stray closing brace", input: `{}}`, malformed: true},
		{name: "stray closing bracket", input: `{"a":1} ]`, malformed: true},
		{name: "trailing scalar", input: `{"a":1} 2`, malformed: true},
		{name: "trailing whitespace", input: "{\"a\":1}\n\t", want: map[string]any{"a": float64(1)}},
		{name: "truncated", input: `{"a":`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilters(tt.input)
			if tt.malformed {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformed))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFiltersText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: ``, want: ""},
		{raw: `null`, want: ""},
		{raw: ` {"a":1} `, want: `{"a":1}`},
		{raw: `"{\"a\":2}"`, want: `{"a":2}`},
		{raw: `[1,2]`, want: `[1,2]`},
	}
	for _, tt := range tests {
		got, err := FiltersText(json.RawMessage(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	filters, err := ParseFilters(mustText(t, `"{\"tokens\":[\"SOL\"]}"`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tokens": []any{"SOL"}}, filters)
}

func mustText(t *testing.T, raw string) string {
	t.Helper()
	text, err := FiltersText(json.RawMessage(raw))
	require.NoError(t, err)
	return text
}
