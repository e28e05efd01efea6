package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	var errs Errors
	errs.Required("name", "  ")
	errs.Required("url", "https://example.com")
	errs.Range("port", 70000, 1, 65535)
	errs.Range("timeout", 5, 1, 10)
	errs.OneOf("status", "paused", false, []string{"inactive", "active"})

	require.Len(t, errs, 3)
	assert.True(t, errs.Has("name"))
	assert.False(t, errs.Has("url"))
	assert.True(t, errs.Has("port"))
	assert.Equal(t, `"paused" is not one of active, inactive`, errs[2].Message)

	err := errs.Err()
	require.Error(t, err)
	var target Errors
	assert.True(t, errors.As(err, &target))
	assert.Contains(t, err.Error(), "port: must be between 1 and 65535")
}

func TestErrorsEmpty(t *testing.T) {
	var errs Errors
	errs.Required("name", "x")
	assert.NoError(t, errs.Err())
}
