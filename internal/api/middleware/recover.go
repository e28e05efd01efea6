package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"blockstream/internal/pkg/errors"
)

// Recover turns a handler panic into a 500 response.
func Recover(w http.ResponseWriter, r *http.Request, v interface{}) {
	log.Error().
		Interface("panic", v).
		Str("request_id", requestIDFrom(r)).
		Str("path", r.URL.Path).
		Msg("handler panicked")
	errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Internal server error", nil)
}
