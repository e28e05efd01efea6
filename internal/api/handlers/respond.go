package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	apiContext "blockstream/internal/api/context"
	"blockstream/internal/engine/dataaccess"
	"blockstream/internal/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeServiceError maps a data access failure to its HTTP response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch dataaccess.KindOf(err) {
	case dataaccess.KindValidation:
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Validation failed", dataaccess.FieldErrors(err))
	case dataaccess.KindMalformed:
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Filters must be a JSON object", nil)
	case dataaccess.KindNotFound:
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Resource not found", nil)
	default:
		errors.WriteError(w, http.StatusServiceUnavailable, errors.ErrCodeUnavailable, "Data source unavailable, please try again", nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return false
	}
	return true
}

func param(r *http.Request, name string) string {
	ps, _ := r.Context().Value(apiContext.Params).(httprouter.Params)
	return ps.ByName(name)
}
