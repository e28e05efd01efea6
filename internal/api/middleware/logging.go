package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	apiContext "blockstream/internal/api/context"
	"blockstream/internal/platform/observability"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// AccessLog writes one log line per request and records request metrics
// labelled with the matched route pattern.
func AccessLog(metrics *observability.Metrics) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			elapsed := time.Since(start)

			route, _ := r.Context().Value(apiContext.Route).(string)
			if route == "" {
				route = r.URL.Path
			}
			metrics.ObserveRequest(route, r.Method, rec.status, elapsed)

			evt := log.Info()
			if rec.status >= http.StatusInternalServerError {
				evt = log.Error()
			} else if rec.status >= http.StatusBadRequest {
				evt = log.Warn()
			}
			evt.
				Str("request_id", requestIDFrom(r)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Str("ip", clientIPFrom(r)).
				Dur("duration", elapsed).
				Msg("request handled")
		}
	}
}
