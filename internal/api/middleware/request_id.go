package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	apiContext "blockstream/internal/api/context"
	"blockstream/internal/platform/audit"
	"blockstream/internal/platform/ids"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing a client-supplied
// X-Request-ID when present. The id is echoed in the response and attached to
// the context for logging and audit entries together with the client address.
// X-Forwarded-For is honoured only when trustProxy is set.
func RequestID(gen ids.Generator, trustProxy bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if id == "" || len(id) > 128 {
				id = gen.NewID(ids.PrefixRequest)
			}
			w.Header().Set(RequestIDHeader, id)

			ip := ClientIP(r, trustProxy)
			ctx := context.WithValue(r.Context(), apiContext.RequestID, id)
			ctx = context.WithValue(ctx, apiContext.ClientIP, ip)
			ctx = audit.WithSource(ctx, audit.Source{
				RequestID: id,
				IPAddress: ip,
				UserAgent: r.UserAgent(),
			})
			next(w, r.WithContext(ctx))
		}
	}
}

// ClientIP returns the connection address without its port. With trustProxy
// the first X-Forwarded-For hop wins instead.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// clientIPFrom returns the address resolved by RequestID, or the connection
// address when the request did not pass through it.
func clientIPFrom(r *http.Request) string {
	if ip, ok := r.Context().Value(apiContext.ClientIP).(string); ok && ip != "" {
		return ip
	}
	return ClientIP(r, false)
}

func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(apiContext.RequestID).(string)
	return id
}
