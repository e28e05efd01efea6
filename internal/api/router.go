package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "blockstream/internal/api/context"
	"blockstream/internal/api/handlers"
	"blockstream/internal/api/middleware"
	"blockstream/internal/pkg/errors"
	"blockstream/internal/platform/ids"
	"blockstream/internal/platform/observability"
)

type Dependencies struct {
	WebhookHandler   *handlers.WebhookHandler
	IndexingHandler  *handlers.IndexingHandler
	DatabaseHandler  *handlers.DatabaseHandler
	ExplorerHandler  *handlers.ExplorerHandler
	DashboardHandler *handlers.DashboardHandler
	StatusHandler    *handlers.StatusHandler
	AuditHandler     *handlers.AuditHandler
	HealthHandler    *handlers.HealthHandler
	MetricsHandler   *handlers.MetricsHandler
	RateLimiter      *middleware.RateLimiter
	IDs              ids.Generator
	Metrics          *observability.Metrics
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy       bool
}

type middlewareFunc = func(http.HandlerFunc) http.HandlerFunc

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()
	router.PanicHandler = middleware.Recover
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Route not found", nil)
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	common := []middlewareFunc{middleware.RequestID(deps.IDs, deps.TrustProxy), middleware.AccessLog(deps.Metrics)}
	write := append(append([]middlewareFunc{}, common...), deps.RateLimiter.Limit)

	// Health and metrics
	router.GET("/health", chain("/health", deps.HealthHandler.Check))
	router.GET("/metrics", chain("/metrics", deps.MetricsHandler.Export))

	// Webhooks
	router.GET("/api/v1/webhooks", chain("/api/v1/webhooks", deps.WebhookHandler.List, common...))
	router.POST("/api/v1/webhooks", chain("/api/v1/webhooks", deps.WebhookHandler.Create, write...))
	router.GET("/api/v1/webhooks/:webhook_id",
		chain("/api/v1/webhooks/:webhook_id", deps.WebhookHandler.Get, common...))

	// Indexing
	router.GET("/api/v1/indexing", chain("/api/v1/indexing", deps.IndexingHandler.List, common...))
	router.POST("/api/v1/indexing", chain("/api/v1/indexing", deps.IndexingHandler.Create, write...))
	router.GET("/api/v1/indexing/:config_id",
		chain("/api/v1/indexing/:config_id", deps.IndexingHandler.Get, common...))
	router.PATCH("/api/v1/indexing/:config_id",
		chain("/api/v1/indexing/:config_id", deps.IndexingHandler.SetEnabled, write...))
	router.POST("/api/v1/indexing/:config_id/toggle",
		chain("/api/v1/indexing/:config_id/toggle", deps.IndexingHandler.Toggle, write...))

	// Target database profile
	router.GET("/api/v1/database", chain("/api/v1/database", deps.DatabaseHandler.Get, common...))
	router.PUT("/api/v1/database", chain("/api/v1/database", deps.DatabaseHandler.Save, write...))
	router.PATCH("/api/v1/database", chain("/api/v1/database", deps.DatabaseHandler.Update, write...))
	router.POST("/api/v1/database/test", chain("/api/v1/database/test", deps.DatabaseHandler.Test, write...))

	// Explorer and overview
	router.GET("/api/v1/explorer/nft-bids",
		chain("/api/v1/explorer/nft-bids", deps.ExplorerHandler.NFTBids, common...))
	router.GET("/api/v1/explorer/token-prices",
		chain("/api/v1/explorer/token-prices", deps.ExplorerHandler.TokenPrices, common...))
	router.GET("/api/v1/dashboard", chain("/api/v1/dashboard", deps.DashboardHandler.Get, common...))
	router.GET("/api/v1/status", chain("/api/v1/status", deps.StatusHandler.Get, common...))
	router.GET("/api/v1/logs", chain("/api/v1/logs", deps.AuditHandler.List, common...))

	return router
}

// Helper function to chain middlewares
func chain(route string, handler http.HandlerFunc, middlewares ...middlewareFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(route, handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(route string, handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		ctx = context.WithValue(ctx, apiContext.Route, route)
		handler(w, r.WithContext(ctx))
	}
}
