package http

import (
	"net/http"

	"dealscout/backend-go/internal/config"
	"dealscout/backend-go/internal/handlers"
	"dealscout/backend-go/internal/services"
)

func NewRouter(cfg config.Config, cache services.Cache, client *services.DealScoutClient) http.Handler {
	api := handlers.New(cfg, cache, client)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", api.Health)
	mux.HandleFunc("/api/v1/deals", api.Deals)
	mux.HandleFunc("/api/v1/chains", api.Chains)
	mux.HandleFunc("/api/v1/products/search", api.Search)
	mux.HandleFunc("/api/v1/stores", api.Stores)
	mux.HandleFunc("/api/v1/stores/", api.Stores)
	mux.HandleFunc("/api/v1/alerts", api.Alerts)
	mux.HandleFunc("/api/v1/alerts/", api.Alerts)
	mux.HandleFunc("/api/v1/trends", api.Trends)

	h := http.Handler(mux)
	h = withRecovery(h)
	h = withLogging(h)
	h = withRequestID(h)
	h = withRateLimit(cfg.RateLimitPerMin)(h)
	h = withCORS(h)
	return h
}
