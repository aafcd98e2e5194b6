package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dealscout/backend-go/internal/config"
	"dealscout/backend-go/internal/services"
)

type API struct {
	cfg    config.Config
	cache  services.Cache
	client *services.DealScoutClient
	deals  *services.DealsService
}

func New(cfg config.Config, cache services.Cache, client *services.DealScoutClient) *API {
	return &API{
		cfg:    cfg,
		cache:  cache,
		client: client,
		deals:  services.NewDealsService(client),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseChains(raw string, max int) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) >= max {
			break
		}
	}
	return out
}

func parseIntParam(v string, def int, min int, max int) int {
	if v == "" {
		return def
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if out < min {
		return min
	}
	if out > max {
		return max
	}
	return out
}

func normalizeSort(v string) string {
	switch v {
	case services.SortPrice, services.SortDiscount, services.SortDistance, services.SortBestValue:
		return v
	default:
		return services.SortBestValue
	}
}

func timeboxed(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
