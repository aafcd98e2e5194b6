package handlers

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"dealscout/backend-go/internal/models"
	"dealscout/backend-go/internal/services"
)

// Deals runs the full listing pipeline: effective dataset (live or sample),
// free-text and category filtering, sorting, KPI metrics. It never fails:
// an unreachable upstream degrades to sample data, never to an error page.
func (a *API) Deals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	zip := strings.TrimSpace(q.Get("zip"))
	if zip == "" {
		zip = a.cfg.DefaultZipCode
	}
	radius := parseIntParam(q.Get("radius"), a.cfg.DefaultRadius, 1, 50)
	chains := parseChains(q.Get("chains"), a.cfg.MaxChains)
	search := q.Get("q")
	category := strings.TrimSpace(q.Get("category"))
	sortOption := normalizeSort(q.Get("sort"))

	pageKey := dealsPageKey(zip, radius, chains, search, category, sortOption)
	if a.cache != nil {
		if b, ok := a.cache.Get(r.Context(), pageKey); ok {
			var cached models.DealsResponse
			if err := services.UnmarshalCache(b, &cached); err == nil {
				writeJSON(w, http.StatusOK, cached)
				return
			}
		}
	}

	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	deals, source := a.deals.EffectiveDeals(ctx, zip, radius, chains)
	metrics := services.Summarize(deals)
	categories := services.Categories(deals)

	filtered := services.FilterDeals(deals, search, category)
	services.SortDeals(filtered, sortOption)

	resp := models.DealsResponse{
		TsISO:      nowISO(),
		ZipCode:    zip,
		Radius:     radius,
		Source:     source,
		Total:      len(deals),
		Filtered:   len(filtered),
		Sort:       sortOption,
		Categories: categories,
		Metrics:    metrics,
		Items:      filtered,
	}

	// only live pages are cached: a cached sample page would hide an
	// upstream recovery for the whole TTL
	if a.cache != nil && source == services.SourceLive {
		if b, err := services.MarshalCache(resp); err == nil {
			_ = a.cache.Set(r.Context(), pageKey, b, a.cfg.CacheTTL)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func dealsPageKey(zip string, radius int, chains []string, search, category, sortOption string) string {
	safe := make([]string, 0, len(chains))
	for _, ch := range chains {
		safe = append(safe, strings.ToLower(ch))
	}
	sort.Strings(safe)
	raw := strings.Join(safe, ",") + "|" + strings.ToLower(strings.TrimSpace(search)) + "|" + category
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("dealspage:v1:%s:%d:%s:%s", zip, radius, sortOption, hex.EncodeToString(sum[:8]))
}

// Chains lists the store chains the dashboard offers in its store selector.
func (a *API) Chains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tsISO":  nowISO(),
		"chains": models.KnownChains(),
	})
}
