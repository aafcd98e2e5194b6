package handlers

import (
	"log"
	"net/http"
	"strings"

	"dealscout/backend-go/internal/models"
)

// Search proxies the product search endpoint. Unlike the deals listing,
// an empty result is meaningful here and is never replaced with sample data.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing query"})
		return
	}
	zip := strings.TrimSpace(q.Get("zip"))
	if zip == "" {
		zip = a.cfg.DefaultZipCode
	}
	radius := parseIntParam(q.Get("radius"), a.cfg.DefaultRadius, 1, 50)

	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	source := "live"
	products, err := a.client.SearchProducts(ctx, query, zip, radius)
	if err != nil {
		log.Printf("search: upstream failed: %v", err)
		source = "unavailable"
		products = []models.Product{}
	}
	if products == nil {
		products = []models.Product{}
	}

	writeJSON(w, http.StatusOK, models.SearchResponse{
		TsISO:   nowISO(),
		Query:   query,
		ZipCode: zip,
		Radius:  radius,
		Source:  source,
		Total:   len(products),
		Items:   products,
	})
}
