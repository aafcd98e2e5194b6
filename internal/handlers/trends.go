package handlers

import (
	"net/http"
	"strings"

	"dealscout/backend-go/internal/models"
	"dealscout/backend-go/internal/services"
)

// Trends serves the monthly average-price series the dashboard charts.
func (a *API) Trends(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	series := services.TrendSeriesFor(category)
	if len(series) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown_category"})
		return
	}
	writeJSON(w, http.StatusOK, models.TrendsResponse{
		TsISO:  nowISO(),
		Series: series,
	})
}
