package handlers

import (
	"errors"
	"net/http"

	"dealscout/backend-go/internal/services"
)

// writeUpstreamError maps a client failure onto an HTTP status for the
// pass-through endpoints (alerts, store details). The deals listing never
// takes this path; it degrades to sample data instead.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var upErr *services.UpstreamError
	if errors.As(err, &upErr) {
		switch {
		case upErr.Status == http.StatusNotFound:
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "not_found"})
		case upErr.Status == http.StatusTooManyRequests:
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": err.Error(), "upstream_status": upErr.Status})
		case upErr.Status >= 400 && upErr.Status < 500:
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error(), "upstream_status": upErr.Status})
		case upErr.Kind == services.FailureTimeout:
			writeJSON(w, http.StatusGatewayTimeout, map[string]any{"error": "upstream_timeout"})
		default:
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error(), "upstream_status": upErr.Status})
		}
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
}
