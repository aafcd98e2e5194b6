package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"dealscout/backend-go/internal/models"
)

// Alerts dispatches /api/v1/alerts and /api/v1/alerts/{id}. Alert state is
// never cached and never substituted: zero alerts is a valid answer.
func (a *API) Alerts(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/alerts"), "/")

	switch {
	case r.Method == http.MethodGet && id == "":
		a.listAlerts(w, r)
	case r.Method == http.MethodPost && id == "":
		a.createAlert(w, r)
	case r.Method == http.MethodDelete && id != "":
		a.deleteAlert(w, r, id)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method_not_allowed"})
	}
}

func (a *API) listAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	alerts, err := a.client.GetUserAlerts(ctx)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	views := make([]models.AlertView, 0, len(alerts))
	for _, al := range alerts {
		views = append(views, models.NewAlertView(al))
	}
	writeJSON(w, http.StatusOK, models.AlertsResponse{
		TsISO: nowISO(),
		Total: len(views),
		Items: views,
	})
}

type createAlertRequest struct {
	ProductID   string  `json:"product_id"`
	TargetPrice float64 `json:"target_price"`
}

func (a *API) createAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}
	if strings.TrimSpace(req.ProductID) == "" || req.TargetPrice <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "product_id and a positive target_price are required"})
		return
	}

	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	alert, err := a.client.CreatePriceAlert(ctx, req.ProductID, req.TargetPrice)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.NewAlertView(*alert))
}

func (a *API) deleteAlert(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	if err := a.client.DeleteAlert(ctx, id); err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}
