package handlers

import (
	"log"
	"net/http"
	"strings"

	"dealscout/backend-go/internal/models"
)

// Stores handles both the nearby listing (/api/v1/stores) and the detail
// lookup (/api/v1/stores/{id}) off the same route prefix.
func (a *API) Stores(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/stores"), "/")
	if id != "" {
		a.storeDetails(w, r, id)
		return
	}

	q := r.URL.Query()
	zip := strings.TrimSpace(q.Get("zip"))
	if zip == "" {
		zip = a.cfg.DefaultZipCode
	}
	radius := parseIntParam(q.Get("radius"), a.cfg.DefaultRadius, 1, 50)
	chains := parseChains(q.Get("chains"), a.cfg.MaxChains)

	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	stores, err := a.client.GetNearbyStores(ctx, zip, radius, chains)
	if err != nil {
		log.Printf("stores: upstream failed: %v", err)
		stores = []models.Store{}
	}
	if stores == nil {
		stores = []models.Store{}
	}

	writeJSON(w, http.StatusOK, models.StoresResponse{
		TsISO:   nowISO(),
		ZipCode: zip,
		Radius:  radius,
		Total:   len(stores),
		Items:   stores,
	})
}

func (a *API) storeDetails(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := timeboxed(r, a.cfg.RequestTimeout)
	defer cancel()

	store, err := a.client.GetStoreDetails(ctx, id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}
