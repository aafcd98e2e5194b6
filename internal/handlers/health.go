package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"dealscout/backend-go/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := []string{"dealscout_api"}
	depsStatus := map[string]models.DepStatus{}
	ok := true
	if err := a.client.Health(ctx); err != nil {
		ok = false
		depsStatus["dealscout_api"] = models.DepStatus{Ok: false, Error: err.Error()}
	} else {
		depsStatus["dealscout_api"] = models.DepStatus{Ok: true}
	}

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Ok:         ok,
		TsISO:      nowISO(),
		Service:    "backend-go",
		Version:    os.Getenv("SERVICE_VERSION"),
		Deps:       deps,
		DepsStatus: depsStatus,
		Env: map[string]bool{
			"API_KEY":      os.Getenv("API_KEY") != "",
			"API_BASE_URL": os.Getenv("API_BASE_URL") != "",
			"REDIS_URL":    os.Getenv("REDIS_URL") != "",
		},
	})
}
