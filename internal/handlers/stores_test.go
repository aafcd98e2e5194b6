package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealscout/backend-go/internal/models"
)

func TestStoresListDegradesToEmptyOnFailure(t *testing.T) {
	api := testAPI(t, deadUpstream(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores?zip=78704&radius=5", nil)
	rec := httptest.NewRecorder()
	api.Stores(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.StoresResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 0 || len(resp.Items) != 0 {
		t.Fatalf("expected empty store list, got %+v", resp.Items)
	}
}

func TestStoresListReturnsUpstreamStores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stores/nearby" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"HEB-123","name":"HEB Central","chain":"HEB","zip_code":"78704"}]`))
	}))
	defer srv.Close()
	api := testAPI(t, srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	rec := httptest.NewRecorder()
	api.Stores(rec, req)

	var resp models.StoresResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].Chain != models.ChainHEB {
		t.Fatalf("unexpected stores: %+v", resp.Items)
	}
}

func TestStoreDetailsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	api := testAPI(t, srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/nope", nil)
	rec := httptest.NewRecorder()
	api.Stores(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStoreDetailsFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stores/HEB-123" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"HEB-123","name":"HEB Central","chain":"HEB","city":"Austin"}`))
	}))
	defer srv.Close()
	api := testAPI(t, srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores/HEB-123", nil)
	rec := httptest.NewRecorder()
	api.Stores(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var store models.Store
	if err := json.Unmarshal(rec.Body.Bytes(), &store); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if store.City != "Austin" {
		t.Fatalf("unexpected store: %+v", store)
	}
}

func TestTrendsKnownAndUnknownCategory(t *testing.T) {
	api := testAPI(t, deadUpstream(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends?category=Meat", nil)
	rec := httptest.NewRecorder()
	api.Trends(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.TrendsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Series) != 1 || resp.Series[0].Category != "Meat" {
		t.Fatalf("unexpected series: %+v", resp.Series)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/trends?category=Seafood", nil)
	rec = httptest.NewRecorder()
	api.Trends(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", rec.Code)
	}
}
