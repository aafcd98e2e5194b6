package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dealscout/backend-go/internal/config"
	"dealscout/backend-go/internal/models"
	"dealscout/backend-go/internal/services"
)

func testAPI(t *testing.T, upstreamURL string) *API {
	t.Helper()
	cfg := config.Config{
		APIBaseURL:       upstreamURL,
		APIKey:           "test-key",
		DefaultZipCode:   "78704",
		DefaultRadius:    5,
		CacheTTL:         time.Minute,
		NegativeCacheTTL: time.Minute,
		RequestTimeout:   2 * time.Second,
		RetryMax:         0,
		MaxChains:        20,
	}
	cache := services.NewMemoryCache()
	client, err := services.NewDealScoutClient(cfg, cache)
	if err != nil {
		t.Fatalf("client construction failed: %v", err)
	}
	return New(cfg, cache, client)
}

func deadUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDealsFallsBackToSampleDataWhenUpstreamDown(t *testing.T) {
	api := testAPI(t, deadUpstream(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?zip=78704&radius=5&chains=HEB,Walmart", nil)
	rec := httptest.NewRecorder()
	api.Deals(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.DealsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Source != "sample" {
		t.Fatalf("expected sample source, got %s", resp.Source)
	}
	if resp.Total != 6 || len(resp.Items) != 6 {
		t.Fatalf("expected the 6-item sample set, got total=%d items=%d", resp.Total, len(resp.Items))
	}
	want := 161.0 / 6.0
	if math.Abs(resp.Metrics.AvgDiscountPercent-want) > 1e-9 {
		t.Fatalf("expected avg discount %.4f, got %.4f", want, resp.Metrics.AvgDiscountPercent)
	}
	if resp.Metrics.StoresFound != 4 {
		t.Fatalf("expected 4 stores, got %d", resp.Metrics.StoresFound)
	}
	if len(resp.Categories) == 0 || resp.Categories[0] != "All" {
		t.Fatalf("expected categories starting with All, got %v", resp.Categories)
	}
}

func TestDealsAppliesFilterAndSort(t *testing.T) {
	api := testAPI(t, deadUpstream(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?sort=price&category=Produce", nil)
	rec := httptest.NewRecorder()
	api.Deals(rec, req)

	var resp models.DealsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 6 {
		t.Fatalf("total must count the pre-filter dataset, got %d", resp.Total)
	}
	if resp.Filtered != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 produce deals, got %d", resp.Filtered)
	}
	if *resp.Items[0].Price > *resp.Items[1].Price {
		t.Fatalf("expected ascending prices, got %v then %v", *resp.Items[0].Price, *resp.Items[1].Price)
	}
}

func TestDealsQueryFilterMatchesBrand(t *testing.T) {
	api := testAPI(t, deadUpstream(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?q=dole", nil)
	rec := httptest.NewRecorder()
	api.Deals(rec, req)

	var resp models.DealsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Filtered != 1 || resp.Items[0].Brand != "Dole" {
		t.Fatalf("expected the Dole deal, got %+v", resp.Items)
	}
}

func TestDealsUsesLiveData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/deals/today" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("zip_code"); got != "10001" {
			t.Errorf("expected zip_code=10001, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"x","product_name":"Bread","price":2.49,"discount_percent":10,"store_id":"S1","store_name":"Aldi","category":"Bakery"}]`))
	}))
	defer srv.Close()
	api := testAPI(t, srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?zip=10001", nil)
	rec := httptest.NewRecorder()
	api.Deals(rec, req)

	var resp models.DealsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Source != "live" {
		t.Fatalf("expected live source, got %s", resp.Source)
	}
	if resp.Total != 1 || resp.Items[0].ProductName != "Bread" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestDealsSecondRequestServedFromCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"x","product_name":"Bread","price":2.49,"store_id":"S1","store_name":"Aldi"}]`))
	}))
	defer srv.Close()
	api := testAPI(t, srv.URL)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?zip=78704", nil)
		rec := httptest.NewRecorder()
		api.Deals(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if hits != 1 {
		t.Fatalf("expected one upstream call across identical requests, got %d", hits)
	}
}

func TestChainsListsKnownChains(t *testing.T) {
	api := testAPI(t, deadUpstream(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chains", nil)
	rec := httptest.NewRecorder()
	api.Chains(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Chains []string `json:"chains"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Chains) != 8 {
		t.Fatalf("expected 8 known chains, got %d", len(resp.Chains))
	}
}

func TestParseIntParamRejectsTrailingGarbage(t *testing.T) {
	if got := parseIntParam("5abc", 10, 1, 50); got != 10 {
		t.Fatalf("expected default for malformed value, got %d", got)
	}
	if got := parseIntParam("7", 10, 1, 50); got != 7 {
		t.Fatalf("expected parsed value, got %d", got)
	}
	if got := parseIntParam("", 10, 1, 50); got != 10 {
		t.Fatalf("expected default for empty value, got %d", got)
	}
	if got := parseIntParam("999", 10, 1, 50); got != 50 {
		t.Fatalf("expected clamp to max, got %d", got)
	}
	if got := parseIntParam("0", 10, 1, 50); got != 1 {
		t.Fatalf("expected clamp to min, got %d", got)
	}
}

func TestNormalizeSortDefaultsToBestValue(t *testing.T) {
	if got := normalizeSort("price"); got != services.SortPrice {
		t.Fatalf("expected price, got %s", got)
	}
	if got := normalizeSort("nonsense"); got != services.SortBestValue {
		t.Fatalf("expected best_value default, got %s", got)
	}
	if got := normalizeSort(""); got != services.SortBestValue {
		t.Fatalf("expected best_value for empty, got %s", got)
	}
}
