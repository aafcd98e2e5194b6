package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"dealscout/backend-go/internal/config"
	"dealscout/backend-go/internal/models"
)

// FailureKind classifies why an upstream call produced no data. Callers get
// a typed error instead of a bare nil so logging can tell a dead network
// from a misbehaving API, but no failure ever escapes past the handlers.
type FailureKind string

const (
	FailureNetwork   FailureKind = "network"
	FailureTimeout   FailureKind = "timeout"
	FailureBadStatus FailureKind = "bad_status"
	FailureParse     FailureKind = "parse"
)

type UpstreamError struct {
	Kind   FailureKind
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("dealscout api: %s (status %d)", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("dealscout api: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("dealscout api: %s", e.Kind)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

const backoffBase = 300 * time.Millisecond

// DealScoutClient wraps the upstream deals API with bounded retries and a
// fingerprint-keyed response cache. Read operations are cached; alert
// mutations always hit the network.
type DealScoutClient struct {
	baseURL  string
	apiKey   string
	hc       *http.Client
	cache    Cache
	ttl      time.Duration
	negTTL   time.Duration
	retryMax int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDealScoutClient(cfg config.Config, cache Cache) (*DealScoutClient, error) {
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("dealscout client: invalid base url %q", cfg.APIBaseURL)
	}
	return &DealScoutClient{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		apiKey:  cfg.APIKey,
		hc: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		cache:    cache,
		ttl:      cfg.CacheTTL,
		negTTL:   cfg.NegativeCacheTTL,
		retryMax: cfg.RetryMax,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// keyLock serializes the read-fetch-store cycle per fingerprint so two
// concurrent requests for the same key issue a single upstream call.
func (c *DealScoutClient) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

func (c *DealScoutClient) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, *UpstreamError) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &UpstreamError{Kind: FailureParse, Err: err}
		}
		payload = b
	}

	var lastErr *UpstreamError
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, classifyNetErr(err)
		}
		if attempt > 0 {
			if err := sleepCtx(ctx, backoffBase<<(attempt-1)); err != nil {
				return nil, classifyNetErr(err)
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, &UpstreamError{Kind: FailureNetwork, Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		res, err := c.hc.Do(req)
		if err != nil {
			lastErr = classifyNetErr(err)
			if lastErr.Kind == FailureTimeout && ctx.Err() != nil {
				return nil, lastErr
			}
			log.Printf("dealscout: %s %s attempt %d/%d failed: %v", method, path, attempt+1, c.retryMax+1, err)
			continue
		}

		if res.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
			res.Body.Close()
			lastErr = &UpstreamError{Kind: FailureBadStatus, Status: res.StatusCode}
			if retryableStatus[res.StatusCode] {
				log.Printf("dealscout: %s %s attempt %d/%d status %d", method, path, attempt+1, c.retryMax+1, res.StatusCode)
				continue
			}
			return nil, lastErr
		}

		b, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			lastErr = classifyNetErr(err)
			continue
		}
		return b, nil
	}
	return nil, lastErr
}

func classifyNetErr(err error) *UpstreamError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Kind: FailureTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &UpstreamError{Kind: FailureTimeout, Err: err}
	}
	return &UpstreamError{Kind: FailureNetwork, Err: err}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cachedPayload is the envelope stored in the cache. Failures are cached as
// explicit negative entries under the shorter negative TTL so a flapping
// upstream is retried well before a good result would expire.
type cachedPayload struct {
	Failed bool            `json:"failed,omitempty"`
	Kind   string          `json:"kind,omitempty"`
	Status int             `json:"status,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

func (c *DealScoutClient) cachedFetch(ctx context.Context, key string, fetch func() ([]byte, *UpstreamError)) ([]byte, *UpstreamError) {
	if c.cache == nil {
		return fetch()
	}

	l := c.keyLock(key)
	l.Lock()
	defer l.Unlock()

	if b, ok := c.cache.Get(ctx, key); ok {
		var entry cachedPayload
		if err := UnmarshalCache(b, &entry); err == nil {
			if entry.Failed {
				return nil, &UpstreamError{Kind: FailureKind(entry.Kind), Status: entry.Status}
			}
			return entry.Data, nil
		}
	}

	data, ferr := fetch()
	if ferr != nil {
		if b, err := MarshalCache(cachedPayload{Failed: true, Kind: string(ferr.Kind), Status: ferr.Status}); err == nil {
			_ = c.cache.Set(ctx, key, b, c.negTTL)
		}
		return nil, ferr
	}
	ttl := c.ttl
	if emptyResult(data) {
		ttl = c.negTTL
	}
	if b, err := MarshalCache(cachedPayload{Data: data}); err == nil {
		_ = c.cache.Set(ctx, key, b, ttl)
	}
	return data, nil
}

// emptyResult reports whether the upstream body carries no items. Empty
// lists expire under the negative TTL like failures, so a transient
// zero-result answer never pins a fingerprint for the full cache TTL.
func emptyResult(data []byte) bool {
	s := strings.TrimSpace(string(data))
	return s == "" || s == "[]" || s == "null"
}

// dealsCacheKey builds the deterministic fingerprint for a deals-style
// request. Chain lists are lowercased and sorted so permutations of the
// same selection share one cache entry.
func dealsCacheKey(op, zip string, radius int, chains []string) string {
	safe := make([]string, 0, len(chains))
	for _, ch := range chains {
		if ch == "" {
			continue
		}
		safe = append(safe, strings.ToLower(ch))
	}
	sort.Strings(safe)
	sum := sha1.Sum([]byte(strings.Join(safe, ",")))
	return fmt.Sprintf("%s:v1:%s:%d:%s", op, zip, radius, hex.EncodeToString(sum[:8]))
}

func searchCacheKey(query, zip string, radius int) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf("search:v1:%s:%d:%s", zip, radius, hex.EncodeToString(sum[:8]))
}

func (c *DealScoutClient) GetTodaysDeals(ctx context.Context, zip string, radius int, chains []string) ([]models.Deal, error) {
	key := dealsCacheKey("deals", zip, radius, chains)
	data, ferr := c.cachedFetch(ctx, key, func() ([]byte, *UpstreamError) {
		q := url.Values{}
		q.Set("zip_code", zip)
		q.Set("radius", fmt.Sprintf("%d", radius))
		if len(chains) > 0 {
			q.Set("chains", strings.Join(chains, ","))
		}
		return c.doRequest(ctx, http.MethodGet, "deals/today", q, nil)
	})
	if ferr != nil {
		return nil, ferr
	}
	var deals []models.Deal
	if err := json.Unmarshal(data, &deals); err != nil {
		return nil, &UpstreamError{Kind: FailureParse, Err: err}
	}
	for i := range deals {
		deals[i].Normalize()
	}
	return deals, nil
}

func (c *DealScoutClient) SearchProducts(ctx context.Context, query, zip string, radius int) ([]models.Product, error) {
	key := searchCacheKey(query, zip, radius)
	data, ferr := c.cachedFetch(ctx, key, func() ([]byte, *UpstreamError) {
		q := url.Values{}
		q.Set("query", query)
		q.Set("zip_code", zip)
		q.Set("radius", fmt.Sprintf("%d", radius))
		return c.doRequest(ctx, http.MethodGet, "products/search", q, nil)
	})
	if ferr != nil {
		return nil, ferr
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, &UpstreamError{Kind: FailureParse, Err: err}
	}
	for i := range products {
		products[i].Normalize()
	}
	return products, nil
}

func (c *DealScoutClient) GetNearbyStores(ctx context.Context, zip string, radius int, chains []string) ([]models.Store, error) {
	key := dealsCacheKey("stores", zip, radius, chains)
	data, ferr := c.cachedFetch(ctx, key, func() ([]byte, *UpstreamError) {
		q := url.Values{}
		q.Set("zip_code", zip)
		q.Set("radius", fmt.Sprintf("%d", radius))
		if len(chains) > 0 {
			q.Set("chains", strings.Join(chains, ","))
		}
		return c.doRequest(ctx, http.MethodGet, "stores/nearby", q, nil)
	})
	if ferr != nil {
		return nil, ferr
	}
	var stores []models.Store
	if err := json.Unmarshal(data, &stores); err != nil {
		return nil, &UpstreamError{Kind: FailureParse, Err: err}
	}
	return stores, nil
}

func (c *DealScoutClient) GetStoreDetails(ctx context.Context, storeID string) (*models.Store, error) {
	key := "store:v1:" + storeID
	data, ferr := c.cachedFetch(ctx, key, func() ([]byte, *UpstreamError) {
		return c.doRequest(ctx, http.MethodGet, "stores/"+url.PathEscape(storeID), nil, nil)
	})
	if ferr != nil {
		return nil, ferr
	}
	var store models.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, &UpstreamError{Kind: FailureParse, Err: err}
	}
	return &store, nil
}

func (c *DealScoutClient) CreatePriceAlert(ctx context.Context, productID string, targetPrice float64) (*models.PriceAlert, error) {
	body := map[string]any{
		"product_id":   productID,
		"target_price": targetPrice,
	}
	data, ferr := c.doRequest(ctx, http.MethodPost, "alerts", nil, body)
	if ferr != nil {
		return nil, ferr
	}
	var alert models.PriceAlert
	if err := json.Unmarshal(data, &alert); err != nil {
		return nil, &UpstreamError{Kind: FailureParse, Err: err}
	}
	return &alert, nil
}

// GetUserAlerts is never cached: alert state changes on every create/delete
// and an empty list is a legitimate answer, not a failure.
func (c *DealScoutClient) GetUserAlerts(ctx context.Context) ([]models.PriceAlert, error) {
	data, ferr := c.doRequest(ctx, http.MethodGet, "alerts", nil, nil)
	if ferr != nil {
		return nil, ferr
	}
	var alerts []models.PriceAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, &UpstreamError{Kind: FailureParse, Err: err}
	}
	if alerts == nil {
		alerts = []models.PriceAlert{}
	}
	return alerts, nil
}

// DeleteAlert reports the real outcome of the upstream call rather than
// assuming success once the request is issued.
func (c *DealScoutClient) DeleteAlert(ctx context.Context, alertID string) error {
	_, ferr := c.doRequest(ctx, http.MethodDelete, "alerts/"+url.PathEscape(alertID), nil, nil)
	if ferr != nil {
		return ferr
	}
	return nil
}

// Health probes upstream reachability. The API exposes no dedicated health
// route, so any HTTP answer on the alerts endpoint counts as reachable.
func (c *DealScoutClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/alerts", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
	return nil
}
