package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"dealscout/backend-go/internal/models"
)

// Where the effective deal set came from.
const (
	SourceLive   = "live"
	SourceSample = "sample"
)

// Sort options accepted by the deals endpoint.
const (
	SortBestValue = "best_value"
	SortPrice     = "price"
	SortDiscount  = "discount"
	SortDistance  = "distance"
)

// DealsService arbitrates between live and sample data and applies the
// filter/sort contract. The dashboard always gets something to render:
// an upstream failure or an empty deals list degrades to the sample set.
type DealsService struct {
	client *DealScoutClient
}

func NewDealsService(client *DealScoutClient) *DealsService {
	return &DealsService{client: client}
}

// EffectiveDeals returns the dataset in effect for this request plus its
// source marker. Only the deals listing substitutes sample data; other
// operations treat emptiness as meaningful.
func (s *DealsService) EffectiveDeals(ctx context.Context, zip string, radius int, chains []string) ([]models.Deal, string) {
	deals, err := s.client.GetTodaysDeals(ctx, zip, radius, chains)
	if err != nil {
		log.Printf("deals: upstream failed, serving sample data: %v", err)
		return SampleDeals(), SourceSample
	}
	if len(deals) == 0 {
		log.Printf("deals: upstream returned no deals for zip=%s radius=%d, serving sample data", zip, radius)
		return SampleDeals(), SourceSample
	}
	return deals, SourceLive
}

// FilterDeals keeps deals where the query is a case-insensitive substring
// of the name, brand or category, and the category selector matches.
// An empty query and "All" (or empty) category pass everything.
func FilterDeals(deals []models.Deal, query, category string) []models.Deal {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if q != "" {
			name := strings.ToLower(d.ProductName)
			brand := strings.ToLower(d.Brand)
			cat := strings.ToLower(d.Category)
			if !strings.Contains(name, q) && !strings.Contains(brand, q) && !strings.Contains(cat, q) {
				continue
			}
		}
		if category != "" && category != "All" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	return out
}

// SortDeals orders deals in place by one of the four supported options.
// Sorts are stable so equal keys keep their incoming order.
func SortDeals(deals []models.Deal, option string) {
	switch option {
	case SortPrice:
		sort.SliceStable(deals, func(i, j int) bool {
			return floatOr(deals[i].Price, math.Inf(1)) < floatOr(deals[j].Price, math.Inf(1))
		})
	case SortDiscount:
		sort.SliceStable(deals, func(i, j int) bool {
			return floatOr(deals[i].DiscountPercent, 0) > floatOr(deals[j].DiscountPercent, 0)
		})
	case SortDistance:
		sort.SliceStable(deals, func(i, j int) bool {
			return floatOr(deals[i].Distance, math.Inf(1)) < floatOr(deals[j].Distance, math.Inf(1))
		})
	default: // best value: discount descending, then price ascending
		sort.SliceStable(deals, func(i, j int) bool {
			di := floatOr(deals[i].DiscountPercent, 0)
			dj := floatOr(deals[j].DiscountPercent, 0)
			if di != dj {
				return di > dj
			}
			return floatOr(deals[i].Price, 0) < floatOr(deals[j].Price, 0)
		})
	}
}

// Summarize computes the KPI metrics the dashboard header renders.
func Summarize(deals []models.Deal) models.DealMetrics {
	stores := make(map[string]struct{}, len(deals))
	var totalDiscount float64
	for _, d := range deals {
		stores[d.StoreID] = struct{}{}
		totalDiscount += floatOr(d.DiscountPercent, 0)
	}
	avg := 0.0
	if len(deals) > 0 {
		avg = totalDiscount / float64(len(deals))
	}
	return models.DealMetrics{
		ActiveDeals:        len(deals),
		StoresFound:        len(stores),
		AvgDiscountPercent: avg,
	}
}

// Categories lists the distinct categories present, sorted, with "All"
// first. Deals without a category fall under "Other".
func Categories(deals []models.Deal) []string {
	seen := make(map[string]struct{}, len(deals))
	for _, d := range deals {
		cat := d.Category
		if cat == "" {
			cat = "Other"
		}
		seen[cat] = struct{}{}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append([]string{"All"}, cats...)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
