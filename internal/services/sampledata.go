package services

import "dealscout/backend-go/internal/models"

func f(v float64) *float64 { return &v }

// SampleDeals is the fixed fallback dataset shown when the upstream returns
// nothing. Same shape as live deals so the rest of the pipeline cannot tell
// the difference.
func SampleDeals() []models.Deal {
	return []models.Deal{
		{
			ID:              "1",
			ProductName:     "Organic Whole Milk - 1 Gallon",
			Brand:           "Organic Valley",
			Price:           f(4.99),
			OriginalPrice:   f(5.99),
			DiscountPercent: f(17),
			StoreName:       "HEB",
			StoreID:         "HEB-123",
			Distance:        f(1.5),
			ImageURL:        "https://m.media-amazon.com/images/I/71vUGB0GJEL._AC_UF1000,1000_QL80_.jpg",
			Category:        "Dairy",
		},
		{
			ID:              "2",
			ProductName:     "Large Brown Eggs - 12 Count",
			Brand:           "Happy Egg Co",
			Price:           f(3.49),
			OriginalPrice:   f(4.99),
			DiscountPercent: f(30),
			StoreName:       "Walmart",
			StoreID:         "WAL-456",
			Distance:        f(2.1),
			ImageURL:        "https://m.media-amazon.com/images/I/81x5K5VvWEL._AC_UF1000,1000_QL80_.jpg",
			Category:        "Dairy",
		},
		{
			ID:              "3",
			ProductName:     "Fresh Ground Beef - 1lb",
			Brand:           "Certified Angus Beef",
			Price:           f(5.99),
			OriginalPrice:   f(7.99),
			DiscountPercent: f(25),
			StoreName:       "HEB",
			StoreID:         "HEB-123",
			Distance:        f(1.5),
			ImageURL:        "https://m.media-amazon.com/images/I/71vUGB0GJEL._AC_UF1000,1000_QL80_.jpg",
			Category:        "Meat",
		},
		{
			ID:              "4",
			ProductName:     "Organic Bananas - 1lb",
			Brand:           "Dole",
			Price:           f(0.59),
			OriginalPrice:   f(0.79),
			DiscountPercent: f(25),
			StoreName:       "Whole Foods",
			StoreID:         "WF-789",
			Distance:        f(3.2),
			ImageURL:        "https://m.media-amazon.com/images/I/61fZ+YAYGaL._AC_UF1000,1000_QL80_.jpg",
			Category:        "Produce",
		},
		{
			ID:              "5",
			ProductName:     "Cage-Free Chicken Breast - 2.5lb",
			Brand:           "Perdue",
			Price:           f(8.99),
			OriginalPrice:   f(12.99),
			DiscountPercent: f(31),
			StoreName:       "HEB",
			StoreID:         "HEB-123",
			Distance:        f(1.5),
			ImageURL:        "https://m.media-amazon.com/images/I/61fZ+YAYGaL._AC_UF1000,1000_QL80_.jpg",
			Category:        "Meat",
		},
		{
			ID:              "6",
			ProductName:     "Organic Strawberries - 16oz",
			Brand:           "Driscoll's",
			Price:           f(3.99),
			OriginalPrice:   f(5.99),
			DiscountPercent: f(33),
			StoreName:       "Trader Joe's",
			StoreID:         "TJ-101",
			Distance:        f(4.5),
			ImageURL:        "https://m.media-amazon.com/images/I/61fZ+YAYGaL._AC_UF1000,1000_QL80_.jpg",
			Category:        "Produce",
		},
	}
}

var trendMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var trendData = map[string][]float64{
	"Dairy":   {4.99, 4.79, 4.89, 4.95, 4.99, 5.29, 5.49, 5.29, 5.19, 4.99, 4.89, 4.79},
	"Meat":    {8.99, 9.29, 8.79, 8.99, 9.49, 9.99, 10.49, 10.29, 9.99, 9.49, 9.29, 9.49},
	"Produce": {3.49, 3.29, 3.19, 2.99, 2.79, 2.99, 3.29, 3.49, 3.29, 2.99, 3.19, 3.49},
}

// TrendSeriesFor returns the monthly average-price series for the given
// category, or all categories when category is empty or "All".
func TrendSeriesFor(category string) []models.TrendSeries {
	wanted := []string{"Dairy", "Meat", "Produce"}
	if category != "" && category != "All" {
		wanted = []string{category}
	}
	out := make([]models.TrendSeries, 0, len(wanted))
	for _, name := range wanted {
		prices, ok := trendData[name]
		if !ok {
			continue
		}
		out = append(out, models.TrendSeries{
			Category:   name,
			Months:     trendMonths,
			Prices:     prices,
			Latest:     prices[len(prices)-1],
			MoMPercent: momChange(prices),
		})
	}
	return out
}

func momChange(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	prev := prices[len(prices)-2]
	if prev == 0 {
		return 0
	}
	return (prices[len(prices)-1] - prev) / prev * 100
}
