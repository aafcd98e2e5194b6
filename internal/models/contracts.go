package models

// Known store chains. The upstream API may return chains outside this set;
// they are passed through untouched.
const (
	ChainWalmart    = "Walmart"
	ChainTarget     = "Target"
	ChainHEB        = "HEB"
	ChainKroger     = "Kroger"
	ChainCostco     = "Costco"
	ChainAldi       = "Aldi"
	ChainWholeFoods = "Whole Foods"
	ChainSafeway    = "Safeway"
)

func KnownChains() []string {
	return []string{
		ChainWalmart, ChainTarget, ChainHEB, ChainKroger,
		ChainCostco, ChainAldi, ChainWholeFoods, ChainSafeway,
	}
}

// Deal is one discounted product at a store. Optional numeric fields stay
// pointers so a missing value is distinguishable from zero when sorting.
type Deal struct {
	ID              string   `json:"id"`
	ProductName     string   `json:"product_name"`
	Brand           string   `json:"brand,omitempty"`
	Category        string   `json:"category,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	OriginalPrice   *float64 `json:"original_price,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	StoreID         string   `json:"store_id"`
	StoreName       string   `json:"store_name"`
	Distance        *float64 `json:"distance,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	DealType        string   `json:"deal_type,omitempty"`
	DealDescription string   `json:"deal_description,omitempty"`
	IsOnSale        bool     `json:"is_on_sale,omitempty"`
	SaleEnds        string   `json:"sale_ends,omitempty"`
}

// Normalize fills display defaults for fields the upstream left out.
// Numeric fields are left nil so sort semantics keep seeing them as missing.
func (d *Deal) Normalize() {
	if d.ProductName == "" {
		d.ProductName = "Unknown Product"
	}
	if d.StoreName == "" {
		d.StoreName = "Unknown Store"
	}
}

type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	UPC             string   `json:"upc,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	OriginalPrice   *float64 `json:"original_price,omitempty"`
	UnitPrice       *float64 `json:"unit_price,omitempty"`
	Unit            string   `json:"unit,omitempty"`
	StoreID         string   `json:"store_id"`
	StoreName       string   `json:"store_name"`
	IsOnSale        bool     `json:"is_on_sale,omitempty"`
	SaleEnds        string   `json:"sale_ends,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
}

func (p *Product) Normalize() {
	if p.Name == "" {
		p.Name = "Unknown Product"
	}
	if p.StoreName == "" {
		p.StoreName = "Unknown Store"
	}
}

type Store struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Chain         string            `json:"chain"`
	Address       string            `json:"address,omitempty"`
	City          string            `json:"city,omitempty"`
	State         string            `json:"state,omitempty"`
	ZipCode       string            `json:"zip_code,omitempty"`
	Latitude      float64           `json:"latitude,omitempty"`
	Longitude     float64           `json:"longitude,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Hours         map[string]string `json:"hours,omitempty"`
	DistanceMiles *float64          `json:"distance_miles,omitempty"`
	IsOpen        *bool             `json:"is_open,omitempty"`
}

type PriceAlert struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name,omitempty"`
	TargetPrice   float64 `json:"target_price"`
	CurrentPrice  float64 `json:"current_price"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at,omitempty"`
	LastTriggered string  `json:"last_triggered,omitempty"`
}

// PriceDifference is current minus target; positive means the product still
// costs more than the user wants to pay.
func (a PriceAlert) PriceDifference() float64 {
	return a.CurrentPrice - a.TargetPrice
}

func (a PriceAlert) PriceDifferencePercent() float64 {
	if a.CurrentPrice == 0 {
		return 0
	}
	return (a.CurrentPrice - a.TargetPrice) / a.CurrentPrice * 100
}

type DealMetrics struct {
	ActiveDeals        int     `json:"active_deals"`
	StoresFound        int     `json:"stores_found"`
	AvgDiscountPercent float64 `json:"avg_discount_percent"`
}

type DealsResponse struct {
	TsISO      string      `json:"tsISO"`
	ZipCode    string      `json:"zip_code"`
	Radius     int         `json:"radius"`
	Source     string      `json:"source"`
	Total      int         `json:"total"`
	Filtered   int         `json:"filtered"`
	Sort       string      `json:"sort"`
	Categories []string    `json:"categories"`
	Metrics    DealMetrics `json:"metrics"`
	Items      []Deal      `json:"items"`
}

type SearchResponse struct {
	TsISO   string    `json:"tsISO"`
	Query   string    `json:"query"`
	ZipCode string    `json:"zip_code"`
	Radius  int       `json:"radius"`
	Source  string    `json:"source"`
	Total   int       `json:"total"`
	Items   []Product `json:"items"`
}

type StoresResponse struct {
	TsISO   string  `json:"tsISO"`
	ZipCode string  `json:"zip_code"`
	Radius  int     `json:"radius"`
	Total   int     `json:"total"`
	Items   []Store `json:"items"`
}

// AlertView is a PriceAlert with its derived price-gap fields materialized
// for the dashboard.
type AlertView struct {
	PriceAlert
	PriceDifference        float64 `json:"price_difference"`
	PriceDifferencePercent float64 `json:"price_difference_percent"`
}

func NewAlertView(a PriceAlert) AlertView {
	return AlertView{
		PriceAlert:             a,
		PriceDifference:        a.PriceDifference(),
		PriceDifferencePercent: a.PriceDifferencePercent(),
	}
}

type AlertsResponse struct {
	TsISO string      `json:"tsISO"`
	Total int         `json:"total"`
	Items []AlertView `json:"items"`
}

type TrendSeries struct {
	Category   string    `json:"category"`
	Months     []string  `json:"months"`
	Prices     []float64 `json:"prices"`
	Latest     float64   `json:"latest"`
	MoMPercent float64   `json:"mom_percent"`
}

type TrendsResponse struct {
	TsISO  string        `json:"tsISO"`
	Series []TrendSeries `json:"series"`
}

type DepStatus struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HealthResponse struct {
	Ok         bool                 `json:"ok"`
	TsISO      string               `json:"tsISO"`
	Service    string               `json:"service"`
	Version    string               `json:"version,omitempty"`
	Deps       []string             `json:"deps"`
	DepsStatus map[string]DepStatus `json:"deps_status"`
	Env        map[string]bool      `json:"env"`
}
