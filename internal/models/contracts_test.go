package models

import (
	"math"
	"testing"
)

func TestPriceAlertDerivedFields(t *testing.T) {
	a := PriceAlert{TargetPrice: 3.50, CurrentPrice: 4.00}
	if diff := a.PriceDifference(); math.Abs(diff-0.50) > 1e-9 {
		t.Fatalf("expected difference 0.50, got %v", diff)
	}
	if pct := a.PriceDifferencePercent(); math.Abs(pct-12.5) > 1e-9 {
		t.Fatalf("expected 12.5%%, got %v", pct)
	}
}

func TestPriceAlertZeroCurrentPrice(t *testing.T) {
	a := PriceAlert{TargetPrice: 3.50, CurrentPrice: 0}
	if pct := a.PriceDifferencePercent(); pct != 0 {
		t.Fatalf("expected 0%% for zero current price, got %v", pct)
	}
}

func TestDealNormalizeFillsDisplayDefaults(t *testing.T) {
	d := Deal{ID: "1"}
	d.Normalize()
	if d.ProductName != "Unknown Product" {
		t.Fatalf("unexpected product name: %q", d.ProductName)
	}
	if d.StoreName != "Unknown Store" {
		t.Fatalf("unexpected store name: %q", d.StoreName)
	}
	if d.Price != nil {
		t.Fatal("normalize must not invent a price")
	}

	d = Deal{ProductName: "Milk", StoreName: "HEB"}
	d.Normalize()
	if d.ProductName != "Milk" || d.StoreName != "HEB" {
		t.Fatal("normalize must not overwrite present fields")
	}
}

func TestNewAlertViewMaterializesDerivedFields(t *testing.T) {
	v := NewAlertView(PriceAlert{ID: "a1", TargetPrice: 2, CurrentPrice: 4})
	if v.PriceDifference != 2 {
		t.Fatalf("expected difference 2, got %v", v.PriceDifference)
	}
	if v.PriceDifferencePercent != 50 {
		t.Fatalf("expected 50%%, got %v", v.PriceDifferencePercent)
	}
}
