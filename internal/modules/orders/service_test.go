package orders

import (
	"errors"
	"testing"
	"time"

	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/catalog"
)

func snapshot() map[string]catalog.PriceLine {
	return map[string]catalog.PriceLine{
		"prod_tee": {ProductID: "prod_tee", ProductName: "Tee", SKU: "TEE-1", PriceCents: 2500, Currency: "USD"},
		"prod_cap": {ProductID: "prod_cap", ProductName: "Cap", SKU: "CAP-1", PriceCents: 1500, Currency: "USD"},
	}
}

func TestBuildOrderItemsFreezesPrices(t *testing.T) {
	now := time.Now()
	prices := snapshot()

	lines := []LineInput{
		{ProductID: "prod_tee", Quantity: 2},
		{ProductID: "prod_cap", Quantity: 1},
	}
	items, subtotal, currency, err := buildOrderItems("ord_1", lines, prices, nil, now)
	if err != nil {
		t.Fatalf("buildOrderItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if subtotal != 2*2500+1500 {
		t.Errorf("subtotal = %d, want %d", subtotal, 2*2500+1500)
	}
	if currency != "USD" {
		t.Errorf("currency = %q", currency)
	}

	// the snapshot price is frozen onto the line; a later catalog change
	// must not reach an existing order
	prices["prod_tee"] = catalog.PriceLine{ProductID: "prod_tee", PriceCents: 9900, Currency: "USD"}
	if items[0].UnitPriceCents != 2500 {
		t.Errorf("UnitPriceCents = %d, want 2500", items[0].UnitPriceCents)
	}
	if items[0].LineTotalCents != 5000 {
		t.Errorf("LineTotalCents = %d, want 5000", items[0].LineTotalCents)
	}
	if items[0].ProductName != "Tee" || items[0].SKU != "TEE-1" {
		t.Errorf("name/sku = %q/%q", items[0].ProductName, items[0].SKU)
	}
	if items[0].OrderID != "ord_1" {
		t.Errorf("OrderID = %q", items[0].OrderID)
	}
}

func TestBuildOrderItemsUnknownProduct(t *testing.T) {
	lines := []LineInput{
		{ProductID: "prod_tee", Quantity: 1},
		{ProductID: "prod_gone", Quantity: 1},
	}
	items, _, _, err := buildOrderItems("ord_1", lines, snapshot(), nil, time.Now())
	if !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
	if items != nil {
		t.Errorf("expected no items on failure, got %d", len(items))
	}
}

func TestBuildOrderItemsVariantOverride(t *testing.T) {
	variants := map[string]catalog.PriceLine{
		"var_red": {ProductID: "prod_tee", VariantID: "var_red", SKU: "TEE-1-RED", PriceCents: 2700, Currency: "USD"},
	}
	lines := []LineInput{{ProductID: "prod_tee", VariantID: "var_red", Quantity: 1}}

	items, subtotal, _, err := buildOrderItems("ord_1", lines, snapshot(), variants, time.Now())
	if err != nil {
		t.Fatalf("buildOrderItems: %v", err)
	}
	if items[0].UnitPriceCents != 2700 || items[0].SKU != "TEE-1-RED" {
		t.Errorf("variant not applied: price=%d sku=%q", items[0].UnitPriceCents, items[0].SKU)
	}
	if subtotal != 2700 {
		t.Errorf("subtotal = %d", subtotal)
	}
}

func TestBuildOrderItemsVariantOfOtherProduct(t *testing.T) {
	variants := map[string]catalog.PriceLine{
		"var_red": {ProductID: "prod_cap", VariantID: "var_red", PriceCents: 2700, Currency: "USD"},
	}
	lines := []LineInput{{ProductID: "prod_tee", VariantID: "var_red", Quantity: 1}}

	if _, _, _, err := buildOrderItems("ord_1", lines, snapshot(), variants, time.Now()); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
}

func TestBuildOrderItemsCurrencyMismatch(t *testing.T) {
	prices := snapshot()
	prices["prod_cap"] = catalog.PriceLine{ProductID: "prod_cap", PriceCents: 1500, Currency: "EUR"}
	lines := []LineInput{
		{ProductID: "prod_tee", Quantity: 1},
		{ProductID: "prod_cap", Quantity: 1},
	}

	if _, _, _, err := buildOrderItems("ord_1", lines, prices, nil, time.Now()); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestBuildOrderItemsQuantityFloor(t *testing.T) {
	lines := []LineInput{{ProductID: "prod_tee", Quantity: 0}}
	items, subtotal, _, err := buildOrderItems("ord_1", lines, snapshot(), nil, time.Now())
	if err != nil {
		t.Fatalf("buildOrderItems: %v", err)
	}
	if items[0].Quantity != 1 || subtotal != 2500 {
		t.Errorf("qty=%d subtotal=%d, want 1/2500", items[0].Quantity, subtotal)
	}
}
