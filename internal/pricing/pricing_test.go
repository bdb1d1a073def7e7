package pricing

import (
	"testing"

	"github.com/tweenmart/storefront-backend/internal/cart"
	"github.com/tweenmart/storefront-backend/pkg/config"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

func defaultCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(config.DeliveryConfig{
		InsideCityCharge:  80,
		OutsideCityCharge: 150,
		Currency:          "BDT",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return calc
}

func TestQuoteSingleItemInsideCity(t *testing.T) {
	t.Parallel()

	calc := defaultCalculator(t)
	ledger := cart.NewLedger(cart.LineItem{ProductID: "meron", ProductName: "saree", UnitPrice: 1650, Quantity: 1})

	quote, err := calc.Quote(ledger, enums.DeliveryZoneInsideCity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.ProductTotal != 1650 {
		t.Fatalf("expected product total 1650, got %d", quote.ProductTotal)
	}
	if quote.DeliveryCharge != 80 {
		t.Fatalf("expected delivery charge 80, got %d", quote.DeliveryCharge)
	}
	if quote.GrandTotal != 1730 {
		t.Fatalf("expected grand total 1730, got %d", quote.GrandTotal)
	}
	if quote.Currency != "BDT" {
		t.Fatalf("expected BDT, got %q", quote.Currency)
	}
}

func TestQuoteMultipleItemsOutsideCity(t *testing.T) {
	t.Parallel()

	calc := defaultCalculator(t)
	ledger := cart.NewLedger(
		cart.LineItem{ProductID: "black", ProductName: "saree", UnitPrice: 1650, Quantity: 2},
		cart.LineItem{ProductID: "nill", ProductName: "saree", UnitPrice: 1650, Quantity: 1},
	)

	quote, err := calc.Quote(ledger, enums.DeliveryZoneOutsideCity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.ProductTotal != 4950 {
		t.Fatalf("expected product total 4950, got %d", quote.ProductTotal)
	}
	if quote.GrandTotal != 5100 {
		t.Fatalf("expected grand total 5100, got %d", quote.GrandTotal)
	}
}

func TestQuoteZoneDifferenceIsChargeDelta(t *testing.T) {
	t.Parallel()

	calc := defaultCalculator(t)
	ledger := cart.NewLedger(
		cart.LineItem{ProductID: "golden", ProductName: "saree", UnitPrice: 1650, Quantity: 3},
	)

	inside, err := calc.Quote(ledger, enums.DeliveryZoneInsideCity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outside, err := calc.Quote(ledger, enums.DeliveryZoneOutsideCity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outside.GrandTotal-inside.GrandTotal != 150-80 {
		t.Fatalf("zone delta mismatch: inside=%d outside=%d", inside.GrandTotal, outside.GrandTotal)
	}
	if inside.ProductTotal != outside.ProductTotal {
		t.Fatalf("product total must not depend on zone")
	}
}

func TestQuoteEmptyLedger(t *testing.T) {
	t.Parallel()

	calc := defaultCalculator(t)
	quote, err := calc.Quote(cart.NewLedger(), enums.DeliveryZoneInsideCity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.ProductTotal != 0 || quote.GrandTotal != 80 {
		t.Fatalf("empty ledger should quote delivery only, got %+v", quote)
	}
}

func TestQuoteRejectsUnknownZone(t *testing.T) {
	t.Parallel()

	calc := defaultCalculator(t)
	_, err := calc.Quote(cart.NewLedger(), enums.DeliveryZone("moon"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewCalculatorRejectsNegativeCharges(t *testing.T) {
	t.Parallel()

	if _, err := NewCalculator(config.DeliveryConfig{InsideCityCharge: -1}); err == nil {
		t.Fatal("expected error for negative charge")
	}
}
