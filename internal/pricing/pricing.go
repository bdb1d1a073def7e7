package pricing

import (
	"fmt"

	"github.com/tweenmart/storefront-backend/internal/cart"
	"github.com/tweenmart/storefront-backend/pkg/config"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

// Quote is the pricing breakdown shown to the customer and attached to the
// submitted order. All amounts are whole currency units.
type Quote struct {
	ProductTotal   int    `json:"product_total"`
	DeliveryCharge int    `json:"delivery_charge"`
	GrandTotal     int    `json:"grand_total"`
	Currency       string `json:"currency"`
}

// Calculator derives order totals from the ledger and the configured flat
// delivery surcharges. Discount display (crossed-out compare-at prices) is
// presentation only and never feeds the totals.
type Calculator struct {
	charges  map[enums.DeliveryZone]int
	currency string
}

// NewCalculator builds a calculator from the delivery configuration.
func NewCalculator(cfg config.DeliveryConfig) (*Calculator, error) {
	if cfg.InsideCityCharge < 0 || cfg.OutsideCityCharge < 0 {
		return nil, fmt.Errorf("delivery charges must be non-negative")
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "BDT"
	}
	return &Calculator{
		charges: map[enums.DeliveryZone]int{
			enums.DeliveryZoneInsideCity:  cfg.InsideCityCharge,
			enums.DeliveryZoneOutsideCity: cfg.OutsideCityCharge,
		},
		currency: currency,
	}, nil
}

// DeliveryCharge returns the flat surcharge for the zone.
func (c *Calculator) DeliveryCharge(zone enums.DeliveryZone) (int, error) {
	charge, ok := c.charges[zone]
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown delivery zone %q", zone))
	}
	return charge, nil
}

// Quote computes the product subtotal, delivery surcharge, and grand total
// for the ledger in the given zone.
func (c *Calculator) Quote(ledger *cart.Ledger, zone enums.DeliveryZone) (Quote, error) {
	charge, err := c.DeliveryCharge(zone)
	if err != nil {
		return Quote{}, err
	}
	productTotal := ledger.Total()
	return Quote{
		ProductTotal:   productTotal,
		DeliveryCharge: charge,
		GrandTotal:     productTotal + charge,
		Currency:       c.currency,
	}, nil
}
