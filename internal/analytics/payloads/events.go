package payloads

import (
	"github.com/tweenmart/storefront-backend/internal/cart"
	"github.com/tweenmart/storefront-backend/pkg/enums"
)

// Item is the normalized line shape shared by every commerce event.
type Item struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity,omitempty"`
}

// ItemList carries items with no monetary summary.
type ItemList struct {
	Items []Item `json:"items"`
}

// CheckoutSummary carries the cart value alongside its items.
type CheckoutSummary struct {
	Value    int    `json:"value"`
	Currency string `json:"currency"`
	Items    []Item `json:"items"`
}

// Transaction is the completed-purchase summary.
type Transaction struct {
	TransactionID string `json:"transaction_id"`
	Value         int    `json:"value"`
	Currency      string `json:"currency"`
	Items         []Item `json:"items"`
}

// ViewItemEvent fires when a product variant first becomes visible.
type ViewItemEvent struct {
	Ecommerce ItemList `json:"ecommerce"`
}

// AddToCartEvent fires on every add, including repeat adds of the same
// variant.
type AddToCartEvent struct {
	Ecommerce ItemList `json:"ecommerce"`
}

// BeginCheckoutEvent fires once per checkout-section visibility while the
// cart is non-empty.
type BeginCheckoutEvent struct {
	Ecommerce CheckoutSummary `json:"ecommerce"`
}

// PurchaseEvent fires after the intake API confirms an order.
type PurchaseEvent struct {
	Ecommerce    Transaction        `json:"ecommerce"`
	CustomerName string             `json:"customer_name"`
	PhoneNumber  string             `json:"phone_number"`
	DeliveryZone enums.DeliveryZone `json:"delivery_area"`
}

// ItemsFromLedger normalizes ledger entries into the event item shape,
// preserving insertion order.
func ItemsFromLedger(items []cart.LineItem) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, Item{
			ItemID:   item.ProductID,
			ItemName: item.ProductName,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		})
	}
	return out
}
