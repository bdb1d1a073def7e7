package controllers

import (
	"net/http"
	"strings"

	"github.com/tweenmart/storefront-backend/api/responses"
	"github.com/tweenmart/storefront-backend/api/validators"
	"github.com/tweenmart/storefront-backend/internal/cart"
	"github.com/tweenmart/storefront-backend/internal/pricing"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
	"github.com/tweenmart/storefront-backend/pkg/logger"
)

// QuoteCart computes the pricing breakdown for a cart snapshot without
// touching any upstream service.
func QuoteCart(calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing calculator unavailable"))
			return
		}

		var payload quoteCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zone, err := enums.ParseDeliveryZone(strings.TrimSpace(payload.DeliveryZone))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery zone"))
			return
		}

		ledger := cart.NewLedger(payload.toItems()...)

		quote, err := calc.Quote(ledger, zone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

type quoteCartRequest struct {
	DeliveryZone string            `json:"delivery_zone" validate:"required"`
	Items        []cartItemPayload `json:"items" validate:"dive"`
}

type cartItemPayload struct {
	ProductID   string `json:"product_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	UnitPrice   int    `json:"unit_price" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"gte=1"`
	ImageRef    string `json:"image_ref"`
	ColorLabel  string `json:"color_label"`
}

func (r quoteCartRequest) toItems() []cart.LineItem {
	items := make([]cart.LineItem, len(r.Items))
	for i, payload := range r.Items {
		items[i] = cart.LineItem{
			ProductID:   payload.ProductID,
			ProductName: payload.ProductName,
			UnitPrice:   payload.UnitPrice,
			Quantity:    payload.Quantity,
			ImageRef:    payload.ImageRef,
			ColorLabel:  payload.ColorLabel,
		}
	}
	return items
}
