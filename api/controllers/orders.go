package controllers

import (
	"net/http"
	"strings"

	"github.com/tweenmart/storefront-backend/api/middleware"
	"github.com/tweenmart/storefront-backend/api/responses"
	"github.com/tweenmart/storefront-backend/api/validators"
	"github.com/tweenmart/storefront-backend/internal/cart"
	ordersvc "github.com/tweenmart/storefront-backend/internal/orders"
	"github.com/tweenmart/storefront-backend/internal/orders/intake"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
	"github.com/tweenmart/storefront-backend/pkg/logger"
)

// SubmitOrder validates the checkout payload and forwards it to the order
// intake service. Replays are absorbed upstream by the idempotency middleware.
func SubmitOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload submitOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.SessionID = middleware.SessionIDFromContext(r.Context())

		result, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type submitOrderRequest struct {
	Customer     customerPayload   `json:"customer" validate:"required"`
	DeliveryZone string            `json:"delivery_zone" validate:"required"`
	Items        []cartItemPayload `json:"items" validate:"required,min=1,dive"`
}

type customerPayload struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Notes   string `json:"notes"`
}

func (r submitOrderRequest) toInput() (ordersvc.SubmitInput, error) {
	zone, err := enums.ParseDeliveryZone(strings.TrimSpace(r.DeliveryZone))
	if err != nil {
		return ordersvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery zone")
	}

	items := quoteCartRequest{Items: r.Items}.toItems()

	return ordersvc.SubmitInput{
		Customer: intake.CustomerInfo{
			Name:    r.Customer.Name,
			Phone:   r.Customer.Phone,
			Address: r.Customer.Address,
			Notes:   r.Customer.Notes,
		},
		Zone:   zone,
		Ledger: cart.NewLedger(items...),
	}, nil
}
