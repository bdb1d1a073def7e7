package controllers

import (
	"net/http"
	"strings"

	"github.com/tweenmart/storefront-backend/api/middleware"
	"github.com/tweenmart/storefront-backend/api/responses"
	"github.com/tweenmart/storefront-backend/api/validators"
	"github.com/tweenmart/storefront-backend/internal/analytics"
	"github.com/tweenmart/storefront-backend/internal/analytics/payloads"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
	"github.com/tweenmart/storefront-backend/pkg/logger"
	"github.com/tweenmart/storefront-backend/pkg/visibility"
)

// IngestEvent accepts browse-funnel analytics events from the storefront.
// view_item and begin_checkout pass through the one-shot visibility gate so
// each fires at most once per session and region. Accepted events always
// return 202; emitter failures never surface to the caller.
func IngestEvent(emitter analytics.Emitter, tracker visibility.Tracker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if emitter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics emitter unavailable"))
			return
		}

		var payload ingestEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		eventType, err := enums.ParseAnalyticsEventType(strings.TrimSpace(payload.EventType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid event type"))
			return
		}
		if eventType == enums.AnalyticsEventPurchase {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "purchase events are emitted server-side"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		event, err := payload.toEvent(eventType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if gated(eventType) && tracker != nil {
			first, sightErr := tracker.FirstSight(r.Context(), sessionID, payload.region(eventType))
			if sightErr != nil {
				if logg != nil {
					logg.Warn(r.Context(), "visibility gate unavailable, event dropped")
				}
				responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
				return
			}
			if !first {
				responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
				return
			}
		}

		emitter.Emit(r.Context(), eventType, sessionID, event)
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

func gated(eventType enums.AnalyticsEventType) bool {
	return eventType == enums.AnalyticsEventViewItem || eventType == enums.AnalyticsEventBeginCheckout
}

type ingestEventRequest struct {
	EventType string      `json:"event_type" validate:"required"`
	Region    string      `json:"region"`
	Value     int         `json:"value" validate:"gte=0"`
	Currency  string      `json:"currency"`
	Items     []eventItem `json:"items" validate:"dive"`
}

type eventItem struct {
	ItemID   string `json:"item_id" validate:"required"`
	ItemName string `json:"item_name" validate:"required"`
	Price    int    `json:"price" validate:"gte=0"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// region defaults to the event type so a client that does not name the
// visible region still gets once-per-session gating.
func (r ingestEventRequest) region(eventType enums.AnalyticsEventType) string {
	if region := strings.TrimSpace(r.Region); region != "" {
		return region
	}
	return string(eventType)
}

func (r ingestEventRequest) toEvent(eventType enums.AnalyticsEventType) (any, error) {
	items := make([]payloads.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = payloads.Item{
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	switch eventType {
	case enums.AnalyticsEventViewItem:
		return payloads.ViewItemEvent{Ecommerce: payloads.ItemList{Items: items}}, nil
	case enums.AnalyticsEventAddToCart:
		if len(items) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "add_to_cart requires at least one item")
		}
		return payloads.AddToCartEvent{Ecommerce: payloads.ItemList{Items: items}}, nil
	case enums.AnalyticsEventBeginCheckout:
		if len(items) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "begin_checkout requires a non-empty cart")
		}
		currency := strings.TrimSpace(r.Currency)
		if currency == "" {
			currency = "BDT"
		}
		return payloads.BeginCheckoutEvent{Ecommerce: payloads.CheckoutSummary{
			Value:    r.Value,
			Currency: currency,
			Items:    items,
		}}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported event type")
	}
}
