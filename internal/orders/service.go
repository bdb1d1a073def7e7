package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tweenmart/storefront-backend/internal/analytics"
	"github.com/tweenmart/storefront-backend/internal/analytics/payloads"
	"github.com/tweenmart/storefront-backend/internal/cart"
	"github.com/tweenmart/storefront-backend/internal/orders/intake"
	"github.com/tweenmart/storefront-backend/internal/pricing"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
	"github.com/tweenmart/storefront-backend/pkg/logger"
	"github.com/tweenmart/storefront-backend/pkg/metrics"
)

type submitter interface {
	Submit(ctx context.Context, order intake.OrderRequest) (string, error)
}

// SubmitInput carries everything needed to place an order.
type SubmitInput struct {
	Customer  intake.CustomerInfo
	Zone      enums.DeliveryZone
	Ledger    *cart.Ledger
	SessionID string
}

// OrderResult feeds the confirmation view after a successful submission.
type OrderResult struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	GrandTotal   int    `json:"grand_total"`
	Currency     string `json:"currency"`
}

// Service validates, prices, and forwards orders to the intake API.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (OrderResult, error)
}

type service struct {
	intake  submitter
	calc    *pricing.Calculator
	emitter analytics.Emitter
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
}

// NewService builds the order submission service.
func NewService(client submitter, calc *pricing.Calculator, emitter analytics.Emitter, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, errors.New("intake client is required")
	}
	if calc == nil {
		return nil, errors.New("pricing calculator is required")
	}
	if emitter == nil {
		return nil, errors.New("analytics emitter is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		intake:  client,
		calc:    calc,
		emitter: emitter,
		metrics: orderMetrics,
		logg:    logg,
	}, nil
}

// Submit places the order. Validation failures return before any network
// call; the ledger is never mutated here, and the purchase event fires only
// after the intake API confirms.
func (s *service) Submit(ctx context.Context, input SubmitInput) (OrderResult, error) {
	if err := validateInput(input); err != nil {
		return OrderResult{}, err
	}

	quote, err := s.calc.Quote(input.Ledger, input.Zone)
	if err != nil {
		return OrderResult{}, err
	}

	items := input.Ledger.Items()
	order := intake.OrderRequest{
		Customer:     trimCustomer(input.Customer),
		DeliveryZone: input.Zone,
		Items:        orderItems(items),
		Pricing: intake.Pricing{
			ProductTotal:   quote.ProductTotal,
			DeliveryCharge: quote.DeliveryCharge,
			GrandTotal:     quote.GrandTotal,
		},
	}

	start := time.Now()
	orderID, err := s.intake.Submit(ctx, order)
	s.metrics.ObserveDuration(string(input.Zone), time.Since(start))
	if err != nil {
		s.metrics.IncFailure(string(input.Zone))
		s.logg.Error(ctx, "order submission failed", err)
		return OrderResult{}, err
	}
	s.metrics.IncSuccess(string(input.Zone))

	logCtx := s.logg.WithOrderID(ctx, orderID)
	s.logg.Info(logCtx, "order submitted")

	s.emitter.Emit(logCtx, enums.AnalyticsEventPurchase, input.SessionID, payloads.PurchaseEvent{
		Ecommerce: payloads.Transaction{
			TransactionID: orderID,
			Value:         quote.GrandTotal,
			Currency:      quote.Currency,
			Items:         payloads.ItemsFromLedger(items),
		},
		CustomerName: order.Customer.Name,
		PhoneNumber:  order.Customer.Phone,
		DeliveryZone: input.Zone,
	})

	return OrderResult{
		OrderID:      orderID,
		CustomerName: order.Customer.Name,
		GrandTotal:   quote.GrandTotal,
		Currency:     quote.Currency,
	}, nil
}

func validateInput(input SubmitInput) error {
	if strings.TrimSpace(input.Customer.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Customer.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if strings.TrimSpace(input.Customer.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer address is required")
	}
	if input.Ledger == nil || input.Ledger.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return nil
}

func trimCustomer(customer intake.CustomerInfo) intake.CustomerInfo {
	return intake.CustomerInfo{
		Name:    strings.TrimSpace(customer.Name),
		Phone:   strings.TrimSpace(customer.Phone),
		Address: strings.TrimSpace(customer.Address),
		Notes:   strings.TrimSpace(customer.Notes),
	}
}

func orderItems(items []cart.LineItem) []intake.OrderItem {
	out := make([]intake.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, intake.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Color:       item.ColorLabel,
			Image:       item.ImageRef,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
		})
	}
	return out
}
