package intake

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tweenmart/storefront-backend/pkg/config"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

func intakeConfig() config.IntakeConfig {
	return config.IntakeConfig{BaseURL: "http://intake.test/api", Timeout: 5 * time.Second}
}

func sampleOrder() OrderRequest {
	return OrderRequest{
		Customer: CustomerInfo{
			Name:    "রহিমা বেগম",
			Phone:   "01712345678",
			Address: "মিরপুর ১০, ঢাকা",
		},
		DeliveryZone: enums.DeliveryZoneInsideCity,
		Items: []OrderItem{
			{ProductID: "meron", ProductName: "মেরুন রঙের প্রিমিয়াম পার্টি শাড়ি", Quantity: 1, Price: 1650},
		},
		Pricing: Pricing{ProductTotal: 1650, DeliveryCharge: 80, GrandTotal: 1730},
	}
}

func TestSubmitSuccess(t *testing.T) {
	const expectedURL = "http://intake.test/api/orders"

	var capturedURL string
	var capturedBody []byte
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		capturedBody = body
		return &http.Response{
			StatusCode: http.StatusCreated,
			Body:       io.NopCloser(strings.NewReader(`{"id":"ord_123"}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(intakeConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	orderID, err := client.Submit(context.Background(), sampleOrder())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if orderID != "ord_123" {
		t.Fatalf("unexpected order id %q", orderID)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}

	var payload map[string]any
	if err := json.Unmarshal(capturedBody, &payload); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	pricing, ok := payload["pricing"].(map[string]any)
	if !ok {
		t.Fatalf("pricing missing in payload %v", payload)
	}
	if pricing["grandTotal"] != float64(1730) {
		t.Fatalf("unexpected grand total %v", pricing["grandTotal"])
	}
	if payload["deliveryZone"] != string(enums.DeliveryZoneInsideCity) {
		t.Fatalf("unexpected delivery zone %v", payload["deliveryZone"])
	}
}

func TestSubmitPrefersServerMessage(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader(`{"message":"স্টক শেষ হয়ে গেছে"}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(intakeConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Submit(context.Background(), sampleOrder())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if typed.Message() != "স্টক শেষ হয়ে গেছে" {
		t.Fatalf("expected server message preserved, got %q", typed.Message())
	}
}

func TestSubmitFallbackMessage(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader(`upstream error`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(intakeConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Submit(context.Background(), sampleOrder())
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Message() != fallbackMessage {
		t.Fatalf("expected fallback message, got %q", typed.Message())
	}
}

func TestSubmitStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusUnprocessableEntity, pkgerrors.CodeValidation},
		{http.StatusConflict, pkgerrors.CodeConflict},
		{http.StatusTooManyRequests, pkgerrors.CodeRateLimit},
		{http.StatusInternalServerError, pkgerrors.CodeDependency},
		{http.StatusServiceUnavailable, pkgerrors.CodeDependency},
	}

	for _, tc := range cases {
		rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: tc.status,
				Body:       io.NopCloser(strings.NewReader(`{}`)),
				Header:     http.Header{},
			}, nil
		})

		client, err := NewClient(intakeConfig(), WithHTTPClient(&http.Client{Transport: rt}))
		if err != nil {
			t.Fatalf("new client: %v", err)
		}

		_, err = client.Submit(context.Background(), sampleOrder())
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != tc.code {
			t.Fatalf("status %d: expected code %s, got %v", tc.status, tc.code, err)
		}
	}
}

func TestSubmitSuccessWithoutIDFails(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(intakeConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Submit(context.Background(), sampleOrder()); err == nil {
		t.Fatal("expected error when order id missing")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.IntakeConfig{}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
