package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tweenmart/storefront-backend/pkg/config"
	"github.com/tweenmart/storefront-backend/pkg/enums"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 4096

// fallbackMessage is shown when the intake API fails without a usable
// message of its own.
const fallbackMessage = "কিছু ভুল হয়েছে। পরে আবার চেষ্টা করুন।"

var errBaseURLRequired = errors.New("intake base URL is required")

// OrderRequest is the payload forwarded to the remote order-intake API.
// Constructed immediately before submission, never persisted.
type OrderRequest struct {
	Customer     CustomerInfo       `json:"customer"`
	DeliveryZone enums.DeliveryZone `json:"deliveryZone"`
	Items        []OrderItem        `json:"items"`
	Pricing      Pricing            `json:"pricing"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Color       string `json:"color"`
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
	Price       int    `json:"price"`
}

type Pricing struct {
	ProductTotal   int `json:"productTotal"`
	DeliveryCharge int `json:"deliveryCharge"`
	GrandTotal     int `json:"grandTotal"`
}

// Client submits orders to the remote intake API. Single attempt, no
// retries; retrying is the caller's decision.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the intake client from configuration.
func NewClient(cfg config.IntakeConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Submit posts the order and returns the intake-assigned order ID.
// Success is 200 or 201 with an order ID in the body; anything else is a
// coded failure preferring the server-supplied message.
func (c *Client) Submit(ctx context.Context, order OrderRequest) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "intake client not configured")
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal order request")
	}

	url := fmt.Sprintf("%s/orders", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build order request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute order request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", c.failure(resp.StatusCode, body)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order response")
	}
	if strings.TrimSpace(result.ID) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "order intake returned no order id")
	}
	return result.ID, nil
}

// failure maps a non-success intake response to a coded error, preferring
// the message the server supplied over the generic fallback.
func (c *Client) failure(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		message = fallbackMessage
	}

	return pkgerrors.Wrap(domainCodeForStatus(status), fmt.Errorf("status %d", status), message)
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}
