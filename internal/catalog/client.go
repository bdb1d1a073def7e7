package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tweenmart/storefront-backend/pkg/config"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("content base URL is required")

// Client reads the remote content API serving the product catalog and
// promotional banners. Responses arrive as {"data": [...]} envelopes of
// loosely shaped records; normalization happens in the service layer.
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

// NewClient builds the content API client from configuration.
func NewClient(cfg config.ContentConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
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

// ProductRecord mirrors a catalog entry as the content API returns it.
// Optional fields stay optional here; the service fills the gaps.
type ProductRecord struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	Image         string `json:"image"`
	Price         int    `json:"price"`
	OriginalPrice int    `json:"originalPrice"`
	IsActive      bool   `json:"isActive"`
}

// BannerRecord mirrors a promotional banner as the content API returns it.
type BannerRecord struct {
	ID         string `json:"_id"`
	Title      string `json:"title"`
	SubTitle   string `json:"subTitle"`
	Details    string `json:"details"`
	OfferText  string `json:"offerText"`
	Keyword    string `json:"keyword"`
	ButtonText string `json:"buttonText"`
	IsActive   bool   `json:"isActive"`
}

// Products fetches the raw catalog records.
func (c *Client) Products(ctx context.Context) ([]ProductRecord, error) {
	var records []ProductRecord
	if err := c.getData(ctx, "products", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Banners fetches the raw banner records.
func (c *Client) Banners(ctx context.Context) ([]BannerRecord, error) {
	var records []BannerRecord
	if err := c.getData(ctx, "banner", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) getData(ctx context.Context, path string, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "content client not configured")
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("build %s request", path))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("execute %s request", path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), fmt.Sprintf("%s request failed", path))
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", path))
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s data", path))
	}
	return nil
}
