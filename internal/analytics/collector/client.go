package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tweenmart/storefront-backend/internal/analytics"
	"github.com/tweenmart/storefront-backend/pkg/config"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

var errURLRequired = errors.New("collector URL is required")

// Client pushes analytics envelopes to the external collector. The
// collector is write-only; beyond the status code its response carries no
// contract.
type Client struct {
	httpClient *http.Client
	url        string
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

// NewClient builds the collector client from configuration.
func NewClient(cfg config.CollectorConfig, opts ...Option) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Push forwards one envelope. Any non-2xx status is a dependency error.
func (c *Client) Push(ctx context.Context, envelope analytics.Envelope) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "collector client not configured")
	}

	data, err := envelope.Marshal()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal analytics envelope")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build collector request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute collector request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "collector push failed")
	}
	return nil
}
