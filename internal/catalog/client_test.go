package catalog

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tweenmart/storefront-backend/pkg/config"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
)

func contentConfig() config.ContentConfig {
	return config.ContentConfig{
		BaseURL:          "http://content.test/api",
		Timeout:          5 * time.Second,
		PlaceholderImage: "/images/placeholder.jpg",
	}
}

func TestClientProductsRequest(t *testing.T) {
	const expectedURL = "http://content.test/api/products"
	respBody := `{"data":[{"_id":"meron","name":"মেরুন রঙের প্রিমিয়াম পার্টি শাড়ি","color":"মেরুন","image":"/images/meron.jpg","price":1650,"originalPrice":2200,"isActive":true}]}`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(contentConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	records, err := client.Products(context.Background())
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(records) != 1 {
		t.Fatalf("unexpected records %+v", records)
	}
	if records[0].ID != "meron" || records[0].Price != 1650 || records[0].OriginalPrice != 2200 {
		t.Fatalf("unexpected record %+v", records[0])
	}
}

func TestClientBannersRequest(t *testing.T) {
	const expectedURL = "http://content.test/api/banner"
	respBody := `{"data":[{"_id":"b1","title":"ঈদ অফার","subTitle":"প্রিমিয়াম পার্টি শাড়ি","offerText":"২৫% ছাড়","buttonText":"অর্ডার করুন","isActive":false}]}`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(contentConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	records, err := client.Banners(context.Background())
	if err != nil {
		t.Fatalf("banners: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(records) != 1 || records[0].Title != "ঈদ অফার" || records[0].IsActive {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestClientUpstreamFailureIsDependencyError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader(`upstream down`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(contentConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Products(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("expected status in error chain, got %v", err)
	}
}

func TestClientEmptyEnvelope(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(contentConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	records, err := client.Banners(context.Background())
	if err != nil {
		t.Fatalf("banners: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.ContentConfig{}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
