package catalog

import (
	"context"
	"strings"

	"github.com/tweenmart/storefront-backend/pkg/config"
	"github.com/tweenmart/storefront-backend/pkg/errors"
)

// Product is a fully populated catalog entry. Nothing downstream re-checks
// optionality; boundary defaults are applied here.
type Product struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	Image          string `json:"image"`
	Price          int    `json:"price"`
	CompareAtPrice int    `json:"compare_at_price"`
}

// Banner is an active promotional banner ready for display.
type Banner struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Details    string `json:"details"`
	OfferText  string `json:"offer_text"`
	Keyword    string `json:"keyword"`
	ButtonText string `json:"button_text"`
}

type Service interface {
	Products(ctx context.Context) ([]Product, error)
	Banner(ctx context.Context) (*Banner, error)
}

type service struct {
	client           *Client
	placeholderImage string
}

func NewService(client *Client, cfg config.ContentConfig) Service {
	return &service{
		client:           client,
		placeholderImage: cfg.PlaceholderImage,
	}
}

// Products returns the active catalog entries in upstream order, with
// boundary defaults applied.
func (s *service) Products(ctx context.Context) ([]Product, error) {
	if s == nil || s.client == nil {
		return nil, errors.New(errors.CodeDependency, "content client unavailable")
	}

	records, err := s.client.Products(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(records))
	for _, rec := range records {
		if !rec.IsActive {
			continue
		}
		products = append(products, s.mapProduct(rec))
	}
	return products, nil
}

// Banner returns the first active banner, or a not-found error when no
// banner is currently active.
func (s *service) Banner(ctx context.Context) (*Banner, error) {
	if s == nil || s.client == nil {
		return nil, errors.New(errors.CodeDependency, "content client unavailable")
	}

	records, err := s.client.Banners(ctx)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.IsActive {
			banner := mapBanner(rec)
			return &banner, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "no active banner")
}

func (s *service) mapProduct(rec ProductRecord) Product {
	image := strings.TrimSpace(rec.Image)
	if image == "" {
		image = s.placeholderImage
	}
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		name = rec.ID
	}
	compareAt := rec.OriginalPrice
	if compareAt < rec.Price {
		compareAt = rec.Price
	}
	return Product{
		ID:             rec.ID,
		Name:           name,
		Color:          strings.TrimSpace(rec.Color),
		Image:          image,
		Price:          rec.Price,
		CompareAtPrice: compareAt,
	}
}

func mapBanner(rec BannerRecord) Banner {
	return Banner{
		ID:         rec.ID,
		Title:      strings.TrimSpace(rec.Title),
		Subtitle:   strings.TrimSpace(rec.SubTitle),
		Details:    strings.TrimSpace(rec.Details),
		OfferText:  strings.TrimSpace(rec.OfferText),
		Keyword:    strings.TrimSpace(rec.Keyword),
		ButtonText: strings.TrimSpace(rec.ButtonText),
	}
}
