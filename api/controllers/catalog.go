package controllers

import (
	"net/http"

	"github.com/tweenmart/storefront-backend/api/responses"
	catalogsvc "github.com/tweenmart/storefront-backend/internal/catalog"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
	"github.com/tweenmart/storefront-backend/pkg/logger"
)

// ListProducts returns the active catalog entries in upstream order.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.Products(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetBanner returns the first active promotional banner.
func GetBanner(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		banner, err := svc.Banner(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, banner)
	}
}
