package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tweenmart/storefront-backend/api/controllers"
	"github.com/tweenmart/storefront-backend/api/middleware"
	"github.com/tweenmart/storefront-backend/internal/analytics"
	catalogsvc "github.com/tweenmart/storefront-backend/internal/catalog"
	ordersvc "github.com/tweenmart/storefront-backend/internal/orders"
	"github.com/tweenmart/storefront-backend/internal/pricing"
	"github.com/tweenmart/storefront-backend/pkg/config"
	"github.com/tweenmart/storefront-backend/pkg/logger"
	pkgredis "github.com/tweenmart/storefront-backend/pkg/redis"
	"github.com/tweenmart/storefront-backend/pkg/visibility"
)

// Deps carries everything the HTTP surface needs. Nil optional members
// (registry, tracker, idempotency store) disable the matching feature
// rather than panicking at wire-up.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	RedisPinger      pkgredis.Pinger
	PubSubPinger     pkgredis.Pinger
	IdempotencyStore pkgredis.IdempotencyStore
	RateLimiter      middleware.RateLimitStore
	Registry         *prometheus.Registry

	Catalog    catalogsvc.Service
	Orders     ordersvc.Service
	Calculator *pricing.Calculator
	Emitter    analytics.Emitter
	Tracker    visibility.Tracker
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Session(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.RedisPinger, deps.PubSubPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	eventsPolicy := middleware.NewRateLimitPolicy(
		"events",
		cfg.RateLimit.EventsWindow,
		cfg.RateLimit.EventsLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/banner", controllers.GetBanner(deps.Catalog, logg))
		r.Post("/cart/quote", controllers.QuoteCart(deps.Calculator, logg))
		r.With(middleware.Idempotency(deps.IdempotencyStore, logg)).
			Post("/orders", controllers.SubmitOrder(deps.Orders, logg))
		r.With(middleware.RateLimit(eventsPolicy, deps.RateLimiter, logg)).
			Post("/events", controllers.IngestEvent(deps.Emitter, deps.Tracker, logg))
	})

	return r
}
