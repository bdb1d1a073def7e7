package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/tweenmart/storefront-backend/api/routes"
	"github.com/tweenmart/storefront-backend/internal/analytics"
	catalogsvc "github.com/tweenmart/storefront-backend/internal/catalog"
	ordersvc "github.com/tweenmart/storefront-backend/internal/orders"
	"github.com/tweenmart/storefront-backend/internal/orders/intake"
	"github.com/tweenmart/storefront-backend/internal/pricing"
	"github.com/tweenmart/storefront-backend/pkg/config"
	"github.com/tweenmart/storefront-backend/pkg/logger"
	"github.com/tweenmart/storefront-backend/pkg/metrics"
	"github.com/tweenmart/storefront-backend/pkg/pubsub"
	"github.com/tweenmart/storefront-backend/pkg/redis"
	"github.com/tweenmart/storefront-backend/pkg/visibility"
)

const visibilityTTL = 24 * time.Hour

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}

	defer func() {
		closeErr := multierr.Combine(redisClient.Close(), pubsubClient.Close())
		if closeErr != nil {
			logg.Error(context.Background(), "error closing clients", closeErr)
		}
	}()

	pubsubEmitter, err := analytics.NewPubSubEmitter(pubsubClient.AnalyticsPublisher(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics emitter", err)
		os.Exit(1)
	}
	analytics.Init(pubsubEmitter)
	emitter := analytics.Sink()

	contentClient, err := catalogsvc.NewClient(cfg.Content)
	if err != nil {
		logg.Error(context.Background(), "failed to create content client", err)
		os.Exit(1)
	}
	catalogService := catalogsvc.NewService(contentClient, cfg.Content)

	calculator, err := pricing.NewCalculator(cfg.Delivery)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing calculator", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	orderMetrics := metrics.NewOrderMetrics(registry)

	intakeClient, err := intake.NewClient(cfg.Intake)
	if err != nil {
		logg.Error(context.Background(), "failed to create intake client", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(intakeClient, calculator, emitter, orderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	tracker := visibility.NewRedisTracker(redisClient, visibilityTTL)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			RedisPinger:      redisClient,
			PubSubPinger:     pubsubClient,
			IdempotencyStore: redisClient,
			RateLimiter:      redisClient,
			Registry:         registry,
			Catalog:          catalogService,
			Orders:           orderService,
			Calculator:       calculator,
			Emitter:          emitter,
			Tracker:          tracker,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
