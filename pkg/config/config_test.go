package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if cfg.Delivery.InsideCityCharge != 80 || cfg.Delivery.OutsideCityCharge != 150 {
		t.Fatalf("unexpected delivery charge defaults: %+v", cfg.Delivery)
	}

	if cfg.Delivery.Currency != "BDT" {
		t.Fatalf("unexpected default currency %q", cfg.Delivery.Currency)
	}

	if cfg.PubSub.AnalyticsTopic != "storefront-events" {
		t.Fatalf("unexpected analytics topic %q", cfg.PubSub.AnalyticsTopic)
	}

	if cfg.RateLimit.EventsWindow != time.Minute || cfg.RateLimit.EventsLimit != 60 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsNegativeCharges(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDeliveryInsideCharge, "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected negative delivery charge to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvIntakeBase, "https://intake.example.com/api/v1")
	t.Setenv(EnvContentBase, "https://content.example.com/api/v1")
	t.Setenv(EnvGCPProjectID, "project-123")
	t.Setenv(EnvPubSubTopic, "storefront-events")
	t.Setenv(EnvPubSubSub, "storefront-events-sub")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
