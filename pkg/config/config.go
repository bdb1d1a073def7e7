package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Service   ServiceConfig
	Delivery  DeliveryConfig
	Redis     RedisConfig
	Intake    IntakeConfig
	Content   ContentConfig
	Collector CollectorConfig
	GCP       GCPConfig
	PubSub    PubSubConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Delivery.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TWEENMART_APP_ENV" required:"true"`
	Port         string `envconfig:"TWEENMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TWEENMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TWEENMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TWEENMART_SERVICE_KIND" default:"api"`
}

// DeliveryConfig holds the flat cash-on-delivery surcharges per zone, in
// whole currency units.
type DeliveryConfig struct {
	InsideCityCharge  int    `envconfig:"TWEENMART_DELIVERY_INSIDE_CITY_CHARGE" default:"80"`
	OutsideCityCharge int    `envconfig:"TWEENMART_DELIVERY_OUTSIDE_CITY_CHARGE" default:"150"`
	Currency          string `envconfig:"TWEENMART_DELIVERY_CURRENCY" default:"BDT"`
}

func (d DeliveryConfig) validate() error {
	if d.InsideCityCharge < 0 || d.OutsideCityCharge < 0 {
		return fmt.Errorf("delivery charges must be non-negative")
	}
	if strings.TrimSpace(d.Currency) == "" {
		return fmt.Errorf("delivery currency is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"TWEENMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TWEENMART_REDIS_ADDR"`
	Password     string        `envconfig:"TWEENMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"TWEENMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TWEENMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TWEENMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TWEENMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TWEENMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TWEENMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IntakeConfig points at the remote order-intake API that receives
// submitted orders.
type IntakeConfig struct {
	BaseURL string        `envconfig:"TWEENMART_INTAKE_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"TWEENMART_INTAKE_TIMEOUT" default:"15s"`
}

// ContentConfig points at the remote content API serving the catalog and
// promotional banners.
type ContentConfig struct {
	BaseURL          string        `envconfig:"TWEENMART_CONTENT_BASE_URL" required:"true"`
	Timeout          time.Duration `envconfig:"TWEENMART_CONTENT_TIMEOUT" default:"10s"`
	PlaceholderImage string        `envconfig:"TWEENMART_CONTENT_PLACEHOLDER_IMAGE" default:"/images/placeholder.jpg"`
}

// CollectorConfig points at the external analytics collector the worker
// forwards events to.
type CollectorConfig struct {
	URL     string        `envconfig:"TWEENMART_COLLECTOR_URL"`
	Timeout time.Duration `envconfig:"TWEENMART_COLLECTOR_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TWEENMART_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"TWEENMART_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TWEENMART_GOOGLE_APPLICATION_CREDENTIALS"`
}

// RateLimitConfig throttles the anonymous event ingestion surface. A zero
// window or limit disables the limiter.
type RateLimitConfig struct {
	EventsWindow time.Duration `envconfig:"TWEENMART_RATE_LIMIT_EVENTS_WINDOW" default:"1m"`
	EventsLimit  int           `envconfig:"TWEENMART_RATE_LIMIT_EVENTS_LIMIT" default:"60"`
}

type PubSubConfig struct {
	AnalyticsTopic        string `envconfig:"TWEENMART_PUBSUB_ANALYTICS_TOPIC" required:"true"`
	AnalyticsSubscription string `envconfig:"TWEENMART_PUBSUB_ANALYTICS_SUBSCRIPTION" required:"true"`
}
