package config

// EnvPrefix is passed to envconfig; explicit tags already carry it.
const EnvPrefix = "TWEENMART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Canonical environment variable names, shared with tests and deploy docs.
const (
	EnvAppEnv       = "TWEENMART_APP_ENV"
	EnvPort         = "TWEENMART_APP_PORT"
	EnvLogLevel     = "TWEENMART_LOG_LEVEL"
	EnvRedisURL     = "TWEENMART_REDIS_URL"
	EnvIntakeBase   = "TWEENMART_INTAKE_BASE_URL"
	EnvContentBase  = "TWEENMART_CONTENT_BASE_URL"
	EnvCollectorURL = "TWEENMART_COLLECTOR_URL"
	EnvGCPProjectID = "TWEENMART_GCP_PROJECT_ID"
	EnvPubSubTopic  = "TWEENMART_PUBSUB_ANALYTICS_TOPIC"
	EnvPubSubSub    = "TWEENMART_PUBSUB_ANALYTICS_SUBSCRIPTION"

	EnvDeliveryInsideCharge  = "TWEENMART_DELIVERY_INSIDE_CITY_CHARGE"
	EnvDeliveryOutsideCharge = "TWEENMART_DELIVERY_OUTSIDE_CITY_CHARGE"
	EnvDeliveryCurrency      = "TWEENMART_DELIVERY_CURRENCY"

	EnvEventsRateWindow = "TWEENMART_RATE_LIMIT_EVENTS_WINDOW"
	EnvEventsRateLimit  = "TWEENMART_RATE_LIMIT_EVENTS_LIMIT"
)
