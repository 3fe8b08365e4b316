package model

import "time"

// ================ Config ================
type FixtureConfig struct {
	Source      string `envconfig:"FIXTURE_SOURCE" default:"file"`
	CatalogPath string `envconfig:"CATALOG_PATH" default:"data/products.json"`
	OrdersPath  string `envconfig:"ORDERS_PATH" default:"data/orders.json"`
	CatalogKey  string `envconfig:"FIXTURE_REDIS_CATALOG_KEY" default:"storefront:fixtures:products"`
	OrdersKey   string `envconfig:"FIXTURE_REDIS_ORDERS_KEY" default:"storefront:fixtures:orders"`
}

type TraceArchiveConfig struct {
	Enabled    bool          `envconfig:"TRACE_ARCHIVE_ENABLED" default:"false"`
	TTL        time.Duration `envconfig:"TRACE_ARCHIVE_TTL" default:"24h"`
	MaxEntries int64         `envconfig:"TRACE_ARCHIVE_MAX_ENTRIES" default:"500"`
}

type HTTPConfig struct {
	Addr           string `envconfig:"HTTP_ADDR" default:"127.0.0.1:5000"`
	AllowedOrigin  string `envconfig:"CORS_ALLOWED_ORIGIN" default:"*"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
}
