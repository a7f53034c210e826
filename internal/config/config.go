package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the service.
//
// Carrier credentials are deliberately not validated here: a missing key is
// reported per lookup by the carrier client, so the service still starts
// and serves the carriers that are configured.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Smart Parcel aggregator (domestic carriers)
	SweetTrackerAPIKey  string `envconfig:"SWEETTRACKER_API_KEY"`
	SweetTrackerBaseURL string `envconfig:"SWEETTRACKER_BASE_URL" default:"https://info.sweettracker.co.kr/api/v1"`
	SweetTrackerUseMock bool   `envconfig:"SWEETTRACKER_USE_MOCK" default:"false"`

	// FedEx
	FedExClientID      string `envconfig:"FEDEX_CLIENT_ID"`
	FedExClientSecret  string `envconfig:"FEDEX_CLIENT_SECRET"`
	FedExAccountNumber string `envconfig:"FEDEX_ACCOUNT_NUMBER"`
	FedExBaseURL       string `envconfig:"FEDEX_BASE_URL" default:"https://apis.fedex.com"`
	FedExUseMock       bool   `envconfig:"FEDEX_USE_MOCK" default:"false"`

	// Result cache. Empty REDIS_ADDR disables caching.
	RedisAddr       string `envconfig:"REDIS_ADDR"`
	CacheTTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"120"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shiptrack"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// CacheTTL returns the result cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
