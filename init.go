package main

import (
	"context"

	"github.com/haneul-labs/shiptrack/internal/cache"
	"github.com/haneul-labs/shiptrack/internal/cache/rediscache"
	"github.com/haneul-labs/shiptrack/internal/config"
	"github.com/haneul-labs/shiptrack/internal/service"
	"github.com/haneul-labs/shiptrack/internal/telemetry"
	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/haneul-labs/shiptrack/pkg/tracker/fedex"
	"github.com/haneul-labs/shiptrack/pkg/tracker/sweettracker"
	"github.com/haneul-labs/shiptrack/pkg/tracker/ups"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

// initTrackerRegistry registers every supported carrier. The domestic
// carriers share one aggregator client configuration; each gets its own
// client bound to its carrier code.
func initTrackerRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *tracker.Registry {
	registry := tracker.NewRegistry()

	aggregatorCfg := sweettracker.Config{
		APIKey:  cfg.SweetTrackerAPIKey,
		BaseURL: cfg.SweetTrackerBaseURL,
		UseMock: cfg.SweetTrackerUseMock,
	}
	registry.Register(sweettracker.New(tracker.CarrierCJ, aggregatorCfg, logger, tracer))
	registry.Register(sweettracker.New(tracker.CarrierLogen, aggregatorCfg, logger, tracer))

	registry.Register(fedex.New(fedex.Config{
		ClientID:      cfg.FedExClientID,
		ClientSecret:  cfg.FedExClientSecret,
		AccountNumber: cfg.FedExAccountNumber,
		BaseURL:       cfg.FedExBaseURL,
		UseMock:       cfg.FedExUseMock,
	}, logger, tracer))

	registry.Register(ups.New())

	return registry
}

func initLookup(cfg *config.Config, registry *tracker.Registry, logger *otelzap.Logger, tracer trace.Tracer) *service.Lookup {
	var c cache.BytesCache
	if cfg.RedisAddr != "" {
		c = rediscache.New(cfg.RedisAddr)
	}
	return service.New(registry, c, cfg.CacheTTL(), logger, telemetry.NewMetrics(), tracer)
}
