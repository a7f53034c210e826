// Package service dispatches tracking lookups to the carrier registry,
// layering the result cache, metrics and tracing the route handlers expect.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/haneul-labs/shiptrack/internal/cache"
	"github.com/haneul-labs/shiptrack/internal/telemetry"
	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const errMsgBatchUnsupported = "해당 운송사는 일괄 조회를 지원하지 않습니다."

// Lookup is the tracking lookup service.
type Lookup struct {
	registry *tracker.Registry
	cache    cache.BytesCache // nil disables caching
	cacheTTL time.Duration
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
}

// New creates the lookup service. A nil cache or non-positive TTL disables
// result caching.
func New(registry *tracker.Registry, c cache.BytesCache, ttl time.Duration, logger *otelzap.Logger, metrics *telemetry.Metrics, tracer trace.Tracer) *Lookup {
	return &Lookup{
		registry: registry,
		cache:    c,
		cacheTTL: ttl,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// CarrierOptions is the option-list payload for the UI carrier selectors.
type CarrierOptions struct {
	Carriers      []tracker.CarrierInfo `json:"carriers"`
	Domestic      []tracker.CarrierInfo `json:"domestic"`
	International []tracker.CarrierInfo `json:"international"`
}

// Carriers returns the static carrier option lists.
func (s *Lookup) Carriers() CarrierOptions {
	return CarrierOptions{
		Carriers:      tracker.Carriers(),
		Domestic:      tracker.DomesticCarriers(),
		International: tracker.InternationalCarriers(),
	}
}

// Track looks up one tracking number, consulting the result cache first.
// Only successful results are cached; failure-shaped results always go back
// to the carrier. Returns ErrCarrierNotFound only for unknown carrier codes.
func (s *Lookup) Track(ctx context.Context, carrier tracker.Carrier, trackingNumber string) (*tracker.TrackingResult, error) {
	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "lookup.Track")
		defer span.End()
	}

	t, err := s.registry.Get(carrier)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cacheGet(ctx, carrier, trackingNumber); ok {
		return cached, nil
	}

	start := time.Now()
	result := t.Track(ctx, trackingNumber)
	s.observe("track", carrier, result.Success, time.Since(start))

	if result.Success {
		s.cacheSet(ctx, carrier, trackingNumber, result)
	}
	return result, nil
}

// TrackBatch runs a summary lookup through the carrier's batch support.
// Carriers without batch support yield a failure-shaped list.
func (s *Lookup) TrackBatch(ctx context.Context, carrier tracker.Carrier, trackingNumbers []string) (*tracker.ShipmentList, error) {
	t, err := s.registry.Get(carrier)
	if err != nil {
		return nil, err
	}

	bt, ok := t.(tracker.BatchTracker)
	if !ok {
		return tracker.FailedList(errMsgBatchUnsupported), nil
	}

	start := time.Now()
	list := bt.TrackBatch(ctx, trackingNumbers)
	s.observe("track_batch", carrier, list.Success, time.Since(start))
	return list, nil
}

// ListShipments enumerates account shipments via the carrier's account
// lister.
func (s *Lookup) ListShipments(ctx context.Context, carrier tracker.Carrier, daysBack int) (*tracker.ShipmentList, error) {
	t, err := s.registry.Get(carrier)
	if err != nil {
		return nil, err
	}

	al, ok := t.(tracker.AccountLister)
	if !ok {
		return tracker.FailedList(errMsgBatchUnsupported), nil
	}

	start := time.Now()
	list := al.ListByAccount(ctx, daysBack)
	s.observe("list_shipments", carrier, list.Success, time.Since(start))
	return list, nil
}

func (s *Lookup) observe(operation string, carrier tracker.Carrier, success bool, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
		s.metrics.RecordCarrierError(string(carrier))
	}
	s.metrics.RecordLookup(operation, string(carrier), outcome, elapsed.Seconds())
}

func (s *Lookup) cacheGet(ctx context.Context, carrier tracker.Carrier, trackingNumber string) (*tracker.TrackingResult, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	b, ok, err := s.cache.Get(ctx, cacheKey(carrier, trackingNumber))
	if err != nil {
		s.logger.Warn("result cache get failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		s.recordCache("miss")
		return nil, false
	}

	var result tracker.TrackingResult
	if err := json.Unmarshal(b, &result); err != nil {
		s.logger.Warn("result cache entry corrupt", zap.Error(err))
		return nil, false
	}
	s.recordCache("hit")
	return &result, true
}

func (s *Lookup) recordCache(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordCache(outcome)
	}
}

func (s *Lookup) cacheSet(ctx context.Context, carrier tracker.Carrier, trackingNumber string, result *tracker.TrackingResult) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Best effort: a cache write failure never fails the lookup.
	if err := s.cache.Set(ctx, cacheKey(carrier, trackingNumber), b, s.cacheTTL); err != nil {
		s.logger.Warn("result cache set failed", zap.Error(err))
	}
}

func cacheKey(carrier tracker.Carrier, trackingNumber string) string {
	return fmt.Sprintf("tracking:%s:%s", carrier, trackingNumber)
}
