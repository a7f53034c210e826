// Package sweettracker provides the domestic carrier client backed by the
// Smart Parcel (스마트택배) tracking aggregator. One lookup endpoint serves
// every domestic carrier, keyed by a two-digit aggregator code.
package sweettracker

import (
	"context"
	"strings"
	"time"

	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	errMsgMissingKey = "스마트택배 API 키가 설정되지 않았습니다."
	errMsgLookup     = "조회 중 오류가 발생했습니다."
	errMsgNoResult   = "배송 정보를 찾을 수 없습니다."
)

// Config holds Smart Parcel configuration.
type Config struct {
	APIKey  string
	BaseURL string
	UseMock bool // When true, uses the mock API client
}

// Client is a domestic carrier tracker. One Client instance serves one
// carrier from the registry's domestic entries; all instances share the
// same aggregator endpoint.
type Client struct {
	carrier   tracker.Carrier
	info      tracker.CarrierInfo
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a tracker for the given domestic carrier.
// If cfg.UseMock is true, it uses a mock API client for testing.
func New(carrier tracker.Carrier, cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: 10 * time.Second,
		})
	}

	return NewWithAPIClient(carrier, cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a tracker with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(carrier tracker.Carrier, cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		carrier:   carrier,
		info:      carrier.Info(),
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Carrier returns the registry code of this tracker.
func (c *Client) Carrier() tracker.Carrier {
	return c.carrier
}

// Track looks up one invoice number through the aggregator.
// Every failure mode returns a failure-shaped result; nothing escapes as an
// error or panic.
func (c *Client) Track(ctx context.Context, trackingNumber string) *tracker.TrackingResult {
	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "sweettracker.Track")
		defer span.End()
	}

	// Misconfiguration fails fast, before any network call.
	if c.config.APIKey == "" {
		return tracker.FailedResult(c.carrier, trackingNumber, errMsgMissingKey)
	}

	resp, err := c.apiClient.GetTrackingInfo(ctx, c.info.AggregatorCode, trackingNumber)
	if err != nil {
		c.logger.Error("Smart Parcel lookup failed",
			zap.String("carrier", string(c.carrier)),
			zap.String("tracking_number", trackingNumber),
			zap.Error(err),
		)
		return tracker.FailedResult(c.carrier, trackingNumber, errMsgLookup)
	}

	if !resp.Status || resp.Result == nil {
		msg := resp.Msg
		if msg == "" {
			msg = errMsgNoResult
		}
		return tracker.FailedResult(c.carrier, trackingNumber, msg)
	}

	return c.toResult(trackingNumber, resp.Result)
}

func (c *Client) toResult(trackingNumber string, r *TrackingResult) *tracker.TrackingResult {
	// The aggregator delivers details oldest-first; the timeline is
	// most-recent-first, so translate then reverse.
	timeline := make([]tracker.TrackingEvent, 0, len(r.TrackingDetails))
	for i := len(r.TrackingDetails) - 1; i >= 0; i-- {
		d := r.TrackingDetails[i]
		date, hhmm := splitTimeString(d.TimeString)
		timeline = append(timeline, tracker.TrackingEvent{
			Date:        date,
			Time:        hhmm,
			Status:      mapLevel(d.Level),
			Location:    d.Where,
			Description: d.Kind,
		})
	}

	return &tracker.TrackingResult{
		TrackingNumber: trackingNumber,
		Carrier:        c.carrier,
		Status:         mapLevel(r.Level),
		Timeline:       timeline,
		Success:        true,
	}
}

// mapLevel maps the aggregator's numeric progress level to the normalized
// status. Total function.
func mapLevel(level int) tracker.Status {
	switch {
	case level == 1:
		return tracker.StatusPickedUp
	case level >= 2 && level <= 5:
		return tracker.StatusInTransit
	case level == 6:
		return tracker.StatusDelivered
	default:
		return tracker.StatusUnknown
	}
}

// splitTimeString splits the aggregator's "YYYY-MM-DD HH:MM" timestamp.
// The time part may be absent.
func splitTimeString(s string) (date, hhmm string) {
	parts := strings.SplitN(strings.TrimSpace(s), " ", 2)
	date = parts[0]
	if len(parts) == 2 {
		hhmm = parts[1]
	}
	return date, hhmm
}

// Ensure Client implements the Tracker interface
var _ tracker.Tracker = (*Client)(nil)
