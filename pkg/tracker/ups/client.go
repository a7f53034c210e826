// Package ups is a placeholder tracker for the fourth registry carrier.
// UPS lookups are not wired to an upstream API yet; every call returns a
// failure-shaped result so callers get the standard shape instead of a
// missing-carrier error.
//
// TODO: integrate the UPS Track API once account onboarding completes.
package ups

import (
	"context"

	"github.com/haneul-labs/shiptrack/pkg/tracker"
)

const errMsgUnsupported = "UPS 조회는 아직 지원되지 않습니다."

// Client is the UPS tracker stub.
type Client struct{}

// New creates the UPS stub tracker.
func New() *Client {
	return &Client{}
}

// Carrier returns the registry code of this tracker.
func (c *Client) Carrier() tracker.Carrier {
	return tracker.CarrierUPS
}

// Track always returns a failure-shaped result without performing I/O.
func (c *Client) Track(ctx context.Context, trackingNumber string) *tracker.TrackingResult {
	return tracker.FailedResult(tracker.CarrierUPS, trackingNumber, errMsgUnsupported)
}

// Ensure Client implements the Tracker interface
var _ tracker.Tracker = (*Client)(nil)
