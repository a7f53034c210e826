// Package mock provides a mock tracker implementation for testing.
package mock

import (
	"context"

	"github.com/haneul-labs/shiptrack/pkg/tracker"
)

// Client is a mock tracker for testing. The hook fields override the
// canned responses per test.
type Client struct {
	carrier tracker.Carrier

	TrackCalls int

	OnTrack         func(ctx context.Context, trackingNumber string) *tracker.TrackingResult
	OnTrackBatch    func(ctx context.Context, trackingNumbers []string) *tracker.ShipmentList
	OnListByAccount func(ctx context.Context, daysBack int) *tracker.ShipmentList
}

// New creates a new mock tracker for the given carrier code.
func New(carrier tracker.Carrier) *Client {
	return &Client{carrier: carrier}
}

// Carrier returns the registry code of this tracker.
func (c *Client) Carrier() tracker.Carrier {
	return c.carrier
}

// Track returns a canned in-transit result.
func (c *Client) Track(ctx context.Context, trackingNumber string) *tracker.TrackingResult {
	c.TrackCalls++

	if c.OnTrack != nil {
		return c.OnTrack(ctx, trackingNumber)
	}

	return &tracker.TrackingResult{
		TrackingNumber: trackingNumber,
		Carrier:        c.carrier,
		Status:         tracker.StatusInTransit,
		Timeline: []tracker.TrackingEvent{
			{
				Date:        "2026-08-28",
				Time:        "07:03",
				Status:      tracker.StatusInTransit,
				Location:    "부산진",
				Description: "간선하차",
			},
			{
				Date:        "2026-08-27",
				Time:        "09:12",
				Status:      tracker.StatusPickedUp,
				Location:    "군포 Hub",
				Description: "집화처리",
			},
		},
		Success: true,
	}
}

// TrackBatch returns one canned summary per tracking number.
func (c *Client) TrackBatch(ctx context.Context, trackingNumbers []string) *tracker.ShipmentList {
	if c.OnTrackBatch != nil {
		return c.OnTrackBatch(ctx, trackingNumbers)
	}

	shipments := make([]tracker.ShipmentSummary, 0, len(trackingNumbers))
	for _, n := range trackingNumbers {
		shipments = append(shipments, tracker.ShipmentSummary{
			TrackingNumber:    n,
			StatusCode:        "IT",
			StatusDescription: "In transit",
			Status:            tracker.StatusInTransit,
			ShipDate:          "2026-08-25",
		})
	}
	return &tracker.ShipmentList{Success: true, Shipments: shipments}
}

// ListByAccount returns a small canned shipment list.
func (c *Client) ListByAccount(ctx context.Context, daysBack int) *tracker.ShipmentList {
	if c.OnListByAccount != nil {
		return c.OnListByAccount(ctx, daysBack)
	}

	return &tracker.ShipmentList{
		Success: true,
		Shipments: []tracker.ShipmentSummary{
			{
				TrackingNumber:    "794812345678",
				StatusCode:        "DL",
				StatusDescription: "Delivered",
				Status:            tracker.StatusDelivered,
				ShipDate:          "2026-08-20",
				ActualDelivery:    "2026-08-24",
			},
		},
	}
}

// Compile-time interface checks
var (
	_ tracker.Tracker       = (*Client)(nil)
	_ tracker.BatchTracker  = (*Client)(nil)
	_ tracker.AccountLister = (*Client)(nil)
)
