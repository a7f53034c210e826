// Package tracker provides a unified façade over heterogeneous shipment
// tracking APIs: two domestic carriers behind the Smart Parcel aggregator
// and the international express carriers, normalized to one result shape
// with a most-recent-first event timeline.
package tracker

import (
	"context"
)

// Tracker is the interface every carrier client implements.
//
// Track never returns a Go error for business-level failures. Missing
// credentials, upstream rejections, not-found and transport failures all
// come back as a fully-shaped TrackingResult with Success=false; callers
// branch on the result, not on an error value.
type Tracker interface {
	// Carrier returns the registry code of this tracker.
	Carrier() Carrier

	// Track looks up a single tracking number. The returned result is
	// never nil. The tracking number is passed through opaque; format
	// validation is the upstream carrier's job.
	Track(ctx context.Context, trackingNumber string) *TrackingResult
}

// BatchTracker is implemented by carriers that support summary lookup of
// many tracking numbers in one request.
type BatchTracker interface {
	// TrackBatch looks up summaries for the given tracking numbers.
	// An empty input returns an empty successful list without I/O.
	TrackBatch(ctx context.Context, trackingNumbers []string) *ShipmentList
}

// AccountLister is implemented by carriers that can enumerate the shipments
// associated with the configured account over a trailing date window.
type AccountLister interface {
	// ListByAccount returns the shipments where the configured account
	// appears in any relationship (shipper, recipient, payor or third
	// party) within the trailing daysBack days, deduplicated by tracking
	// number with first-seen-wins across that fixed relationship order.
	ListByAccount(ctx context.Context, daysBack int) *ShipmentList
}
