package sweettracker

import (
	"context"
)

// APIClient defines the interface for Smart Parcel aggregator operations.
// This abstraction allows for mock implementations during testing and real
// implementations in production.
type APIClient interface {
	// GetTrackingInfo looks up one invoice number for the given two-digit
	// aggregator carrier code.
	GetTrackingInfo(ctx context.Context, carrierCode, invoice string) (*TrackingInfoResponse, error)
}

// ============================================================================
// API Request/Response Types (match the Smart Parcel lookup endpoint)
// ============================================================================

// TrackingInfoResponse is the aggregator response envelope.
// Status=false carries the upstream failure reason in Msg.
type TrackingInfoResponse struct {
	Status bool            `json:"status"`
	Msg    string          `json:"msg"`
	Result *TrackingResult `json:"result,omitempty"`
}

// TrackingResult is the aggregator result payload.
type TrackingResult struct {
	Complete        bool             `json:"complete"`
	Level           int              `json:"level"`
	TrackingDetails []TrackingDetail `json:"trackingDetails"`
}

// TrackingDetail is one aggregator scan entry. Entries arrive oldest-first.
type TrackingDetail struct {
	TimeString string `json:"timeString"` // "YYYY-MM-DD HH:MM"
	Where      string `json:"where"`
	Kind       string `json:"kind"`
	Level      int    `json:"level"`
}
