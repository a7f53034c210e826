package sweettracker

import (
	"context"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors bool
	Calls          int

	OnGetTrackingInfo func(ctx context.Context, carrierCode, invoice string) (*TrackingInfoResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// GetTrackingInfo returns mock tracking data.
func (m *MockAPIClient) GetTrackingInfo(ctx context.Context, carrierCode, invoice string) (*TrackingInfoResponse, error) {
	m.Calls++

	if m.SimulateErrors {
		return nil, &mockTransportError{}
	}

	if m.OnGetTrackingInfo != nil {
		return m.OnGetTrackingInfo(ctx, carrierCode, invoice)
	}

	return &TrackingInfoResponse{
		Status: true,
		Result: &TrackingResult{
			Complete: false,
			Level:    3,
			TrackingDetails: []TrackingDetail{
				{TimeString: "2026-08-27 09:12", Where: "군포 Hub", Kind: "집화처리", Level: 1},
				{TimeString: "2026-08-27 21:40", Where: "대전 Hub", Kind: "간선상차", Level: 3},
				{TimeString: "2026-08-28 07:03", Where: "부산진", Kind: "간선하차", Level: 3},
			},
		},
	}, nil
}

type mockTransportError struct{}

func (e *mockTransportError) Error() string {
	return "mock transport error"
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
