package fedex

import (
	"context"
	"fmt"
	"sync"
)

// MockAPIClient is a mock implementation of APIClient for testing. It is
// safe for concurrent use: ListByAccount fans its queries out across
// goroutines, so the call counters and hook dispatch are mutex-guarded.
type MockAPIClient struct {
	SimulateErrors bool

	mu         sync.Mutex
	tokenCalls int
	trackCalls int

	OnGetToken func(ctx context.Context) (string, error)
	OnTrack    func(ctx context.Context, token string, req *TrackRequest) (*TrackResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// TokenCalls returns how many token exchanges were attempted.
func (m *MockAPIClient) TokenCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenCalls
}

// TrackCalls returns how many tracking queries were made.
func (m *MockAPIClient) TrackCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trackCalls
}

// GetToken returns a mock bearer token.
func (m *MockAPIClient) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.tokenCalls++
	simulateErrors := m.SimulateErrors
	hook := m.OnGetToken
	m.mu.Unlock()

	if simulateErrors {
		return "", fmt.Errorf("mock token error")
	}

	if hook != nil {
		return hook(ctx)
	}

	return "mock-token", nil
}

// Track returns mock tracking data.
func (m *MockAPIClient) Track(ctx context.Context, token string, req *TrackRequest) (*TrackResponse, error) {
	m.mu.Lock()
	m.trackCalls++
	simulateErrors := m.SimulateErrors
	hook := m.OnTrack
	m.mu.Unlock()

	if simulateErrors {
		return nil, fmt.Errorf("mock track error")
	}

	if hook != nil {
		return hook(ctx, token, req)
	}

	number := "111111111111"
	if len(req.TrackingInfo) > 0 && req.TrackingInfo[0].TrackingNumberInfo != nil {
		number = req.TrackingInfo[0].TrackingNumberInfo.TrackingNumber
	}

	return &TrackResponse{
		Output: &TrackOutput{
			CompleteTrackResults: []CompleteTrackResult{
				{
					TrackingNumber: number,
					TrackResults: []TrackResult{
						{
							LatestStatusDetail: &StatusDetail{
								DerivedCode:    "IT",
								StatusByLocale: "In transit",
								Description:    "In transit",
							},
							DateAndTimes: []DateAndTime{
								{Type: dateTypeShip, DateTime: "2026-08-25T10:00:00+09:00"},
								{Type: dateTypeEstimated, DateTime: "2026-08-30T17:00:00+09:00"},
							},
							ScanEvents: []ScanEvent{
								{
									Date:              "2026-08-26T14:22:00+09:00",
									EventDescription:  "Departed FedEx hub",
									DerivedStatusCode: "DP",
									ScanLocation:      &Address{City: "MEMPHIS", StateOrProvinceCode: "TN", CountryCode: "US"},
								},
								{
									Date:              "2026-08-25T10:05:00+09:00",
									EventDescription:  "Picked up",
									DerivedStatusCode: "PU",
									ScanLocation:      &Address{City: "SEOUL", CountryCode: "KR"},
								},
							},
						},
					},
				},
			},
		},
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
