package fedex_test

import (
	"context"
	"sync"
	"testing"

	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/haneul-labs/shiptrack/pkg/tracker/fedex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(cfg fedex.Config, mockClient *fedex.MockAPIClient) *fedex.Client {
	logger := otelzap.New(zap.NewNop())
	return fedex.NewWithAPIClient(cfg, mockClient, logger, nil)
}

func configuredClient(mockClient *fedex.MockAPIClient) *fedex.Client {
	return newTestClient(fedex.Config{
		ClientID:      "test-id",
		ClientSecret:  "test-secret",
		AccountNumber: "510087020",
	}, mockClient)
}

func TestClient_Track_Success(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "111111111111")

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, tracker.CarrierFedEx, result.Carrier)
	assert.Equal(t, tracker.StatusInTransit, result.Status)
	assert.Equal(t, 1, mockAPI.TokenCalls())
	assert.Equal(t, 1, mockAPI.TrackCalls())

	require.NotNil(t, result.DateInfo)
	assert.Equal(t, "2026-08-25", result.DateInfo.ShipDate)
	assert.Equal(t, "2026-08-30", result.DateInfo.EstimatedDelivery)
	assert.Equal(t, result.DateInfo.EstimatedDelivery, result.ETA)
}

func TestClient_Track_MissingCredentials(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	client := newTestClient(fedex.Config{}, mockAPI)

	result := client.Track(context.Background(), "111111111111")

	assert.False(t, result.Success)
	assert.Equal(t, "FedEx API 인증 정보가 설정되지 않았습니다.", result.Error)
	assert.Equal(t, 0, mockAPI.TokenCalls(), "no token exchange on missing credentials")
	assert.Equal(t, 0, mockAPI.TrackCalls())
}

func TestClient_Track_TokenError(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnGetToken = func(ctx context.Context) (string, error) {
		return "", assert.AnError
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "111111111111")

	assert.False(t, result.Success)
	assert.Equal(t, "FedEx 인증에 실패했습니다.", result.Error)
	assert.Equal(t, 0, mockAPI.TrackCalls())
}

func TestClient_Track_EnvelopeError(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		return &fedex.TrackResponse{
			Errors: []fedex.APIErrorItem{
				{Code: "TRACKING.TRACKINGNUMBER.NOTFOUND", Message: "Tracking number cannot be found."},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "999999999999")

	assert.False(t, result.Success)
	assert.Equal(t, "Tracking number cannot be found.", result.Error)
}

func TestClient_Track_EmptyOutput(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		return &fedex.TrackResponse{Output: &fedex.TrackOutput{}}, nil
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "999999999999")

	assert.False(t, result.Success)
	assert.Equal(t, "송장 정보를 찾을 수 없습니다.", result.Error)
}

func TestClient_Track_TimelineSortedDescending(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		// Events deliberately out of order.
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{{
					TrackingNumber: "111111111111",
					TrackResults: []fedex.TrackResult{{
						LatestStatusDetail: &fedex.StatusDetail{DerivedCode: "IT"},
						ScanEvents: []fedex.ScanEvent{
							{Date: "2026-08-25T10:05:00+09:00", EventDescription: "Picked up", DerivedStatusCode: "PU"},
							{Date: "2026-08-27T08:00:00+09:00", EventDescription: "Arrived at hub", DerivedStatusCode: "AR"},
							{Date: "2026-08-26T14:22:00+09:00", EventDescription: "Departed", DerivedStatusCode: "DP"},
						},
					}},
				}},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "111111111111")

	require.True(t, result.Success)
	require.Len(t, result.Timeline, 3)
	assert.Equal(t, "Arrived at hub", result.Timeline[0].Description)
	assert.Equal(t, "Departed", result.Timeline[1].Description)
	assert.Equal(t, "Picked up", result.Timeline[2].Description)
	assert.Equal(t, "2026-08-27", result.Timeline[0].Date)
	assert.Equal(t, "08:00", result.Timeline[0].Time)
}

func TestClient_Track_DeliveredWithProof(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{{
					TrackingNumber: "111111111111",
					TrackResults: []fedex.TrackResult{{
						LatestStatusDetail: &fedex.StatusDetail{DerivedCode: "DL", Description: "Delivered"},
						DateAndTimes: []fedex.DateAndTime{
							{Type: "ACTUAL_DELIVERY", DateTime: "2026-08-28T11:30:00+09:00"},
							{Type: "SHIP", DateTime: "2026-08-25T10:00:00+09:00"},
						},
						DeliveryDetails: &fedex.DeliveryDetails{
							ReceivedByName:      "KIM",
							LocationDescription: "Front desk",
						},
					}},
				}},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "111111111111")

	require.True(t, result.Success)
	assert.Equal(t, tracker.StatusDelivered, result.Status)
	assert.Equal(t, "KIM", result.SignedBy)
	assert.Equal(t, "Front desk", result.DeliveryLocation)
	require.NotNil(t, result.DateInfo)
	assert.Equal(t, "2026-08-28", result.DateInfo.ActualDelivery)
}

func TestClient_Track_PartyFallbacks(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		// No explicit shipper/recipient information; the origin location and
		// last updated destination address must fill in.
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{{
					TrackingNumber: "111111111111",
					TrackResults: []fedex.TrackResult{{
						LatestStatusDetail: &fedex.StatusDetail{DerivedCode: "IT"},
						OriginLocation: &fedex.LocationDetail{
							LocationContactAndAddress: &fedex.PartyLocation{
								Address: &fedex.Address{City: "SEOUL", CountryCode: "KR"},
							},
						},
						LastUpdatedDestinationAddress: &fedex.Address{
							City: "MEMPHIS", StateOrProvinceCode: "TN", CountryCode: "US",
						},
					}},
				}},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "111111111111")

	require.True(t, result.Success)
	require.NotNil(t, result.Shipper)
	require.NotNil(t, result.Recipient)
	assert.Equal(t, "SEOUL, KR", result.Origin)
	assert.Equal(t, "MEMPHIS, TN, US", result.Destination)
}

func TestClient_Track_DeliveryWindow(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{{
					TrackResults: []fedex.TrackResult{{
						EstimatedDeliveryTimeWindow: &fedex.TimeWindow{
							Window: &fedex.Window{
								Begins: "2026-08-30T09:00:00+09:00",
								Ends:   "2026-08-30T13:00:00+09:00",
							},
						},
					}},
				}},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "111111111111")

	require.True(t, result.Success)
	require.NotNil(t, result.DateInfo)
	assert.Equal(t, "09:00 ~ 13:00", result.DateInfo.DeliveryWindow)
}

func TestClient_Track_CommitWindowFallback(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{{
					TrackResults: []fedex.TrackResult{{
						DateAndTimes: []fedex.DateAndTime{
							{Type: "COMMIT", DateTime: "2026-08-30T18:00:00+09:00"},
						},
					}},
				}},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	result := client.Track(context.Background(), "111111111111")

	require.True(t, result.Success)
	require.NotNil(t, result.DateInfo)
	assert.Equal(t, "18:00 이전", result.DateInfo.DeliveryWindow)
}

func TestClient_Track_StatusCodeMapping(t *testing.T) {
	cases := map[string]tracker.Status{
		"OC": tracker.StatusPending,
		"PU": tracker.StatusPickedUp,
		"IT": tracker.StatusInTransit,
		"DP": tracker.StatusInTransit,
		"AR": tracker.StatusInTransit,
		"DY": tracker.StatusInTransit,
		"OD": tracker.StatusOutForDelivery,
		"DL": tracker.StatusDelivered,
		"CA": tracker.StatusUnknown,
		"XX": tracker.StatusInTransit,
	}

	for code, want := range cases {
		mockAPI := fedex.NewMockAPIClient()
		mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
			return &fedex.TrackResponse{
				Output: &fedex.TrackOutput{
					CompleteTrackResults: []fedex.CompleteTrackResult{{
						TrackResults: []fedex.TrackResult{{
							LatestStatusDetail: &fedex.StatusDetail{DerivedCode: code},
						}},
					}},
				},
			}, nil
		}
		client := configuredClient(mockAPI)

		result := client.Track(context.Background(), "111111111111")
		assert.Equal(t, want, result.Status, code)
	}
}

func TestClient_Track_Deterministic(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	client := configuredClient(mockAPI)

	first := client.Track(context.Background(), "111111111111")
	second := client.Track(context.Background(), "111111111111")

	assert.Equal(t, first, second, "identical upstream responses yield identical results")
}

func TestClient_TrackBatch_EmptyInput(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	client := configuredClient(mockAPI)

	list := client.TrackBatch(context.Background(), nil)

	require.NotNil(t, list)
	assert.True(t, list.Success)
	assert.Empty(t, list.Shipments)
	assert.Equal(t, 0, mockAPI.TokenCalls(), "no upstream call for an empty batch")
	assert.Equal(t, 0, mockAPI.TrackCalls())
}

func TestClient_TrackBatch_SingleRequest(t *testing.T) {
	var gotReq *fedex.TrackRequest
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		gotReq = req
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{
					{
						TrackingNumber: "111111111111",
						TrackResults: []fedex.TrackResult{{
							LatestStatusDetail: &fedex.StatusDetail{DerivedCode: "IT", Description: "In transit"},
						}},
					},
					{
						TrackingNumber: "222222222222",
						TrackResults: []fedex.TrackResult{{
							LatestStatusDetail: &fedex.StatusDetail{DerivedCode: "DL", Description: "Delivered"},
						}},
					},
				},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	list := client.TrackBatch(context.Background(), []string{"111111111111", "222222222222"})

	require.True(t, list.Success)
	require.Len(t, list.Shipments, 2)
	assert.Equal(t, 1, mockAPI.TrackCalls(), "batch goes out as one request")
	require.NotNil(t, gotReq)
	assert.False(t, gotReq.IncludeDetailedScans)
	assert.Len(t, gotReq.TrackingInfo, 2)
	assert.Equal(t, tracker.StatusDelivered, list.Shipments[1].Status)
}

func TestClient_TrackBatch_SkipsPerShipmentErrors(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{
					{
						TrackingNumber: "111111111111",
						TrackResults: []fedex.TrackResult{{
							Error: &fedex.APIErrorItem{Code: "TRACKING.TRACKINGNUMBER.NOTFOUND", Message: "not found"},
						}},
					},
					{
						TrackingNumber: "222222222222",
						TrackResults: []fedex.TrackResult{{
							LatestStatusDetail: &fedex.StatusDetail{DerivedCode: "IT"},
						}},
					},
				},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	list := client.TrackBatch(context.Background(), []string{"111111111111", "222222222222"})

	require.True(t, list.Success)
	require.Len(t, list.Shipments, 1)
	assert.Equal(t, "222222222222", list.Shipments[0].TrackingNumber)
}

func TestClient_ListByAccount_QueriesAllAccountTypes(t *testing.T) {
	var mu sync.Mutex
	gotTypes := make(map[string]bool)

	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		mu.Lock()
		gotTypes[req.TrackingInfo[0].AccountNumber.Type] = true
		mu.Unlock()
		return &fedex.TrackResponse{}, nil
	}
	client := configuredClient(mockAPI)

	list := client.ListByAccount(context.Background(), 30)

	require.True(t, list.Success)
	assert.Equal(t, 4, mockAPI.TrackCalls())
	for _, at := range []string{"SHIPPER", "RECIPIENT", "PAYOR", "THIRD_PARTY"} {
		assert.True(t, gotTypes[at], at)
	}
}

func TestClient_ListByAccount_ConcurrentMockCounters(t *testing.T) {
	// The four relationship queries hit the mock from separate goroutines;
	// its counters and hook dispatch must stay consistent under that load.
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		return &fedex.TrackResponse{}, nil
	}
	client := configuredClient(mockAPI)

	for i := 0; i < 5; i++ {
		list := client.ListByAccount(context.Background(), 7)
		require.True(t, list.Success)
	}

	assert.Equal(t, 5, mockAPI.TokenCalls())
	assert.Equal(t, 20, mockAPI.TrackCalls())
}

func TestClient_ListByAccount_DedupFirstSeenWins(t *testing.T) {
	response := func(trackingNumber, derivedCode string) *fedex.TrackResponse {
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{{
					TrackingNumber: trackingNumber,
					TrackResults: []fedex.TrackResult{{
						LatestStatusDetail: &fedex.StatusDetail{DerivedCode: derivedCode},
					}},
				}},
			},
		}
	}

	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		// The same shipment shows up under two relationships with
		// conflicting statuses; the SHIPPER view must win.
		switch req.TrackingInfo[0].AccountNumber.Type {
		case "SHIPPER":
			return response("111111111111", "IT"), nil
		case "RECIPIENT":
			return response("111111111111", "DL"), nil
		default:
			return &fedex.TrackResponse{}, nil
		}
	}
	client := configuredClient(mockAPI)

	list := client.ListByAccount(context.Background(), 30)

	require.True(t, list.Success)
	require.Len(t, list.Shipments, 1)
	assert.Equal(t, tracker.StatusInTransit, list.Shipments[0].Status)
}

func TestClient_ListByAccount_PartialFailure(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		if req.TrackingInfo[0].AccountNumber.Type == "PAYOR" {
			return nil, assert.AnError
		}
		return &fedex.TrackResponse{
			Output: &fedex.TrackOutput{
				CompleteTrackResults: []fedex.CompleteTrackResult{{
					TrackingNumber: req.TrackingInfo[0].AccountNumber.Type,
					TrackResults: []fedex.TrackResult{{
						LatestStatusDetail: &fedex.StatusDetail{DerivedCode: "IT"},
					}},
				}},
			},
		}, nil
	}
	client := configuredClient(mockAPI)

	list := client.ListByAccount(context.Background(), 30)

	require.True(t, list.Success, "one failed relationship query must not fail the list")
	assert.Len(t, list.Shipments, 3)
}

func TestClient_ListByAccount_MissingAccountNumber(t *testing.T) {
	mockAPI := fedex.NewMockAPIClient()
	client := newTestClient(fedex.Config{ClientID: "id", ClientSecret: "secret"}, mockAPI)

	list := client.ListByAccount(context.Background(), 30)

	assert.False(t, list.Success)
	assert.Equal(t, "FedEx 계정 번호가 설정되지 않았습니다.", list.Error)
	assert.Equal(t, 0, mockAPI.TokenCalls())
}

func TestClient_ListByAccount_DefaultWindow(t *testing.T) {
	var mu sync.Mutex
	windows := make(map[string]string)

	mockAPI := fedex.NewMockAPIClient()
	mockAPI.OnTrack = func(ctx context.Context, token string, req *fedex.TrackRequest) (*fedex.TrackResponse, error) {
		info := req.TrackingInfo[0]
		mu.Lock()
		windows[info.ShipDateBegin] = info.ShipDateEnd
		mu.Unlock()
		return &fedex.TrackResponse{}, nil
	}
	client := configuredClient(mockAPI)

	client.ListByAccount(context.Background(), 0)

	assert.Len(t, windows, 1, "all four queries share one 30-day window")
	for begin, end := range windows {
		assert.NotEmpty(t, begin)
		assert.NotEmpty(t, end)
	}
}
