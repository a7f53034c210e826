package sweettracker_test

import (
	"context"
	"testing"

	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/haneul-labs/shiptrack/pkg/tracker/sweettracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(carrier tracker.Carrier, apiKey string, mockClient *sweettracker.MockAPIClient) *sweettracker.Client {
	logger := otelzap.New(zap.NewNop())
	return sweettracker.NewWithAPIClient(
		carrier,
		sweettracker.Config{APIKey: apiKey},
		mockClient,
		logger,
		nil,
	)
}

func TestClient_Track_Success(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	client := newTestClient(tracker.CarrierCJ, "test-key", mockAPI)

	result := client.Track(context.Background(), "123456789012")

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, tracker.CarrierCJ, result.Carrier)
	assert.Equal(t, "123456789012", result.TrackingNumber)
	assert.Equal(t, tracker.StatusInTransit, result.Status)
}

func TestClient_Track_TimelineMostRecentFirst(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	client := newTestClient(tracker.CarrierCJ, "test-key", mockAPI)

	// The mock delivers three details oldest-first.
	result := client.Track(context.Background(), "123456789012")

	require.Len(t, result.Timeline, 3)
	assert.Equal(t, "2026-08-28", result.Timeline[0].Date)
	assert.Equal(t, "07:03", result.Timeline[0].Time)
	assert.Equal(t, "간선하차", result.Timeline[0].Description)
	assert.Equal(t, "2026-08-27", result.Timeline[2].Date)
	assert.Equal(t, "09:12", result.Timeline[2].Time)
	assert.Equal(t, tracker.StatusPickedUp, result.Timeline[2].Status)
}

func TestClient_Track_MissingAPIKey(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	client := newTestClient(tracker.CarrierLogen, "", mockAPI)

	result := client.Track(context.Background(), "123456789012")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "스마트택배 API 키가 설정되지 않았습니다.", result.Error)
	assert.Equal(t, tracker.StatusUnknown, result.Status)
	assert.Empty(t, result.Timeline)
	assert.Equal(t, 0, mockAPI.Calls, "no upstream call on missing credentials")
}

func TestClient_Track_TransportError(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(tracker.CarrierCJ, "test-key", mockAPI)

	result := client.Track(context.Background(), "123456789012")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "조회 중 오류가 발생했습니다.", result.Error)
}

func TestClient_Track_UpstreamMessagePassthrough(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	mockAPI.OnGetTrackingInfo = func(ctx context.Context, carrierCode, invoice string) (*sweettracker.TrackingInfoResponse, error) {
		return &sweettracker.TrackingInfoResponse{
			Status: false,
			Msg:    "유효하지 않은 운송장번호 입니다.",
		}, nil
	}
	client := newTestClient(tracker.CarrierCJ, "test-key", mockAPI)

	result := client.Track(context.Background(), "000000000000")

	assert.False(t, result.Success)
	assert.Equal(t, "유효하지 않은 운송장번호 입니다.", result.Error)
}

func TestClient_Track_EmptyUpstreamMessage(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	mockAPI.OnGetTrackingInfo = func(ctx context.Context, carrierCode, invoice string) (*sweettracker.TrackingInfoResponse, error) {
		return &sweettracker.TrackingInfoResponse{Status: true, Result: nil}, nil
	}
	client := newTestClient(tracker.CarrierCJ, "test-key", mockAPI)

	result := client.Track(context.Background(), "123456789012")

	assert.False(t, result.Success)
	assert.Equal(t, "배송 정보를 찾을 수 없습니다.", result.Error)
}

func TestClient_Track_NoEventsYet(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	mockAPI.OnGetTrackingInfo = func(ctx context.Context, carrierCode, invoice string) (*sweettracker.TrackingInfoResponse, error) {
		return &sweettracker.TrackingInfoResponse{
			Status: true,
			Result: &sweettracker.TrackingResult{Level: 1},
		}, nil
	}
	client := newTestClient(tracker.CarrierCJ, "test-key", mockAPI)

	result := client.Track(context.Background(), "123456789012")

	assert.True(t, result.Success)
	assert.Equal(t, tracker.StatusPickedUp, result.Status)
	assert.Empty(t, result.Timeline)
}

func TestClient_Track_DeliveredLevel(t *testing.T) {
	mockAPI := sweettracker.NewMockAPIClient()
	mockAPI.OnGetTrackingInfo = func(ctx context.Context, carrierCode, invoice string) (*sweettracker.TrackingInfoResponse, error) {
		return &sweettracker.TrackingInfoResponse{
			Status: true,
			Result: &sweettracker.TrackingResult{
				Complete: true,
				Level:    6,
				TrackingDetails: []sweettracker.TrackingDetail{
					{TimeString: "2026-08-28 14:05", Where: "부산진", Kind: "배송완료", Level: 6},
				},
			},
		}, nil
	}
	client := newTestClient(tracker.CarrierLogen, "test-key", mockAPI)

	result := client.Track(context.Background(), "987654321098")

	assert.True(t, result.Success)
	assert.Equal(t, tracker.StatusDelivered, result.Status)
	require.Len(t, result.Timeline, 1)
	assert.Equal(t, tracker.StatusDelivered, result.Timeline[0].Status)
}

func TestClient_Track_LevelMapping(t *testing.T) {
	cases := map[int]tracker.Status{
		1:  tracker.StatusPickedUp,
		2:  tracker.StatusInTransit,
		3:  tracker.StatusInTransit,
		4:  tracker.StatusInTransit,
		5:  tracker.StatusInTransit,
		6:  tracker.StatusDelivered,
		99: tracker.StatusUnknown,
		0:  tracker.StatusUnknown,
	}

	for level, want := range cases {
		mockAPI := sweettracker.NewMockAPIClient()
		mockAPI.OnGetTrackingInfo = func(ctx context.Context, carrierCode, invoice string) (*sweettracker.TrackingInfoResponse, error) {
			return &sweettracker.TrackingInfoResponse{
				Status: true,
				Result: &sweettracker.TrackingResult{Level: level},
			}, nil
		}
		client := newTestClient(tracker.CarrierCJ, "test-key", mockAPI)

		result := client.Track(context.Background(), "123456789012")
		assert.Equal(t, want, result.Status, "level %d", level)
	}
}

func TestClient_Track_AggregatorCodeRouting(t *testing.T) {
	var gotCode string
	mockAPI := sweettracker.NewMockAPIClient()
	mockAPI.OnGetTrackingInfo = func(ctx context.Context, carrierCode, invoice string) (*sweettracker.TrackingInfoResponse, error) {
		gotCode = carrierCode
		return &sweettracker.TrackingInfoResponse{
			Status: true,
			Result: &sweettracker.TrackingResult{Level: 2},
		}, nil
	}

	client := newTestClient(tracker.CarrierLogen, "test-key", mockAPI)
	client.Track(context.Background(), "987654321098")

	assert.Equal(t, "06", gotCode)
}
