package ups_test

import (
	"context"
	"testing"

	"github.com/haneul-labs/shiptrack/pkg/tracker"
	"github.com/haneul-labs/shiptrack/pkg/tracker/ups"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Track_AlwaysUnsupported(t *testing.T) {
	client := ups.New()

	result := client.Track(context.Background(), "1Z999AA10123456784")

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "UPS 조회는 아직 지원되지 않습니다.", result.Error)
	assert.Equal(t, tracker.CarrierUPS, result.Carrier)
	assert.Equal(t, tracker.StatusUnknown, result.Status)
	assert.Empty(t, result.Timeline)
}
