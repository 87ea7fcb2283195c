package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Validate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NewID().Validate())
	assert.Error(t, ID("").Validate())
	assert.Error(t, ID("not-a-uuid").Validate())
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	t.Parallel()
	orig := Timestamp(time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC))

	data, err := json.Marshal(orig)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-03-01T12:30:45")

	var decoded Timestamp
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, time.Time(orig).Equal(time.Time(decoded)))
}

func TestTimestamp_UnmarshalPlainRFC3339(t *testing.T) {
	t.Parallel()
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-01T12:30:45Z"`), &ts))
	assert.Equal(t, 2024, time.Time(ts).Year())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTimestamp_UnixMilli(t *testing.T) {
	t.Parallel()
	ts := FromUnixMilli(1709296245000)
	assert.Equal(t, int64(1709296245000), ts.ToUnixMilli())
}

func TestNewSuccessResponse(t *testing.T) {
	t.Parallel()
	resp := NewSuccessResponse(map[string]int{"count": 2})
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, 2, resp.Data["count"])
	assert.False(t, time.Time(resp.Timestamp).IsZero())
}

func TestNewErrorResponse(t *testing.T) {
	t.Parallel()
	resp := NewErrorResponse("MOL_010", "failed to decode molecule")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MOL_010", resp.Error.Code)
	assert.Equal(t, "failed to decode molecule", resp.Error.Message)
}

func TestHealthReport_Aggregate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		components []ComponentHealth
		want       HealthStatus
	}{
		{"no components", nil, HealthUp},
		{"all up", []ComponentHealth{{Status: HealthUp}, {Status: HealthUp}}, HealthUp},
		{"one degraded", []ComponentHealth{{Status: HealthUp}, {Status: HealthDegraded}}, HealthDegraded},
		{"one down wins", []ComponentHealth{{Status: HealthDegraded}, {Status: HealthDown}}, HealthDown},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &HealthReport{Components: tt.components}
			r.Aggregate()
			assert.Equal(t, tt.want, r.Status)
		})
	}
}

func TestBatchResponse_JSONShape(t *testing.T) {
	t.Parallel()
	resp := BatchResponse[int]{
		Succeeded:      []int{1, 2},
		Failed:         []BatchItemError{{Index: 2, Error: ErrorDetail{Code: "MOL_001", Message: "bad symbol"}}},
		TotalProcessed: 3,
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_processed":3`)
	assert.Contains(t, string(data), `"index":2`)
}
