package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordsRequestsAndLatency(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/cars", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/cars", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/auth/login", "POST", 200, 5*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/cars|GET|200"])
	assert.Equal(t, 40*time.Millisecond, snap.LatencyTotal["/cars|GET|200"])
	assert.Equal(t, int64(1), snap.Requests["/auth/login|POST|200"])
}

func TestMetricsAggregatesAuthRejections(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/cars", "GET", "UNAUTHORIZED")
	m.RecordError("/admin-config", "PUT", "FORBIDDEN")
	m.RecordError("/cars", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.AuthRejections)
	assert.Equal(t, int64(1), snap.Errors["/cars|GET|UNAUTHORIZED"])
	assert.Equal(t, int64(1), snap.Errors["/cars|POST|VALIDATION_FAILED"])
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/cars", "GET", 200, time.Millisecond)
	m.RecordError("/cars", "GET", "INTERNAL_ERROR")
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
