package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/shops/nearme", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/shops/nearme", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/shops/nearme", "GET", "UNAUTHORIZED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/shops/nearme|GET|200"])
	assert.InDelta(t, 20.0, snap.AvgLatencyMs["/api/shops/nearme|GET|200"], 0.001)
	assert.Equal(t, int64(1), snap.Errors["/api/shops/nearme|GET|UNAUTHORIZED"])
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}
