package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/subscribe", "POST", 200, 10*time.Millisecond)
	m.RecordRequest("/api/subscribe", "POST", 200, 30*time.Millisecond)
	m.RecordError("/api/subscribe", "POST", "CONFLICT")

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.Requests["/api/subscribe|POST|200"])
	assert.EqualValues(t, 20, snap.AvgLatencyMsec["/api/subscribe|POST|200"])
	assert.EqualValues(t, 1, snap.Errors["/api/subscribe|POST|CONFLICT"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}
