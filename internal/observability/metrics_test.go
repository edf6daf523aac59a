package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/drinks", "GET", 200, 5*time.Millisecond)
	m.RecordError("/drinks-detail", "GET", "permission_denied")
	m.RecordError("/drinks-detail", "GET", "permission_denied")

	assert.Equal(t, int64(2), m.ErrorCount("/drinks-detail", "GET", "permission_denied"))
	assert.Equal(t, int64(0), m.ErrorCount("/drinks", "POST", "permission_denied"))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/drinks", "GET", 200, time.Millisecond)
	m.RecordError("/drinks", "GET", "whatever")
	assert.Equal(t, int64(0), m.ErrorCount("/drinks", "GET", "whatever"))
}
