package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreMetricsWithRegisterer(t *testing.T) {
	m := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	require.NotNil(t, m)
	assert.NotNil(t, m.ordersCreated)
	assert.NotNil(t, m.statusChanges)
	assert.NotNil(t, m.statusConflicts)
	assert.NotNil(t, m.cartsExpired)
	assert.NotNil(t, m.httpRequests)
	assert.NotNil(t, m.httpDuration)
}

func TestNewStoreMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewStoreMetricsWithRegisterer(reg)
	second := NewStoreMetricsWithRegisterer(reg)

	first.RecordOrderCreated()
	second.RecordOrderCreated()

	assert.InDelta(t, 2.0, testutil.ToFloat64(first.ordersCreated), 1e-9)
}

func TestRecordOrderAndCartCounters(t *testing.T) {
	m := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	m.RecordOrderCreated()
	m.RecordStatusChanged("shipped")
	m.RecordStatusChanged("shipped")
	m.RecordStatusChanged("delivered")
	m.RecordStatusConflict()
	m.RecordCartsExpired(3)
	m.RecordCartsExpired(0)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.ordersCreated), 1e-9)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("shipped")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("delivered")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.statusConflicts), 1e-9)
	assert.InDelta(t, 3.0, testutil.ToFloat64(m.cartsExpired), 1e-9)
}

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetricsWithRegisterer(reg)

	m.RecordHTTPRequest("GET", "/orders", 200, 120*time.Millisecond)
	m.RecordHTTPRequest("GET", "/orders", 200, 80*time.Millisecond)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/orders", "200")), 1e-9)

	families, err := reg.Gather()
	require.NoError(t, err)

	var histogram *dto.Histogram
	for _, family := range families {
		if family.GetName() == "storefront_http_request_duration_seconds" {
			histogram = family.GetMetric()[0].GetHistogram()
		}
	}
	require.NotNil(t, histogram)
	assert.Equal(t, uint64(2), histogram.GetSampleCount())
	assert.InDelta(t, 0.2, histogram.GetSampleSum(), 1e-9)
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *StoreMetrics

	assert.NotPanics(t, func() {
		m.RecordOrderCreated()
		m.RecordStatusChanged("shipped")
		m.RecordStatusConflict()
		m.RecordCartsExpired(1)
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
	})
}
