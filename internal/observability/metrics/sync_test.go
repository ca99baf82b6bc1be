package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncMetricsRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewSyncMetrics(registry)
	require.NoError(t, err)
	require.NotNil(t, m)

	// Registering the same collector twice must fail.
	_, err = NewSyncMetrics(registry)
	assert.Error(t, err)
}

func TestRecordCounters(t *testing.T) {
	m, err := NewSyncMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordDownload("success")
	m.RecordDownload("success")
	m.RecordDownload("empty")
	m.RecordDownloadedRows(42)
	m.RecordBundleDeleted("expired")
	m.RecordCleanupOperation("success")
	m.RecordUpdateWrite("detail")
	m.RecordUpdateSkipped("no-mapping")

	assert.InDelta(t, 2, testutil.ToFloat64(m.downloadsTotal.WithLabelValues("success")), 0.01)
	assert.InDelta(t, 1, testutil.ToFloat64(m.downloadsTotal.WithLabelValues("empty")), 0.01)
	assert.InDelta(t, 42, testutil.ToFloat64(m.downloadedRowsTotal), 0.01)
	assert.InDelta(t, 1, testutil.ToFloat64(m.bundlesDeletedTotal.WithLabelValues("expired")), 0.01)
	assert.InDelta(t, 1, testutil.ToFloat64(m.updateWritesTotal.WithLabelValues("detail")), 0.01)
	assert.InDelta(t, 1, testutil.ToFloat64(m.updateSkippedTotal.WithLabelValues("no-mapping")), 0.01)
}
