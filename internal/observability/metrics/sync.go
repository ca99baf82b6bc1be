// Package metrics provides Prometheus metrics for the offline cache and
// sync-mapping subsystem.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics contains Prometheus metrics for cache and sync operations
type SyncMetrics struct {
	registry *prometheus.Registry

	// Bundle download metrics
	downloadsTotal          *prometheus.CounterVec
	downloadDurationSeconds prometheus.Histogram
	downloadedRowsTotal     prometheus.Counter

	// Cleanup metrics
	bundlesDeletedTotal    *prometheus.CounterVec
	cleanupOperationsTotal *prometheus.CounterVec

	// View assembly and update routing metrics
	assembleDurationSeconds prometheus.Histogram
	updateWritesTotal       *prometheus.CounterVec
	updateSkippedTotal      *prometheus.CounterVec
}

// NewSyncMetrics creates and registers new sync metrics
func NewSyncMetrics(registry *prometheus.Registry) (*SyncMetrics, error) {
	m := &SyncMetrics{registry: registry}
	if err := m.initMetrics(); err != nil {
		return nil, err
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// initMetrics initializes all Prometheus metrics
func (m *SyncMetrics) initMetrics() error {
	m.downloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitewarden_bundle_downloads_total",
			Help: "Total number of site bundle downloads",
		},
		[]string{"status"}, // status: success, error, empty
	)

	m.downloadDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sitewarden_bundle_download_duration_seconds",
		Help:    "Time taken to download a site bundle",
		Buckets: prometheus.ExponentialBuckets(BucketStart100ms, BucketFactor2, BucketCount10),
	})

	m.downloadedRowsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sitewarden_bundle_downloaded_rows_total",
		Help: "Total number of inspection rows written to offline bundles",
	})

	m.bundlesDeletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitewarden_bundles_deleted_total",
			Help: "Total number of offline bundles deleted",
		},
		[]string{"reason"}, // reason: expired, manual, overwrite
	)

	m.cleanupOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitewarden_cleanup_operations_total",
			Help: "Total number of cleanup sweeps performed",
		},
		[]string{"status"}, // status: success, error
	)

	m.assembleDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sitewarden_inspection_assemble_duration_seconds",
		Help:    "Time taken to assemble inspection details for a site",
		Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount10),
	})

	m.updateWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitewarden_update_writes_total",
			Help: "Total number of remote field writes routed from edits",
		},
		[]string{"target"}, // target: person, header, detail
	)

	m.updateSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitewarden_update_skipped_fragments_total",
			Help: "Total number of edited note fragments that could not be routed",
		},
		[]string{"reason"}, // reason: no-code, no-mapping
	)

	return nil
}

// Describe implements the Collector interface
func (m *SyncMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.downloadsTotal.Describe(ch)
	m.downloadDurationSeconds.Describe(ch)
	m.downloadedRowsTotal.Describe(ch)
	m.bundlesDeletedTotal.Describe(ch)
	m.cleanupOperationsTotal.Describe(ch)
	m.assembleDurationSeconds.Describe(ch)
	m.updateWritesTotal.Describe(ch)
	m.updateSkippedTotal.Describe(ch)
}

// Collect implements the Collector interface
func (m *SyncMetrics) Collect(ch chan<- prometheus.Metric) {
	m.downloadsTotal.Collect(ch)
	m.downloadDurationSeconds.Collect(ch)
	m.downloadedRowsTotal.Collect(ch)
	m.bundlesDeletedTotal.Collect(ch)
	m.cleanupOperationsTotal.Collect(ch)
	m.assembleDurationSeconds.Collect(ch)
	m.updateWritesTotal.Collect(ch)
	m.updateSkippedTotal.Collect(ch)
}

// RecordDownload records a bundle download attempt
func (m *SyncMetrics) RecordDownload(status string) {
	m.downloadsTotal.WithLabelValues(status).Inc()
}

// RecordDownloadDuration records the time taken for a bundle download
func (m *SyncMetrics) RecordDownloadDuration(duration float64) {
	m.downloadDurationSeconds.Observe(duration)
}

// RecordDownloadedRows records the number of rows written to a bundle
func (m *SyncMetrics) RecordDownloadedRows(count float64) {
	m.downloadedRowsTotal.Add(count)
}

// RecordBundleDeleted records a bundle deletion
func (m *SyncMetrics) RecordBundleDeleted(reason string) {
	m.bundlesDeletedTotal.WithLabelValues(reason).Inc()
}

// RecordCleanupOperation records a cleanup sweep
func (m *SyncMetrics) RecordCleanupOperation(status string) {
	m.cleanupOperationsTotal.WithLabelValues(status).Inc()
}

// RecordAssembleDuration records the time taken to assemble inspection details
func (m *SyncMetrics) RecordAssembleDuration(duration float64) {
	m.assembleDurationSeconds.Observe(duration)
}

// RecordUpdateWrite records a routed remote field write
func (m *SyncMetrics) RecordUpdateWrite(target string) {
	m.updateWritesTotal.WithLabelValues(target).Inc()
}

// RecordUpdateSkipped records an edited fragment that could not be routed
func (m *SyncMetrics) RecordUpdateSkipped(reason string) {
	m.updateSkippedTotal.WithLabelValues(reason).Inc()
}
