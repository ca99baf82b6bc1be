package metrics

// Histogram bucket parameters shared by the metric definitions.
const (
	// BucketStart1ms is the starting bucket for 1ms histograms (1ms to ~1s range).
	BucketStart1ms = 0.001
	// BucketStart100ms is the starting bucket for 100ms histograms (100ms to ~100s range).
	BucketStart100ms = 0.1
	// BucketFactor2 doubles the bucket width at each step.
	BucketFactor2 = 2.0
	// BucketCount10 is the default number of histogram buckets.
	BucketCount10 = 10
)
