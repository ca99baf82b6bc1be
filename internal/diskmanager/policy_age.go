// policy_age.go - age retention policy for offline site bundles
package diskmanager

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sitewarden/sitewarden/internal/bundle"
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/errors"
	"github.com/sitewarden/sitewarden/internal/logging"
	"github.com/sitewarden/sitewarden/internal/observability/metrics"
)

// MillisPerDay converts the retention window in days to the epoch-millisecond
// age comparison used against bundle metadata.
const MillisPerDay = 24 * 60 * 60 * 1000

var diskLogger *slog.Logger

// InitLogger initializes the diskmanager service logger.
func InitLogger() {
	diskLogger = logging.ForService("diskmanager")
}

func logger() *slog.Logger {
	if diskLogger == nil {
		InitLogger()
	}
	return diskLogger
}

// ResolveRetentionDays resolves the retention window: an explicit positive
// override wins, then the persisted preference, then the fixed default.
func ResolveRetentionDays(settings *conf.Settings, override int) int {
	if override > 0 {
		return override
	}
	if settings != nil && settings.Offline.Retention.KeepDays > 0 {
		return settings.Offline.Retention.KeepDays
	}
	return conf.DefaultRetentionDays
}

// CleanupExpiredSites removes offline bundles whose last access is strictly
// older than the retention window. keepDaysOverride <= 0 means "not given".
// A bundle with no readable metadata is never deleted; a bundle already gone
// by the time it is swept is not an error.
func CleanupExpiredSites(settings *conf.Settings, keepDaysOverride int, m *metrics.SyncMetrics) error {
	return cleanupExpiredSitesAt(settings, keepDaysOverride, m, time.Now().UnixMilli())
}

// cleanupExpiredSitesAt is the clock-injected sweep used by tests.
func cleanupExpiredSitesAt(settings *conf.Settings, keepDaysOverride int, m *metrics.SyncMetrics, nowMillis int64) error {
	keepDays := ResolveRetentionDays(settings, keepDaysOverride)
	debug := settings != nil && settings.Offline.Retention.Debug
	root := settings.BundlesRoot()

	if debug {
		logger().Debug("Starting age-based bundle cleanup",
			"base_dir", root,
			"keep_days", keepDays)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		recordCleanup(m, "error")
		return errors.New(err).
			Component("diskmanager").
			Category(errors.CategoryDiskCleanup).
			Context("operation", "read-bundle-root").
			Build()
	}

	maxAge := int64(keepDays) * MillisPerDay
	deleted := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		bundleDir := filepath.Join(root, entry.Name())

		meta, err := bundle.ReadMetadata(bundleDir)
		if err != nil {
			// Never delete a bundle whose age cannot be established.
			logger().Warn("Skipping bundle with unreadable metadata",
				"site", entry.Name(), "error", err)
			continue
		}

		age := nowMillis - meta.LastAccessed
		if age <= maxAge {
			if debug {
				logger().Debug("Bundle within retention window, keeping",
					"site", entry.Name(), "age_ms", age)
			}
			continue
		}

		if err := os.RemoveAll(bundleDir); err != nil {
			recordCleanup(m, "error")
			return errors.New(err).
				Component("diskmanager").
				Category(errors.CategoryDiskCleanup).
				Context("operation", "remove-expired-bundle").
				Context("site", entry.Name()).
				Build()
		}
		deleted++
		if m != nil {
			m.RecordBundleDeleted("expired")
		}
		logger().Info("Expired bundle deleted", "site", entry.Name(), "age_ms", age)
	}

	if debug {
		logger().Info("Age retention policy applied", "bundles_deleted", deleted)
	}
	recordCleanup(m, "success")
	return nil
}

// ManualDeleteSites removes the bundles of the named sites regardless of age.
// Deleting an already-absent bundle is not an error.
func ManualDeleteSites(settings *conf.Settings, names []string, m *metrics.SyncMetrics) error {
	root := settings.BundlesRoot()

	for _, name := range names {
		bundleDir := filepath.Join(root, name)
		if err := os.RemoveAll(bundleDir); err != nil {
			return errors.New(err).
				Component("diskmanager").
				Category(errors.CategoryDiskCleanup).
				Context("operation", "manual-delete-bundle").
				Context("site", name).
				Build()
		}
		if m != nil {
			m.RecordBundleDeleted("manual")
		}
		logger().Info("Bundle deleted by user", "site", name)
	}
	return nil
}

func recordCleanup(m *metrics.SyncMetrics, status string) {
	if m != nil {
		m.RecordCleanupOperation(status)
	}
}
