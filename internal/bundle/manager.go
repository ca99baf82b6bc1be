// Package bundle downloads a site's inspection history into a private
// embedded store for offline use and exposes read accessors equivalent to
// the online path. Bundles live under <root>/<namesite>/ with the store file
// and a sidecar metadata record tracking last access.
package bundle

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sitewarden/sitewarden/internal/errors"
	"github.com/sitewarden/sitewarden/internal/inspection"
	"github.com/sitewarden/sitewarden/internal/logging"
	"github.com/sitewarden/sitewarden/internal/observability/metrics"
	"github.com/sitewarden/sitewarden/internal/remote"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrEmptySite indicates a download found no inspections for the site.
var ErrEmptySite = errors.NewStd("no inspections found for site")

// RemoteSource is the subset of the remote accessor the bundle manager needs.
type RemoteSource interface {
	FetchReportRows(siteName string) ([]remote.ReportRow, error)
}

// Manager downloads and reads per-site offline bundles.
type Manager struct {
	root    string
	remote  RemoteSource
	log     *slog.Logger
	metrics *metrics.SyncMetrics
}

// NewManager creates a bundle manager rooted at the given directory. Metrics
// may be nil to disable recording.
func NewManager(root string, r RemoteSource, m *metrics.SyncMetrics) *Manager {
	return &Manager{
		root:    root,
		remote:  r,
		log:     logging.ForService("bundle"),
		metrics: m,
	}
}

// BundleDir returns the bundle directory of a site.
func (m *Manager) BundleDir(siteName string) string {
	return filepath.Join(m.root, siteName)
}

// openStore opens the embedded store of a bundle directory. The returned
// close function must be called on every path; there is no pooling.
func openStore(bundleDir string) (*gorm.DB, func(), error) {
	storePath := filepath.Join(bundleDir, StoreFileName)
	db, err := gorm.Open(sqlite.Open(storePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, nil, errors.New(err).
			Component("bundle").
			Category(errors.CategoryDatabase).
			Context("operation", "open-store").
			Build()
	}

	closeStore := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeStore, nil
}

// Download fetches a site's full inspection history into a fresh offline
// bundle. An existing bundle is deleted first: a download always replaces,
// never merges, which also makes re-downloads idempotent.
func (m *Manager) Download(siteName string) error {
	start := time.Now()
	err := m.download(siteName)

	if m.metrics != nil {
		m.metrics.RecordDownloadDuration(time.Since(start).Seconds())
		switch {
		case err == nil:
			m.metrics.RecordDownload("success")
		case errors.Is(err, ErrEmptySite):
			m.metrics.RecordDownload("empty")
		default:
			m.metrics.RecordDownload("error")
		}
	}
	return err
}

func (m *Manager) download(siteName string) error {
	bundleDir := m.BundleDir(siteName)

	if _, err := os.Stat(bundleDir); err == nil {
		if err := os.RemoveAll(bundleDir); err != nil {
			return errors.New(err).
				Component("bundle").
				Category(errors.CategoryFileIO).
				Context("operation", "remove-stale-bundle").
				Context("site", siteName).
				Build()
		}
		if m.metrics != nil {
			m.metrics.RecordBundleDeleted("overwrite")
		}
	}

	if err := os.MkdirAll(bundleDir, 0o755); err != nil {
		return errors.New(err).
			Component("bundle").
			Category(errors.CategoryFileIO).
			Context("operation", "create-bundle-dir").
			Context("site", siteName).
			Build()
	}

	db, closeStore, err := openStore(bundleDir)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := db.AutoMigrate(&Inspection{}); err != nil {
		return errors.New(err).
			Component("bundle").
			Category(errors.CategoryDatabase).
			Context("operation", "migrate-store").
			Context("site", siteName).
			Build()
	}

	rows, err := m.remote.FetchReportRows(siteName)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New(ErrEmptySite).
			Component("bundle").
			Category(errors.CategoryEmptyResult).
			Context("site", siteName).
			Build()
	}

	for i := range rows {
		row := toInspection(&rows[i])
		if err := db.Create(&row).Error; err != nil {
			return errors.New(err).
				Component("bundle").
				Category(errors.CategoryDatabase).
				Context("operation", "insert-inspection").
				Context("site", siteName).
				Build()
		}
	}

	if err := TouchMetadata(bundleDir, time.Now().UnixMilli()); err != nil {
		return err
	}

	if m.metrics != nil {
		m.metrics.RecordDownloadedRows(float64(len(rows)))
	}
	m.log.Info("site bundle downloaded", "site", siteName, "inspections", len(rows))
	return nil
}

// DownloadedSites enumerates the currently downloaded site bundles. A bundle
// that fails to open or parse is skipped with a warning; a corrupt bundle
// must never abort enumeration of the others.
func (m *Manager) DownloadedSites() ([]inspection.DownloadedSite, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New(err).
			Component("bundle").
			Category(errors.CategoryFileIO).
			Context("operation", "enumerate-bundles").
			Build()
	}

	var sites []inspection.DownloadedSite
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		site, err := m.readDownloadedSite(entry.Name())
		if err != nil {
			m.log.Warn("skipping unreadable bundle", "site", entry.Name(), "error", err)
			continue
		}
		sites = append(sites, *site)
	}
	return sites, nil
}

// readDownloadedSite assembles the badge data of one bundle.
func (m *Manager) readDownloadedSite(siteName string) (*inspection.DownloadedSite, error) {
	bundleDir := m.BundleDir(siteName)

	meta, err := ReadMetadata(bundleDir)
	if err != nil {
		return nil, err
	}

	db, closeStore, err := openStore(bundleDir)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	var latest Inspection
	if err := db.Order("inspect_date DESC").First(&latest).Error; err != nil {
		return nil, errors.New(err).
			Component("bundle").
			Category(errors.CategoryDatabase).
			Context("operation", "read-latest-inspection").
			Context("site", siteName).
			Build()
	}

	return &inspection.DownloadedSite{
		NameSite:     siteName,
		County:       latest.County,
		InspectDate:  latest.InspectDate,
		LastAccessed: meta.LastAccessed,
	}, nil
}

// DetailsOffline reads a site's inspections from its offline bundle, most
// recent first, in the same shape the online path produces. Offline records
// carry no provenance and cannot be written back. Reading refreshes the
// bundle's last-access timestamp.
func (m *Manager) DetailsOffline(siteName string) ([]inspection.InspectionDetail, error) {
	bundleDir := m.BundleDir(siteName)

	db, closeStore, err := openStore(bundleDir)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	var rows []Inspection
	if err := db.Order("inspect_date DESC").Find(&rows).Error; err != nil {
		return nil, errors.New(err).
			Component("bundle").
			Category(errors.CategoryDatabase).
			Context("operation", "read-inspections").
			Context("site", siteName).
			Build()
	}

	details := make([]inspection.InspectionDetail, 0, len(rows))
	for i := range rows {
		detail := toDetail(&rows[i])
		detail.ID = i
		details = append(details, detail)
	}

	if err := TouchMetadata(bundleDir, time.Now().UnixMilli()); err != nil {
		m.log.Warn("failed to refresh bundle last-access time", "site", siteName, "error", err)
	}

	return details, nil
}

// toInspection converts a remote report-view row to the flat offline model.
func toInspection(row *remote.ReportRow) Inspection {
	return Inspection{
		NameSite:           row.NameSite,
		InspectDate:        row.InspectDate,
		InspectNo:          row.InspectNo,
		County:             row.County,
		InspectType:        row.InspectType,
		SubType:            row.SubType,
		Region:             row.Region,
		Area:               row.Area,
		Activities:         row.Activities,
		Links:              row.Links,
		NaturalnessScore:   row.NaturalnessScore,
		NaturalnessDetails: row.NaturalnessDetails,
		Steward:            row.Steward,
		StewardGuest:       row.StewardGuest,
		Notes:              row.Notes,
	}
}

// toDetail converts a flat offline row to the display record shape.
func toDetail(row *Inspection) inspection.InspectionDetail {
	return inspection.InspectionDetail{
		NameSite:           row.NameSite,
		InspectDate:        row.InspectDate,
		InspectNo:          row.InspectNo,
		County:             row.County,
		InspectType:        row.InspectType,
		SubType:            row.SubType,
		Region:             row.Region,
		Area:               row.Area,
		Activities:         row.Activities,
		Links:              row.Links,
		NaturalnessScore:   row.NaturalnessScore,
		NaturalnessDetails: row.NaturalnessDetails,
		Steward:            row.Steward,
		StewardGuest:       row.StewardGuest,
		Notes:              inspection.ParseNotes(row.Notes),
	}
}
