// Package remote provides thin table-scoped query functions against the
// remote relational inspection service. Each call is a single round-trip; no
// batching, no retries, no transactions spanning multiple calls. Errors
// propagate to the caller with context attached, cause preserved.
package remote

import (
	"log/slog"

	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/logging"
	"gorm.io/gorm"
)

// Accessor performs table-scoped queries against the remote service.
type Accessor struct {
	db     *gorm.DB
	tables conf.RemoteTables
	log    *slog.Logger
}

// NewWithDB wraps an already opened database handle. Used by tests and by
// callers that manage the connection themselves.
func NewWithDB(db *gorm.DB, tables conf.RemoteTables) *Accessor {
	return &Accessor{
		db:     db,
		tables: tables,
		log:    logging.ForService("remote"),
	}
}

// Close releases the underlying database connection.
func (a *Accessor) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return dbError(err, "close")
	}
	return sqlDB.Close()
}

// ListSites returns the site list view ordered ascending by site name.
func (a *Accessor) ListSites() ([]SiteRow, error) {
	var sites []SiteRow
	err := a.db.Table(a.tables.SiteList).
		Order("namesite ASC").
		Find(&sites).Error
	if err != nil {
		return nil, dbError(err, "list_sites")
	}
	return sites, nil
}

// FetchInspectionHeaders returns all inspection headers for a site ordered by
// inspection date, most recent first.
func (a *Accessor) FetchInspectionHeaders(siteName string) ([]HeaderRow, error) {
	var headers []HeaderRow
	err := a.db.Table(a.tables.Headers).
		Where("`q22-pasitename` = ?", siteName).
		Order("inspectdate DESC").
		Find(&headers).Error
	if err != nil {
		return nil, dbError(err, "fetch_headers", "site", siteName)
	}
	return headers, nil
}

// FetchReportView returns the single denormalized report-view row matching
// the (siteName, date) natural key. When two headers share the same pair the
// join is not distinguishing and either header may bind to this row.
func (a *Accessor) FetchReportView(siteName, date string) (*ReportRow, error) {
	var row ReportRow
	err := a.db.Table(a.tables.ReportView).
		Where("namesite = ? AND inspectdate = ?", siteName, date).
		First(&row).Error
	if err != nil {
		return nil, dbError(err, "fetch_report_view", "site", siteName, "date", date)
	}
	return &row, nil
}

// FetchReportRows returns all report-view rows for a site ordered by
// inspection date, most recent first. Used by the offline bundle download.
func (a *Accessor) FetchReportRows(siteName string) ([]ReportRow, error) {
	var rows []ReportRow
	err := a.db.Table(a.tables.ReportView).
		Where("namesite = ?", siteName).
		Order("inspectdate DESC").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, "fetch_report_rows", "site", siteName)
	}
	return rows, nil
}

// FetchDetailRows returns the free-form observation rows of one inspection
// ordered by row id ascending. The ascending order is what keeps the
// row-provenance mapping stable within a fetch.
func (a *Accessor) FetchDetailRows(inspectionID int64) ([]DetailRow, error) {
	var rows []DetailRow
	err := a.db.Table(a.tables.Details).
		Where("inspection = ?", inspectionID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, "fetch_detail_rows", "inspection_id", inspectionID)
	}
	return rows, nil
}

// FetchObservationCodeLookup returns the observation id to display code map.
func (a *Accessor) FetchObservationCodeLookup() (map[int64]string, error) {
	var rows []CodeRow
	err := a.db.Table(a.tables.Codes).Find(&rows).Error
	if err != nil {
		return nil, dbError(err, "fetch_code_lookup")
	}

	lookup := make(map[int64]string, len(rows))
	for _, row := range rows {
		lookup[row.ID] = row.Observation
	}
	return lookup, nil
}

// UpdatePersonDisplayName writes a new display name to a person-lookup row.
func (a *Accessor) UpdatePersonDisplayName(id int64, name string) error {
	err := a.db.Table(a.tables.Persons).
		Where("id = ?", id).
		Update("displayname", name).Error
	if err != nil {
		return dbError(err, "update_person", "person_id", id)
	}
	return nil
}

// UpdateHeaderField writes a single column of one inspection header.
func (a *Accessor) UpdateHeaderField(inspectionID int64, field, value string) error {
	err := a.db.Table(a.tables.Headers).
		Where("id = ?", inspectionID).
		Update(field, value).Error
	if err != nil {
		return dbError(err, "update_header", "inspection_id", inspectionID, "field", field)
	}
	return nil
}

// UpdateDetailRow writes a single column of one observation detail row.
func (a *Accessor) UpdateDetailRow(rowID int64, field, value string) error {
	err := a.db.Table(a.tables.Details).
		Where("id = ?", rowID).
		Update(field, value).Error
	if err != nil {
		return dbError(err, "update_detail_row", "row_id", rowID, "field", field)
	}
	return nil
}

// DeleteDetailRowsForInspection removes all observation detail rows of one
// inspection.
func (a *Accessor) DeleteDetailRowsForInspection(inspectionID int64) error {
	err := a.db.Table(a.tables.Details).
		Where("inspection = ?", inspectionID).
		Delete(&DetailRow{}).Error
	if err != nil {
		return dbError(err, "delete_detail_rows", "inspection_id", inspectionID)
	}
	return nil
}
