package remote

import (
	"path/filepath"
	"testing"

	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testTables() conf.RemoteTables {
	return conf.RemoteTables{
		Headers:    "inspections",
		Details:    "inspection_details",
		Codes:      "observation_codes",
		Persons:    "persons",
		ReportView: "inspection_report_view",
		SiteList:   "site_list_view",
	}
}

// newTestAccessor opens an accessor over a throwaway SQLite database seeded
// with the remote schema.
func newTestAccessor(t *testing.T) *Accessor {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "remote.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	ddl := []string{
		"CREATE TABLE inspections (id INTEGER PRIMARY KEY, inspectdate TEXT, inspectno INTEGER, steward INTEGER, `steward-guest` TEXT, `q22-pasitename` TEXT)",
		"CREATE TABLE inspection_details (id INTEGER PRIMARY KEY, inspection INTEGER, observation INTEGER, obs_value TEXT, obs_comm TEXT)",
		"CREATE TABLE observation_codes (id INTEGER PRIMARY KEY, observation TEXT)",
		"CREATE TABLE persons (id INTEGER PRIMARY KEY, displayname TEXT)",
		"CREATE TABLE inspection_report_view (namesite TEXT, inspectdate TEXT, inspectno INTEGER, county TEXT, inspect_type TEXT, subtype TEXT, region TEXT, area TEXT, activities TEXT, links TEXT, naturalness_score TEXT, naturalness_details TEXT, steward TEXT, steward_guest TEXT, notes TEXT)",
		"CREATE TABLE site_list_view (namesite TEXT, county TEXT, inspectdate TEXT)",
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	seed := []string{
		"INSERT INTO site_list_view VALUES ('Elk Creek', 'Lassen', '2024-02-20')",
		"INSERT INTO site_list_view VALUES ('Bear Hollow', 'Modoc', '2024-03-01')",
		"INSERT INTO inspections VALUES (200, '2024-01-15', 1, 7, NULL, 'Elk Creek')",
		"INSERT INTO inspections VALUES (201, '2024-02-20', 2, 7, 'visiting ranger', 'Elk Creek')",
		"INSERT INTO inspection_details VALUES (31, 201, 1, 'trail clear', NULL)",
		"INSERT INTO inspection_details VALUES (32, 201, 2, NULL, 'gate locked')",
		"INSERT INTO inspection_details VALUES (33, 200, 1, 'trail muddy', NULL)",
		"INSERT INTO observation_codes VALUES (1, 'Q1')",
		"INSERT INTO observation_codes VALUES (2, 'Q2')",
		"INSERT INTO persons VALUES (7, 'Maya Kinnunen')",
		"INSERT INTO inspection_report_view VALUES ('Elk Creek', '2024-02-20', 2, 'Lassen', 'routine', 'spring', 'north', 'uplands', 'hiking', '', NULL, NULL, 'Maya Kinnunen', 'visiting ranger', 'Q1: trail clear; Q2: gate locked')",
		"INSERT INTO inspection_report_view VALUES ('Elk Creek', '2024-01-15', 1, 'Lassen', 'routine', 'winter', 'north', 'uplands', '', '', NULL, NULL, 'Maya Kinnunen', NULL, 'Q1: trail muddy')",
	}
	for _, stmt := range seed {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return NewWithDB(db, testTables())
}

func TestListSitesOrderedByName(t *testing.T) {
	a := newTestAccessor(t)

	sites, err := a.ListSites()
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "Bear Hollow", sites[0].NameSite)
	assert.Equal(t, "Elk Creek", sites[1].NameSite)
}

func TestFetchInspectionHeadersNewestFirst(t *testing.T) {
	a := newTestAccessor(t)

	headers, err := a.FetchInspectionHeaders("Elk Creek")
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.Equal(t, int64(201), headers[0].ID)
	assert.Equal(t, int64(200), headers[1].ID)

	require.NotNil(t, headers[0].StewardGuest)
	assert.Equal(t, "visiting ranger", *headers[0].StewardGuest)
	assert.Nil(t, headers[1].StewardGuest)
}

func TestFetchReportViewByNaturalKey(t *testing.T) {
	a := newTestAccessor(t)

	row, err := a.FetchReportView("Elk Creek", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "winter", row.SubType)
	assert.Equal(t, "Q1: trail muddy", row.Notes)

	_, err = a.FetchReportView("Elk Creek", "1999-01-01")
	require.Error(t, err)
}

func TestFetchDetailRowsAscendingID(t *testing.T) {
	a := newTestAccessor(t)

	rows, err := a.FetchDetailRows(201)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(31), rows[0].ID)
	assert.Equal(t, int64(32), rows[1].ID)

	require.NotNil(t, rows[0].ObsValue)
	assert.Equal(t, "trail clear", *rows[0].ObsValue)
	assert.Nil(t, rows[0].ObsComm)
}

func TestFetchObservationCodeLookup(t *testing.T) {
	a := newTestAccessor(t)

	lookup, err := a.FetchObservationCodeLookup()
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "Q1", 2: "Q2"}, lookup)
}

func TestUpdateWrites(t *testing.T) {
	a := newTestAccessor(t)

	require.NoError(t, a.UpdatePersonDisplayName(7, "M. Kinnunen"))
	require.NoError(t, a.UpdateHeaderField(201, "steward-guest", "trainee"))
	require.NoError(t, a.UpdateDetailRow(32, "obs_comm", "gate now chained"))

	headers, err := a.FetchInspectionHeaders("Elk Creek")
	require.NoError(t, err)
	require.NotNil(t, headers[0].StewardGuest)
	assert.Equal(t, "trainee", *headers[0].StewardGuest)

	rows, err := a.FetchDetailRows(201)
	require.NoError(t, err)
	require.NotNil(t, rows[1].ObsComm)
	assert.Equal(t, "gate now chained", *rows[1].ObsComm)
}

func TestDeleteDetailRowsForInspection(t *testing.T) {
	a := newTestAccessor(t)

	require.NoError(t, a.DeleteDetailRowsForInspection(201))

	rows, err := a.FetchDetailRows(201)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Other inspections keep their rows.
	rows, err = a.FetchDetailRows(200)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
