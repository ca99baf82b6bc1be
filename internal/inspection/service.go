// Package inspection assembles denormalized inspection records for display
// and routes edited fields back to the exact remote rows they came from.
package inspection

import (
	"log/slog"
	"time"

	"github.com/sitewarden/sitewarden/internal/logging"
	"github.com/sitewarden/sitewarden/internal/observability/metrics"
	"github.com/sitewarden/sitewarden/internal/remote"
)

// Remote is the subset of the remote accessor the service depends on.
type Remote interface {
	ListSites() ([]remote.SiteRow, error)
	FetchInspectionHeaders(siteName string) ([]remote.HeaderRow, error)
	FetchReportView(siteName, date string) (*remote.ReportRow, error)
	FetchDetailRows(inspectionID int64) ([]remote.DetailRow, error)
	FetchObservationCodeLookup() (map[int64]string, error)
	UpdatePersonDisplayName(id int64, name string) error
	UpdateHeaderField(inspectionID int64, field, value string) error
	UpdateDetailRow(rowID int64, field, value string) error
}

// Service is the online view assembler and update router.
type Service struct {
	remote  Remote
	log     *slog.Logger
	metrics *metrics.SyncMetrics
}

// NewService creates a service over the given remote accessor. Metrics may be
// nil to disable recording.
func NewService(r Remote, m *metrics.SyncMetrics) *Service {
	return &Service{
		remote:  r,
		log:     logging.ForService("inspection"),
		metrics: m,
	}
}

// Sites returns the site list with positional ids. The ids are recomputed on
// every fetch and must not be persisted; key off NameSite instead.
func (s *Service) Sites() ([]SiteSummary, error) {
	rows, err := s.remote.ListSites()
	if err != nil {
		return nil, err
	}

	sites := make([]SiteSummary, 0, len(rows))
	for i, row := range rows {
		sites = append(sites, SiteSummary{
			ID:          i,
			NameSite:    row.NameSite,
			County:      row.County,
			InspectDate: row.InspectDate,
		})
	}
	return sites, nil
}

// DetailsOnline fetches and assembles all inspections of a site, most recent
// first. Headers are processed strictly in sequence; the provenance map's
// "first unused entry" tie-break depends on stable per-header boundaries.
// A failure fetching one header's view row or detail rows skips that header
// and continues with the rest.
func (s *Service) DetailsOnline(siteName string) ([]InspectionDetail, error) {
	start := time.Now()

	headers, err := s.remote.FetchInspectionHeaders(siteName)
	if err != nil {
		return nil, err
	}

	// The code lookup is fetched fresh on every call rather than cached, so a
	// changed lookup table is picked up by the next fetch.
	codes, err := s.remote.FetchObservationCodeLookup()
	if err != nil {
		return nil, err
	}

	details := make([]InspectionDetail, 0, len(headers))
	for _, header := range headers {
		view, err := s.remote.FetchReportView(siteName, header.InspectDate)
		if err != nil {
			s.log.Warn("skipping inspection, report view fetch failed",
				"site", siteName, "date", header.InspectDate, "error", err)
			continue
		}

		rows, err := s.remote.FetchDetailRows(header.ID)
		if err != nil {
			s.log.Warn("skipping inspection, detail row fetch failed",
				"site", siteName, "inspection_id", header.ID, "error", err)
			continue
		}

		detail := s.assemble(&header, view, rows, codes)
		detail.ID = len(details)
		details = append(details, detail)
	}

	if s.metrics != nil {
		s.metrics.RecordAssembleDuration(time.Since(start).Seconds())
	}
	return details, nil
}

// assemble joins one header, its report-view row and its detail rows into an
// InspectionDetail, building the row-provenance map as it goes.
func (s *Service) assemble(header *remote.HeaderRow, view *remote.ReportRow, rows []remote.DetailRow, codes map[int64]string) InspectionDetail {
	detail := InspectionDetail{
		InspectionID: header.ID,
		NameSite:     view.NameSite,
		InspectDate:  header.InspectDate,
		InspectNo:    header.InspectNo,
		County:       view.County,
		InspectType:  view.InspectType,
		SubType:      view.SubType,
		Region:       view.Region,
		Area:         view.Area,
		Activities:   view.Activities,
		Links:        view.Links,
		StewardID:    header.StewardID,
		Steward:      view.Steward,
		StewardGuest: header.StewardGuest,
		DetailRowIDs: make(map[string]int64),
	}

	// Walk detail rows in ascending id order. Rows resolving to the reserved
	// naturalness codes feed the dedicated fields; every other row becomes one
	// provenance entry and one note fragment, value column taking priority
	// over comment.
	for i := range rows {
		row := &rows[i]
		code, known := codes[row.ObservationID]
		if !known {
			s.log.Warn("detail row references unknown observation code, skipping",
				"row_id", row.ID, "observation_id", row.ObservationID)
			continue
		}

		value, field := pickRowValue(row)

		switch code {
		case CodeNaturalness:
			detail.DetailRowIDs[code] = row.ID
			if value != "" {
				v := value
				detail.NaturalnessScore = &v
			}
		case CodeNaturalnessDetails:
			detail.DetailRowIDs[code] = row.ID
			if value != "" {
				v := value
				detail.NaturalnessDetails = &v
			}
		default:
			detail.NotesRowMapping = append(detail.NotesRowMapping, ProvenanceEntry{
				Code:  code,
				RowID: row.ID,
				Value: value,
				Field: field,
			})
			detail.Notes = append(detail.Notes, NoteEntry{Code: code, Text: value})
		}
	}

	return detail
}

// pickRowValue returns the populated column of a detail row and its name,
// value taking priority over comment.
func pickRowValue(row *remote.DetailRow) (value, field string) {
	if row.ObsValue != nil {
		return *row.ObsValue, "obs_value"
	}
	if row.ObsComm != nil {
		return *row.ObsComm, "obs_comm"
	}
	return "", "obs_value"
}
