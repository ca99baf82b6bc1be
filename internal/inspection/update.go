// update.go routes edited inspection fields back to the remote rows that
// produced them.
package inspection

import (
	"github.com/sitewarden/sitewarden/internal/errors"
)

// UpdateOnline writes an edited inspection back to the remote service,
// field by field. Every write is independent; the first failing write aborts
// the remaining ones, with no rollback of writes already applied.
//
// The edited record must carry its real remote InspectionID. Callers that
// lose it during an edit session get a validation error before any remote
// call is attempted.
func (s *Service) UpdateOnline(edited *InspectionDetail) error {
	if edited.InspectionID == 0 {
		return errors.Newf("edited inspection has no inspection id").
			Component("inspection").
			Category(errors.CategoryValidation).
			Context("operation", "update_online").
			Context("site", edited.NameSite).
			Build()
	}

	// Steward display name routes to the person lookup row, unconditionally:
	// no diffing against the previous value.
	if edited.StewardID != nil && edited.Steward != nil {
		if err := s.remote.UpdatePersonDisplayName(*edited.StewardID, *edited.Steward); err != nil {
			return err
		}
		s.recordWrite("person")
	}

	if edited.StewardGuest != nil {
		if err := s.remote.UpdateHeaderField(edited.InspectionID, "steward-guest", *edited.StewardGuest); err != nil {
			return err
		}
		s.recordWrite("header")
	}

	if err := s.updateNaturalness(edited); err != nil {
		return err
	}

	return s.updateNotes(edited)
}

// updateNaturalness writes the two dedicated naturalness fields. The target
// rows are re-derived by (inspection_id, observation_code) instead of trusting
// cached row ids, so the write still lands even if provenance was rebuilt.
func (s *Service) updateNaturalness(edited *InspectionDetail) error {
	if edited.NaturalnessScore == nil && edited.NaturalnessDetails == nil {
		return nil
	}

	rows, codes, err := s.fetchDetailState(edited.InspectionID)
	if err != nil {
		return err
	}

	if edited.NaturalnessScore != nil {
		if err := s.writeReservedRow(edited, rows, codes, CodeNaturalness, *edited.NaturalnessScore); err != nil {
			return err
		}
	}
	if edited.NaturalnessDetails != nil {
		if err := s.writeReservedRow(edited, rows, codes, CodeNaturalnessDetails, *edited.NaturalnessDetails); err != nil {
			return err
		}
	}
	return nil
}

// writeReservedRow writes value to the detail row of one reserved code.
func (s *Service) writeReservedRow(edited *InspectionDetail, rows []detailRowState, codes map[int64]string, code, value string) error {
	for i := range rows {
		if codes[rows[i].observationID] != code {
			continue
		}
		if err := s.remote.UpdateDetailRow(rows[i].id, rows[i].field, value); err != nil {
			return err
		}
		s.recordWrite("detail")
		return nil
	}

	s.log.Warn("no detail row found for reserved code, field not written",
		"inspection_id", edited.InspectionID, "code", code)
	return nil
}

// updateNotes routes edited free-text fragments through the provenance map.
// Each fragment consumes the first unused mapping entry with its code, in
// encounter order, so a repeated code binds its j-th fragment to the j-th row
// carrying that code. A fragment whose text still equals the value the row
// was fetched with consumes its entry without issuing a write, keeping edits
// targeted at only the rows that actually changed. Fragments without a code,
// and fragments whose code has no unused mapping entry left, are logged and
// skipped.
func (s *Service) updateNotes(edited *InspectionDetail) error {
	if len(edited.Notes) == 0 {
		return nil
	}

	mapping := edited.NotesRowMapping
	if len(mapping) == 0 {
		// Provenance was lost (e.g. the record crossed a serialization
		// boundary during the edit session); re-derive it from the remote
		// detail rows before routing.
		rebuilt, err := s.rebuildProvenance(edited.InspectionID)
		if err != nil {
			return err
		}
		mapping = rebuilt
	}

	used := make([]bool, len(mapping))
	for _, entry := range edited.Notes {
		if entry.Code == "" {
			s.log.Warn("note fragment has no observation code, skipping",
				"inspection_id", edited.InspectionID, "text", entry.Text)
			s.recordSkip("no-code")
			continue
		}
		if entry.Code == CodeNaturalness || entry.Code == CodeNaturalnessDetails {
			// Reserved codes are written through the dedicated path.
			continue
		}

		matched := false
		for i := range mapping {
			if used[i] || mapping[i].Code != entry.Code {
				continue
			}
			used[i] = true
			matched = true
			if entry.Text != mapping[i].Value {
				if err := s.remote.UpdateDetailRow(mapping[i].RowID, mapping[i].Field, entry.Text); err != nil {
					return err
				}
				s.recordWrite("detail")
			}
			break
		}

		if !matched {
			s.log.Warn("no unused provenance entry for note fragment, skipping",
				"inspection_id", edited.InspectionID, "code", entry.Code)
			s.recordSkip("no-mapping")
		}
	}

	return nil
}

// detailRowState is the per-row information needed to route a write.
type detailRowState struct {
	id            int64
	observationID int64
	field         string
}

// fetchDetailState fetches the current detail rows and code lookup of one
// inspection.
func (s *Service) fetchDetailState(inspectionID int64) ([]detailRowState, map[int64]string, error) {
	rows, err := s.remote.FetchDetailRows(inspectionID)
	if err != nil {
		return nil, nil, err
	}
	codes, err := s.remote.FetchObservationCodeLookup()
	if err != nil {
		return nil, nil, err
	}

	state := make([]detailRowState, 0, len(rows))
	for i := range rows {
		_, field := pickRowValue(&rows[i])
		state = append(state, detailRowState{
			id:            rows[i].ID,
			observationID: rows[i].ObservationID,
			field:         field,
		})
	}
	return state, codes, nil
}

// rebuildProvenance re-derives the free-text provenance map of one inspection
// from the remote detail rows, excluding the reserved codes.
func (s *Service) rebuildProvenance(inspectionID int64) ([]ProvenanceEntry, error) {
	rows, err := s.remote.FetchDetailRows(inspectionID)
	if err != nil {
		return nil, err
	}
	codes, err := s.remote.FetchObservationCodeLookup()
	if err != nil {
		return nil, err
	}

	var mapping []ProvenanceEntry
	for i := range rows {
		code, known := codes[rows[i].ObservationID]
		if !known || code == CodeNaturalness || code == CodeNaturalnessDetails {
			continue
		}
		value, field := pickRowValue(&rows[i])
		mapping = append(mapping, ProvenanceEntry{
			Code:  code,
			RowID: rows[i].ID,
			Value: value,
			Field: field,
		})
	}
	return mapping, nil
}

func (s *Service) recordWrite(target string) {
	if s.metrics != nil {
		s.metrics.RecordUpdateWrite(target)
	}
}

func (s *Service) recordSkip(reason string) {
	if s.metrics != nil {
		s.metrics.RecordUpdateSkipped(reason)
	}
}
