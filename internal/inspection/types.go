// types.go data model for assembled inspection records.
package inspection

// Reserved observation codes surfaced as dedicated fields instead of free
// text. Fixed by remote convention, not configuration.
const (
	CodeNaturalness        = "Q31_Naturalness"
	CodeNaturalnessDetails = "Q31_NaturalnessDetails"
)

// SiteSummary is one entry of the site list. ID is the position in the list
// of the fetch that produced it and carries no remote meaning; NameSite is
// the key callers must use.
type SiteSummary struct {
	ID          int
	NameSite    string
	County      string
	InspectDate string
}

// NoteEntry is one free-text observation fragment of an inspection's notes,
// in display order. Code matches the Q<number> pattern; entries with an empty
// Code did not match the pattern and cannot be routed back to a remote row.
type NoteEntry struct {
	Code string
	Text string
}

// ProvenanceEntry links one displayed note fragment back to the detail row it
// was reconstructed from. Field records which column held the text.
type ProvenanceEntry struct {
	Code  string
	RowID int64
	Value string
	Field string // "obs_value" or "obs_comm"
}

// InspectionDetail is one inspection instance denormalized for display.
//
// InspectionID is the real remote header id and must survive any edit
// session; remote writes are keyed by it. ID is the position in the fetched
// list and must never be sent back to the remote service.
type InspectionDetail struct {
	ID           int
	InspectionID int64

	NameSite    string
	InspectDate string
	InspectNo   int
	County      string
	InspectType string
	SubType     string
	Region      string
	Area        string
	Activities  string
	Links       string

	NaturalnessScore   *string
	NaturalnessDetails *string

	StewardID    *int64
	Steward      *string
	StewardGuest *string

	Notes []NoteEntry

	// NotesRowMapping is the ordered row-provenance map for Notes. Entries for
	// the two reserved naturalness codes are excluded; their row ids live in
	// DetailRowIDs instead.
	NotesRowMapping []ProvenanceEntry
	DetailRowIDs    map[string]int64
}

// DownloadedSite describes one offline bundle for the "downloaded" badges.
type DownloadedSite struct {
	NameSite     string
	County       string
	InspectDate  string
	LastAccessed int64 // epoch milliseconds
}
