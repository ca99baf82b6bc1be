// model.go row structs mirroring the remote relational schema.
package remote

// SiteRow is one row of the remote site list view.
type SiteRow struct {
	NameSite    string `gorm:"column:namesite"`
	County      string `gorm:"column:county"`
	InspectDate string `gorm:"column:inspectdate"`
}

// HeaderRow is one normalized inspection header.
type HeaderRow struct {
	ID           int64   `gorm:"column:id"`
	InspectDate  string  `gorm:"column:inspectdate"`
	InspectNo    int     `gorm:"column:inspectno"`
	StewardID    *int64  `gorm:"column:steward"`
	StewardGuest *string `gorm:"column:steward-guest"`
	SiteName     string  `gorm:"column:q22-pasitename"`
}

// DetailRow is one free-form observation answer tied to a header.
// Exactly one of ObsValue/ObsComm is expected non-null per row.
type DetailRow struct {
	ID            int64   `gorm:"column:id"`
	InspectionID  int64   `gorm:"column:inspection"`
	ObservationID int64   `gorm:"column:observation"`
	ObsValue      *string `gorm:"column:obs_value"`
	ObsComm       *string `gorm:"column:obs_comm"`
}

// CodeRow maps a numeric observation-type identifier to its display code,
// e.g. "Q31_Naturalness".
type CodeRow struct {
	ID          int64  `gorm:"column:id"`
	Observation string `gorm:"column:observation"`
}

// PersonRow is one entry of the person lookup table.
type PersonRow struct {
	ID          int64  `gorm:"column:id"`
	DisplayName string `gorm:"column:displayname"`
}

// ReportRow is one row of the denormalized report view: all display fields of
// an inspection pre-joined, one row per (site, inspectdate).
type ReportRow struct {
	NameSite           string  `gorm:"column:namesite"`
	InspectDate        string  `gorm:"column:inspectdate"`
	InspectNo          int     `gorm:"column:inspectno"`
	County             string  `gorm:"column:county"`
	InspectType        string  `gorm:"column:inspect_type"`
	SubType            string  `gorm:"column:subtype"`
	Region             string  `gorm:"column:region"`
	Area               string  `gorm:"column:area"`
	Activities         string  `gorm:"column:activities"`
	Links              string  `gorm:"column:links"`
	NaturalnessScore   *string `gorm:"column:naturalness_score"`
	NaturalnessDetails *string `gorm:"column:naturalness_details"`
	Steward            *string `gorm:"column:steward"`
	StewardGuest       *string `gorm:"column:steward_guest"`
	Notes              string  `gorm:"column:notes"`
}
