// model.go data model for the per-site offline store.
package bundle

// Inspection is one flat inspection row in a site's offline store, copied
// from the remote report view. No provenance columns are kept: offline data
// is read-only for editing purposes.
type Inspection struct {
	ID                 uint `gorm:"primaryKey"`
	NameSite           string
	InspectDate        string `gorm:"index:idx_inspections_inspectdate"`
	InspectNo          int
	County             string
	InspectType        string
	SubType            string
	Region             string
	Area               string
	Activities         string
	Links              string
	NaturalnessScore   *string
	NaturalnessDetails *string
	Steward            *string
	StewardGuest       *string
	Notes              string
}
