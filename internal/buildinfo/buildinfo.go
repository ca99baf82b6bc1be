// Package buildinfo holds build-time metadata injected via ldflags.
package buildinfo

// Set at build time with
// -ldflags "-X .../internal/buildinfo.Version=... -X .../internal/buildinfo.BuildDate=...".
var (
	Version   = "unknown"
	BuildDate = "unknown"
)

// String returns the version line shown by the --version flag.
func String() string {
	return Version + " (built " + BuildDate + ")"
}
