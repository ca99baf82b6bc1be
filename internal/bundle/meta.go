// meta.go sidecar metadata for offline bundles.
package bundle

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sitewarden/sitewarden/internal/errors"
)

const (
	// StoreFileName is the embedded store file inside a bundle directory.
	StoreFileName = "data.sqlite"
	// MetaFileName is the sidecar metadata file inside a bundle directory.
	MetaFileName = "meta.json"
)

// Metadata is the sidecar record tracked per bundle.
type Metadata struct {
	LastAccessed int64 `json:"lastAccessed"` // epoch milliseconds
}

// ReadMetadata reads the sidecar metadata of the bundle directory.
func ReadMetadata(bundleDir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(bundleDir, MetaFileName))
	if err != nil {
		return nil, errors.New(err).
			Component("bundle").
			Category(errors.CategoryFileIO).
			Context("operation", "read-metadata").
			Build()
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.New(err).
			Component("bundle").
			Category(errors.CategoryFileIO).
			Context("operation", "parse-metadata").
			Build()
	}
	return &meta, nil
}

// WriteMetadata writes the sidecar metadata of the bundle directory.
func WriteMetadata(bundleDir string, meta *Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return errors.New(err).
			Component("bundle").
			Category(errors.CategoryFileIO).
			Context("operation", "marshal-metadata").
			Build()
	}

	if err := os.WriteFile(filepath.Join(bundleDir, MetaFileName), data, 0o644); err != nil {
		return errors.New(err).
			Component("bundle").
			Category(errors.CategoryFileIO).
			Context("operation", "write-metadata").
			Build()
	}
	return nil
}

// TouchMetadata refreshes the bundle's last-access timestamp.
func TouchMetadata(bundleDir string, nowMillis int64) error {
	return WriteMetadata(bundleDir, &Metadata{LastAccessed: nowMillis})
}
