package diskmanager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sitewarden/sitewarden/internal/bundle"
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(t *testing.T) *conf.Settings {
	t.Helper()
	return &conf.Settings{
		Offline: conf.OfflineSettings{
			Path: t.TempDir(),
			Retention: conf.RetentionSettings{
				KeepDays: 30,
			},
		},
	}
}

// makeBundle creates a bundle directory with a store file and sidecar
// metadata carrying the given last-access timestamp.
func makeBundle(t *testing.T, root, site string, lastAccessed int64) string {
	t.Helper()
	bundleDir := filepath.Join(root, site)
	require.NoError(t, os.MkdirAll(bundleDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bundleDir, bundle.StoreFileName), []byte("stub"), 0o644))
	require.NoError(t, bundle.WriteMetadata(bundleDir, &bundle.Metadata{LastAccessed: lastAccessed}))
	return bundleDir
}

func TestResolveRetentionDays(t *testing.T) {
	settings := testSettings(t)
	settings.Offline.Retention.KeepDays = 14

	assert.Equal(t, 7, ResolveRetentionDays(settings, 7), "explicit override wins")
	assert.Equal(t, 14, ResolveRetentionDays(settings, 0), "persisted preference next")

	settings.Offline.Retention.KeepDays = 0
	assert.Equal(t, conf.DefaultRetentionDays, ResolveRetentionDays(settings, 0), "fixed default last")
}

func TestCleanupEvictionThreshold(t *testing.T) {
	settings := testSettings(t)
	root := settings.Offline.Path
	now := time.Now().UnixMilli()
	keepDays := 30
	maxAge := int64(keepDays) * MillisPerDay

	expired := makeBundle(t, root, "Expired Flats", now-maxAge-1)
	boundary := makeBundle(t, root, "Boundary Bluff", now-maxAge)
	fresh := makeBundle(t, root, "Fresh Fen", now-MillisPerDay)

	require.NoError(t, cleanupExpiredSitesAt(settings, keepDays, nil, now))

	assert.NoDirExists(t, expired, "age strictly past the window is evicted")
	assert.DirExists(t, boundary, "age exactly equal to the window is kept")
	assert.DirExists(t, fresh)
}

func TestCleanupSkipsBundleWithoutMetadata(t *testing.T) {
	settings := testSettings(t)
	root := settings.Offline.Path

	// A bundle with no readable timestamp must never be deleted.
	bundleDir := filepath.Join(root, "No Meta Marsh")
	require.NoError(t, os.MkdirAll(bundleDir, 0o755))

	now := time.Now().UnixMilli()
	require.NoError(t, cleanupExpiredSitesAt(settings, 1, nil, now))
	assert.DirExists(t, bundleDir)
}

func TestCleanupIsIdempotent(t *testing.T) {
	settings := testSettings(t)
	root := settings.Offline.Path
	now := time.Now().UnixMilli()

	makeBundle(t, root, "Expired Flats", now-100*MillisPerDay)

	require.NoError(t, cleanupExpiredSitesAt(settings, 30, nil, now))
	require.NoError(t, cleanupExpiredSitesAt(settings, 30, nil, now))
	assert.NoDirExists(t, filepath.Join(root, "Expired Flats"))
}

func TestCleanupMissingRootIsNoop(t *testing.T) {
	settings := testSettings(t)
	settings.Offline.Path = filepath.Join(settings.Offline.Path, "never-created")

	require.NoError(t, CleanupExpiredSites(settings, 0, nil))
}

func TestManualDeleteSites(t *testing.T) {
	settings := testSettings(t)
	root := settings.Offline.Path
	now := time.Now().UnixMilli()

	// Manual deletion ignores age entirely.
	target := makeBundle(t, root, "Elk Creek", now)
	keep := makeBundle(t, root, "Bear Hollow", now)

	require.NoError(t, ManualDeleteSites(settings, []string{"Elk Creek"}, nil))
	assert.NoDirExists(t, target)
	assert.DirExists(t, keep)

	// A second call on the now-absent path must not fail.
	require.NoError(t, ManualDeleteSites(settings, []string{"Elk Creek"}, nil))
}
