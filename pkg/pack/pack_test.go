package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocortexio/spellbook/pkg/manifest"
)

func createPack(t *testing.T, packsDir, name, metadata string) {
	t.Helper()
	dir := filepath.Join(packsDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.Filename), []byte(metadata), 0o644))
}

func validMetadata(name, version string) string {
	return fmt.Sprintf(`{"name": %q, "currentVersion": %q, "support": "community"}`, name, version)
}

func TestDiscover(t *testing.T) {
	packsDir := t.TempDir()
	createPack(t, packsDir, "Alpha", validMetadata("Alpha", "1.0.0"))
	createPack(t, packsDir, "Beta", validMetadata("Beta", "2.1.0"))

	// A directory without a manifest is not a pack.
	require.NoError(t, os.MkdirAll(filepath.Join(packsDir, "NotAPack"), 0o755))

	registry, err := Discover(packsDir, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, registry.Names())
	assert.Empty(t, registry.Warnings())

	alpha, ok := registry.Get("Alpha")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", alpha.Manifest.CurrentVersion)
	assert.Equal(t, filepath.Join(packsDir, "Alpha"), alpha.Path)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.ErrorIs(t, err, ErrPacksDirMissing)
}

func TestDiscoverIsolatesMalformedManifest(t *testing.T) {
	packsDir := t.TempDir()
	createPack(t, packsDir, "Broken", "{not json")
	createPack(t, packsDir, "Good", validMetadata("Good", "1.0.0"))

	registry, err := Discover(packsDir, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Good"}, registry.Names())
	require.Len(t, registry.Warnings(), 1)
	warning := registry.Warnings()[0]
	assert.Equal(t, "Broken", warning.Pack)
	assert.ErrorIs(t, warning.Err, manifest.ErrMalformed)
}

func TestDiscoverExclusions(t *testing.T) {
	packsDir := t.TempDir()
	createPack(t, packsDir, "Kept", validMetadata("Kept", "1.0.0"))
	createPack(t, packsDir, "Skipped", validMetadata("Skipped", "1.0.0"))

	registry, err := Discover(packsDir, Options{Exclude: []string{"Skipped"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kept"}, registry.Names())
}

func TestDiscoverDuplicateNames(t *testing.T) {
	packsDir := t.TempDir()
	createPack(t, packsDir, "sample", validMetadata("sample", "1.0.0"))
	createPack(t, packsDir, "Sample", validMetadata("Sample", "1.0.0"))

	entries, err := os.ReadDir(packsDir)
	require.NoError(t, err)
	if len(entries) < 2 {
		t.Skip("filesystem is case-insensitive")
	}

	_, err = Discover(packsDir, Options{})
	assert.ErrorIs(t, err, ErrDuplicatePack)
}

func TestRegistryIsRebuiltFresh(t *testing.T) {
	packsDir := t.TempDir()
	createPack(t, packsDir, "Alpha", validMetadata("Alpha", "1.0.0"))

	first, err := Discover(packsDir, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, first.Len())

	createPack(t, packsDir, "Beta", validMetadata("Beta", "1.0.0"))

	second, err := Discover(packsDir, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Len())
	// The earlier registry is untouched by later file-system changes.
	assert.Equal(t, 1, first.Len())
}
