package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocortexio/spellbook/pkg/manifest"
	"github.com/gocortexio/spellbook/pkg/pack"
)

func testPack(t *testing.T, name, ver string, files map[string]string) *pack.Pack {
	t.Helper()
	root := filepath.Join(t.TempDir(), name)
	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	require.NoError(t, os.MkdirAll(root, 0o755))
	return &pack.Pack{
		Name: name,
		Path: root,
		Manifest: &manifest.Manifest{
			Name:           name,
			CurrentVersion: ver,
		},
	}
}

func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestPackageNamingAndContent(t *testing.T) {
	pk := testPack(t, "SamplePack", "1.3.0", map[string]string{
		"pack_metadata.json": `{"name": "SamplePack"}`,
		"README.md":          "# SamplePack",
		"ParsingRules/SamplePackParsingRule/r.yml": "id: r",
	})
	artifactsDir := t.TempDir()

	path, err := New(artifactsDir).Package(context.Background(), pk)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(artifactsDir, "SamplePack-v1.3.0.zip"), path)

	names := archiveNames(t, path)
	assert.Contains(t, names, "SamplePack/pack_metadata.json")
	assert.Contains(t, names, "SamplePack/README.md")
	assert.Contains(t, names, "SamplePack/ParsingRules/SamplePackParsingRule/r.yml")
}

func TestPackageDeterministic(t *testing.T) {
	pk := testPack(t, "SamplePack", "1.0.0", map[string]string{
		"b.txt":       "bravo",
		"a.txt":       "alpha",
		"sub/c.txt":   "charlie",
		"sub/d.txt":   "delta",
		"z/nested.md": "nested",
	})
	artifactsDir := t.TempDir()
	packager := New(artifactsDir)

	first, err := packager.Package(context.Background(), pk)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first)
	require.NoError(t, err)

	second, err := packager.Package(context.Background(), pk)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstBytes, secondBytes)

	// Entries are ordered lexicographically by archive path.
	names := archiveNames(t, first)
	assert.Equal(t, []string{
		"SamplePack/a.txt",
		"SamplePack/b.txt",
		"SamplePack/sub/c.txt",
		"SamplePack/sub/d.txt",
		"SamplePack/z/nested.md",
	}, names)
}

func TestPackageExclusions(t *testing.T) {
	pk := testPack(t, "SamplePack", "1.0.0", map[string]string{
		"keep.txt":         "keep",
		".git/config":      "git",
		".DS_Store":        "junk",
		"editor.swp":       "swap",
		"old-artifact.zip": "stale",
	})
	artifactsDir := t.TempDir()

	path, err := New(artifactsDir).Package(context.Background(), pk)
	require.NoError(t, err)

	assert.Equal(t, []string{"SamplePack/keep.txt"}, archiveNames(t, path))
}

func TestPackageNestedArtifactsDirExcluded(t *testing.T) {
	pk := testPack(t, "SamplePack", "1.0.0", map[string]string{
		"keep.txt": "keep",
	})
	// Artifacts directory nested inside the pack itself.
	artifactsDir := filepath.Join(pk.Path, "artifacts")
	require.NoError(t, os.MkdirAll(artifactsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(artifactsDir, "stale.txt"), []byte("x"), 0o644))

	path, err := New(artifactsDir).Package(context.Background(), pk)
	require.NoError(t, err)

	assert.Equal(t, []string{"SamplePack/keep.txt"}, archiveNames(t, path))
}

func TestPackageEmptyPack(t *testing.T) {
	pk := testPack(t, "EmptyPack", "1.0.0", nil)

	_, err := New(t.TempDir()).Package(context.Background(), pk)
	assert.ErrorIs(t, err, ErrEmptyPack)
}

func TestPackageOverwritesSameVersion(t *testing.T) {
	pk := testPack(t, "SamplePack", "1.0.0", map[string]string{"a.txt": "one"})
	artifactsDir := t.TempDir()
	packager := New(artifactsDir)

	// An unrelated artifact must survive the rebuild.
	unrelated := filepath.Join(artifactsDir, "OtherPack-v2.0.0.zip")
	require.NoError(t, os.WriteFile(unrelated, []byte("unrelated"), 0o644))

	_, err := packager.Package(context.Background(), pk)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(pk.Path, "a.txt"), []byte("two"), 0o644))
	path, err := packager.Package(context.Background(), pk)
	require.NoError(t, err)

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	require.Len(t, r.File, 1)

	content, err := os.ReadFile(unrelated)
	require.NoError(t, err)
	assert.Equal(t, "unrelated", string(content))
}
