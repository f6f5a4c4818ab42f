package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifestFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte(content), 0o644))
}

func TestReadMissing(t *testing.T) {
	_, err := Read(t.TempDir())
	assert.ErrorIs(t, err, ErrMissing)
}

func TestReadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "{not json")

	_, err := Read(dir)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadEmpty(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "  \n")

	_, err := Read(dir)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadBadDependencyConstraint(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, `{
  "name": "SamplePack",
  "currentVersion": "1.0.0",
  "dependencies": {"CommonTypes": ">>broken"}
}`)

	_, err := Read(dir)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadWithBOM(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "\xef\xbb\xbf{\"name\": \"SamplePack\", \"currentVersion\": \"1.2.3\"}")

	m, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "SamplePack", m.Name)

	v, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())
}

func TestRoundTripPreservesUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, `{
  "name": "SamplePack",
  "currentVersion": "1.2.3",
  "author": "Example Org",
  "support": "community",
  "marketplaces": ["xsoar", "marketplacev2"],
  "githubUser": ["someone"],
  "serverMinVersion": "6.0.0"
}`)

	m, err := Read(dir)
	require.NoError(t, err)

	// Only touch the field the operation owns.
	m.CurrentVersion = "1.3.0"
	require.NoError(t, Write(dir, m))

	raw, err := os.ReadFile(filepath.Join(dir, Filename))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.JSONEq(t, `"1.3.0"`, string(decoded["currentVersion"]))
	assert.JSONEq(t, `["someone"]`, string(decoded["githubUser"]))
	assert.JSONEq(t, `"6.0.0"`, string(decoded["serverMinVersion"]))
	assert.JSONEq(t, `["xsoar", "marketplacev2"]`, string(decoded["marketplaces"]))
}

func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{
		Name:           "SamplePack",
		Description:    "A sample pack",
		Support:        "community",
		CurrentVersion: "1.0.0",
		Author:         "Example Org",
		Marketplaces:   []string{"xsoar"},
		Dependencies:   map[string]string{"CommonTypes": ">= 1.0.0"},
	}
	require.NoError(t, Write(dir, m))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.CurrentVersion, got.CurrentVersion)
	assert.Equal(t, m.Dependencies, got.Dependencies)

	// Output ends with a newline like the rest of the repo's metadata files.
	raw, err := os.ReadFile(filepath.Join(dir, Filename))
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), raw[len(raw)-1])
}
