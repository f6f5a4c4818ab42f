//go:build integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocortexio/spellbook/pkg/manifest"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestLifecycle_InitCreateBuildBump(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	// init scaffolds a complete instance
	require.NoError(t, runCLI(t, "init", "content", "--author", "ACME", "--no-sample-pack"))
	instanceDir := filepath.Join(base, "content")
	_, err := os.Stat(filepath.Join(instanceDir, "spellbook.yaml"))
	require.NoError(t, err)

	require.NoError(t, runCLI(t, "instances"))

	t.Chdir(instanceDir)

	// create a pack seeded from the instance defaults
	require.NoError(t, runCLI(t, "create", "Firewall", "-d", "Firewall logs"))
	packDir := filepath.Join(instanceDir, "Packs", "Firewall")
	m, err := manifest.Read(packDir)
	require.NoError(t, err)
	assert.Equal(t, "ACME", m.Author)
	assert.Equal(t, "1.0.0", m.CurrentVersion)

	require.NoError(t, runCLI(t, "list"))
	require.NoError(t, runCLI(t, "version", "Firewall"))

	// bump rewrites the manifest and creates release notes
	require.NoError(t, runCLI(t, "bump-version", "Firewall", "--minor"))
	m, err = manifest.Read(packDir)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", m.CurrentVersion)
	_, err = os.Stat(filepath.Join(packDir, "ReleaseNotes", "1_1_0.md"))
	assert.NoError(t, err)

	// build produces the zip artifact
	require.NoError(t, runCLI(t, "build", "Firewall"))
	_, err = os.Stat(filepath.Join(instanceDir, "artifacts", "Firewall-v1.1.0.zip"))
	assert.NoError(t, err)

	// regression requires --force
	assert.Error(t, runCLI(t, "set-version", "Firewall", "0.9.0"))
	require.NoError(t, runCLI(t, "set-version", "Firewall", "0.9.0", "--force"))
	m, err = manifest.Read(packDir)
	require.NoError(t, err)
	assert.Equal(t, "0.9.0", m.CurrentVersion)
}

func TestBuildRequiresTargetSelection(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	require.NoError(t, runCLI(t, "init", "content", "--no-sample-pack"))
	t.Chdir(filepath.Join(base, "content"))

	assert.Error(t, runCLI(t, "build"))
	assert.Error(t, runCLI(t, "build", "SomePack", "--all"))
}

func TestUnknownPackFails(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	require.NoError(t, runCLI(t, "init", "content", "--no-sample-pack"))
	t.Chdir(filepath.Join(base, "content"))

	assert.Error(t, runCLI(t, "version", "Ghost"))
	assert.Error(t, runCLI(t, "bump-version", "Ghost"))
}
