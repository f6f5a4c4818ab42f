package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocortexio/spellbook/pkg/config"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/manifest"
)

func TestCreatePack(t *testing.T) {
	packsDir := t.TempDir()
	defaults := config.DefaultConfig().Defaults
	defaults.Author = "GoCortex"
	defaults.Tags = []string{"network"}

	s := New(packsDir, defaults)
	path, err := s.Create("Firewall", Options{Description: "Firewall logs"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(packsDir, "Firewall"), path)

	m, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Firewall", m.Name)
	assert.Equal(t, "Firewall logs", m.Description)
	assert.Equal(t, "1.0.0", m.CurrentVersion)
	assert.Equal(t, "GoCortex", m.Author)
	assert.Equal(t, "community", m.Support)
	assert.Equal(t, []string{"network"}, m.Tags)
	assert.Equal(t, []string{"xsoar", "marketplacev2"}, m.Marketplaces)
	assert.Contains(t, m.Extra, "githubUser")

	for _, file := range []string{"README.md", ".pack-ignore", ".secrets-ignore"} {
		_, err := os.Stat(filepath.Join(path, file))
		assert.NoError(t, err, file)
	}
	for _, dir := range ContentDirectories {
		_, err := os.Stat(filepath.Join(path, dir, ".gitkeep"))
		assert.NoError(t, err, dir)
	}
}

func TestCreatePackAlreadyExists(t *testing.T) {
	packsDir := t.TempDir()
	s := New(packsDir, config.Defaults{})

	_, err := s.Create("Firewall", Options{})
	require.NoError(t, err)

	_, err = s.Create("Firewall", Options{})
	assert.ErrorIs(t, err, errors.ErrPackExists)
}

func TestCreatePackInvalidName(t *testing.T) {
	s := New(t.TempDir(), config.Defaults{})

	_, err := s.Create("", Options{})
	assert.ErrorIs(t, err, ErrInvalidPackName)

	_, err = s.Create("has space", Options{})
	assert.ErrorIs(t, err, ErrInvalidPackName)

	_, err = s.Create("nested/pack", Options{})
	assert.ErrorIs(t, err, ErrInvalidPackName)
}

func TestCreatePackCustomDirectories(t *testing.T) {
	packsDir := t.TempDir()
	s := New(packsDir, config.Defaults{})

	path, err := s.Create("Minimal", Options{Directories: []string{"ParsingRules"}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(path, "ParsingRules", ".gitkeep"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(path, "Playbooks"))
	assert.True(t, os.IsNotExist(err))
}

func TestCreatePackSampleRules(t *testing.T) {
	packsDir := t.TempDir()
	s := New(packsDir, config.Defaults{})

	path, err := s.Create("Sample", Options{SampleRule: true})
	require.NoError(t, err)

	realtime := filepath.Join(path, "CorrelationRules",
		"Sample___Multiple_Failed_Login_Attempts.yml")
	content, err := os.ReadFile(realtime)
	require.NoError(t, err)
	assert.Contains(t, string(content), "execution_mode: REAL_TIME")
	assert.Contains(t, string(content), "dataset = sample_raw")

	scheduled := filepath.Join(path, "CorrelationRules",
		"Sample___Multiple_Failed_Login_Attempts_Scheduled.yml")
	schedContent, err := os.ReadFile(scheduled)
	require.NoError(t, err)
	assert.Contains(t, string(schedContent), "execution_mode: SCHEDULED")

	// Each rule gets its own generated id.
	id := func(s string) string {
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(line, "global_rule_id:") {
				return line
			}
		}
		return ""
	}
	assert.NotEmpty(t, id(string(content)))
	assert.NotEqual(t, id(string(content)), id(string(schedContent)))
}
