// Package config loads and validates the per-instance spellbook.yaml file.
// A missing file is not an error: every setting has a default, so a bare
// instance with nothing but a Packs directory is fully usable.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/fsutil"
)

// DefaultFilename is the configuration file name at the instance root.
const DefaultFilename = "spellbook.yaml"

// YAMLIndent is the number of spaces to use for YAML indentation.
const YAMLIndent = 2

// Config represents a content instance's configuration.
type Config struct {
	// PacksDirectory is the directory holding packs, relative to the
	// instance root.
	PacksDirectory string `yaml:"packs_directory"`

	// ArtifactsDirectory receives built archives, relative to the
	// instance root.
	ArtifactsDirectory string `yaml:"artifacts_directory"`

	// Defaults seed the metadata of newly scaffolded packs.
	Defaults Defaults `yaml:"defaults"`

	// ExcludePacks lists pack names skipped during discovery and builds.
	ExcludePacks []string `yaml:"exclude_packs"`

	Validation ValidationConfig `yaml:"validation"`
	Packaging  PackagingConfig  `yaml:"packaging"`

	LogLevel string `yaml:"log_level"`
}

// Defaults holds the manifest values applied to newly created packs.
type Defaults struct {
	Support      string   `yaml:"support"`
	Author       string   `yaml:"author"`
	URL          string   `yaml:"url"`
	Email        string   `yaml:"email"`
	Categories   []string `yaml:"categories"`
	Tags         []string `yaml:"tags"`
	UseCases     []string `yaml:"useCases"`
	Keywords     []string `yaml:"keywords"`
	Marketplaces []string `yaml:"marketplaces"`
}

// ValidationConfig controls the hook-based validation pass before packaging.
type ValidationConfig struct {
	Enabled       bool   `yaml:"enabled"`
	AllowWarnings bool   `yaml:"allow_warnings"`
	HooksDir      string `yaml:"hooks_dir,omitempty"`
}

// PackagingConfig controls archive creation.
type PackagingConfig struct {
	CreateZip       bool     `yaml:"create_zip"`
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PacksDirectory:     "Packs",
		ArtifactsDirectory: "artifacts",
		Defaults: Defaults{
			Support:      "community",
			Author:       "Your Organisation",
			Marketplaces: []string{"xsoar", "marketplacev2"},
		},
		Validation: ValidationConfig{
			Enabled:       true,
			AllowWarnings: true,
		},
		Packaging: PackagingConfig{
			CreateZip: true,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve config path %s", path)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader. Decoding starts
// from the defaults, so settings absent from the file keep their default
// values, including nested booleans.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration to a file, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve config path %s", path)
	}
	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return err
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeDefault)
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if c.PacksDirectory == "" {
		return errors.Wrap(errors.ErrConfigValidation, "packs_directory must not be empty")
	}
	if c.ArtifactsDirectory == "" {
		return errors.Wrap(errors.ErrConfigValidation, "artifacts_directory must not be empty")
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return errors.Wrap(errors.ErrConfigValidation,
			fmt.Sprintf("invalid log_level %q (debug, info, warn, error)", c.LogLevel))
	}
	return nil
}

// PacksDir resolves the packs directory against the instance root.
func (c *Config) PacksDir(root string) string {
	if filepath.IsAbs(c.PacksDirectory) {
		return c.PacksDirectory
	}
	return filepath.Join(root, c.PacksDirectory)
}

// ArtifactsDir resolves the artifacts directory against the instance root.
func (c *Config) ArtifactsDir(root string) string {
	if filepath.IsAbs(c.ArtifactsDirectory) {
		return c.ArtifactsDirectory
	}
	return filepath.Join(root, c.ArtifactsDirectory)
}
