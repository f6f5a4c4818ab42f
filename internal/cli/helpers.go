package cli

import (
	"path/filepath"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/archive"
	"github.com/gocortexio/spellbook/pkg/build"
	"github.com/gocortexio/spellbook/pkg/config"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/hooks"
	"github.com/gocortexio/spellbook/pkg/pack"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
)

// loadWorkspace loads the instance configuration and resolves the instance
// root, which is the directory holding the config file. A missing config
// file yields the defaults with the current directory as root.
func loadWorkspace() (*config.Config, string, error) {
	configPath := config.DefaultFilename
	if ConfigPath != nil && *ConfigPath != "" {
		configPath = *ConfigPath
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to resolve config path %s", configPath)
	}

	cfg, err := config.LoadConfig(absPath)
	if err != nil {
		return nil, "", err
	}

	level := cfg.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.InitLogger(level)

	return cfg, filepath.Dir(absPath), nil
}

// newBuilder wires the packager and hook executor for one instance.
func newBuilder(cfg *config.Config, root string) (*build.Builder, error) {
	packager := archive.New(cfg.ArtifactsDir(root), cfg.Packaging.ExcludePatterns...)

	executor := hooks.NewTengoExecutor()
	hooksDir := cfg.Validation.HooksDir
	if hooksDir == "" {
		hooksDir = "hooks"
	}
	if !filepath.IsAbs(hooksDir) {
		hooksDir = filepath.Join(root, hooksDir)
	}
	if err := hooks.LoadFromDir(executor, hooksDir); err != nil {
		return nil, err
	}

	return build.New(cfg, root, packager, executor), nil
}

// findPack discovers the instance's packs and returns the named one.
func findPack(cfg *config.Config, root, name string) (*pack.Pack, error) {
	registry, err := pack.Discover(cfg.PacksDir(root), pack.Options{Exclude: cfg.ExcludePacks})
	if err != nil {
		return nil, err
	}
	pk, ok := registry.Get(name)
	if !ok {
		return nil, errors.Wrapf(errors.ErrPackNotFound, "%s", name)
	}
	return pk, nil
}
