// Package build ties discovery, validation hooks and packaging into the
// pack build pipeline. A single-pack build fails fast; a multi-pack build
// isolates failures so one broken pack never blocks the rest.
package build

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/config"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/hooks"
	"github.com/gocortexio/spellbook/pkg/pack"
	"github.com/gocortexio/spellbook/pkg/version"
)

// PackValidateScript is the optional per-pack validation override, looked up
// inside the pack directory and run after the instance-level validate hook.
const PackValidateScript = ".pack-validate.tengo"

// Options tunes a single build invocation.
type Options struct {
	// SkipValidation bypasses the validation hooks even when the
	// configuration enables them.
	SkipValidation bool
}

// Result reports the outcome of building one pack.
type Result struct {
	Pack     string
	Version  version.Version
	Artifact string
	Warnings []string
	Err      error
}

// Builder runs the build pipeline for packs of one instance.
type Builder struct {
	cfg      *config.Config
	root     string
	packager Packager
	hooks    HookRunner
}

// New creates a builder for the instance rooted at root.
func New(cfg *config.Config, root string, packager Packager, hookRunner HookRunner) *Builder {
	return &Builder{cfg: cfg, root: root, packager: packager, hooks: hookRunner}
}

// Build validates and packages a single pack.
func (b *Builder) Build(ctx context.Context, pk *pack.Pack, opts Options) (*Result, error) {
	v, err := pk.Manifest.Version()
	if err != nil {
		return nil, errors.Wrapf(err, "pack %s", pk.Name)
	}

	result := &Result{Pack: pk.Name, Version: v}
	hookCtx := hooks.HookContext{
		PackName:    pk.Name,
		PackVersion: v.String(),
		PackPath:    pk.Path,
	}

	if b.cfg.Validation.Enabled && !opts.SkipValidation {
		warnings, err := b.validate(pk, hookCtx)
		result.Warnings = warnings
		if err != nil {
			result.Err = err
			return result, err
		}
	}

	if _, err := b.hooks.Execute(hooks.PreBuild, hookCtx); err != nil {
		result.Err = err
		return result, errors.Wrapf(err, "pack %s", pk.Name)
	}

	if b.cfg.Packaging.CreateZip {
		artifact, err := b.packager.Package(ctx, pk)
		if err != nil {
			result.Err = err
			return result, errors.Wrapf(err, "pack %s", pk.Name)
		}
		result.Artifact = artifact
		hookCtx.ArtifactPath = artifact
	} else {
		logger.Debugf("zip creation disabled, skipping packaging of %s", pk.Name)
	}

	if _, err := b.hooks.Execute(hooks.PostBuild, hookCtx); err != nil {
		result.Err = err
		return result, errors.Wrapf(err, "pack %s", pk.Name)
	}

	return result, nil
}

// BuildAll builds every discovered pack. Per-pack failures are collected in
// the results; the returned error is non-nil when at least one pack failed.
func (b *Builder) BuildAll(ctx context.Context, opts Options) ([]Result, error) {
	registry, err := pack.Discover(b.cfg.PacksDir(b.root), pack.Options{Exclude: b.cfg.ExcludePacks})
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, registry.Len())
	failed := 0
	for _, pk := range registry.Packs() {
		result, err := b.Build(ctx, pk, opts)
		if err != nil {
			failed++
			logger.Errorf("build failed for %s: %v", pk.Name, err)
			if result == nil {
				result = &Result{Pack: pk.Name, Err: err}
			}
		} else {
			logger.Successf("built %s %s", result.Pack, result.Version)
		}
		results = append(results, *result)
	}

	if failed > 0 {
		return results, errors.Wrapf(ErrBuildFailed, "%d of %d", failed, registry.Len())
	}
	return results, nil
}

// BuildOne discovers the named pack and builds it.
func (b *Builder) BuildOne(ctx context.Context, name string, opts Options) (*Result, error) {
	registry, err := pack.Discover(b.cfg.PacksDir(b.root), pack.Options{Exclude: b.cfg.ExcludePacks})
	if err != nil {
		return nil, err
	}

	pk, ok := registry.Get(name)
	if !ok {
		return nil, errors.Wrapf(errors.ErrPackNotFound, "%s", name)
	}
	return b.Build(ctx, pk, opts)
}

// validate runs the instance-level validate hook followed by the pack's own
// override script, if one is present. Warnings from both are merged and
// rejected as a unit when the configuration forbids them.
func (b *Builder) validate(pk *pack.Pack, hookCtx hooks.HookContext) ([]string, error) {
	report, err := b.hooks.Execute(hooks.Validate, hookCtx)
	if err != nil {
		return reportWarnings(report), errors.Wrapf(ErrValidationFailed, "pack %s: %v", pk.Name, err)
	}
	warnings := reportWarnings(report)

	script, err := os.ReadFile(filepath.Join(pk.Path, PackValidateScript))
	if err == nil {
		packReport, err := b.hooks.ExecuteScript(hooks.Validate, string(script), hookCtx)
		warnings = append(warnings, reportWarnings(packReport)...)
		if err != nil {
			return warnings, errors.Wrapf(ErrValidationFailed, "pack %s: %v", pk.Name, err)
		}
	} else if !os.IsNotExist(err) {
		return warnings, errors.Wrapf(err, "failed to read %s for %s", PackValidateScript, pk.Name)
	}

	if len(warnings) > 0 {
		for _, w := range warnings {
			logger.Warnf("%s: %s", pk.Name, w)
		}
		if !b.cfg.Validation.AllowWarnings {
			return warnings, errors.Wrapf(ErrWarningsRejected, "pack %s: %d warning(s)", pk.Name, len(warnings))
		}
	}
	return warnings, nil
}

func reportWarnings(report *hooks.Report) []string {
	if report == nil {
		return nil
	}
	return report.Warnings
}
