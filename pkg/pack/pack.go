// Package pack discovers content packs under an instance's packs directory
// and exposes them as an in-memory registry. The registry is rebuilt on every
// invocation; the file system is the only source of truth.
package pack

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/manifest"
)

// Pack is a named, independently versioned content unit.
type Pack struct {
	// Name matches the pack's directory name and is unique per instance.
	Name string
	// Path is the pack's root directory. Ownership is exclusive.
	Path string
	// Manifest is the parsed metadata record.
	Manifest *manifest.Manifest
}

// Warning records a pack excluded from discovery without failing it.
type Warning struct {
	Pack string
	Path string
	Err  error
}

// Registry maps pack names to packs in directory enumeration order.
type Registry struct {
	names    []string
	packs    map[string]*Pack
	warnings []Warning
}

// Get returns the pack with the given name.
func (r *Registry) Get(name string) (*Pack, bool) {
	p, ok := r.packs[name]
	return p, ok
}

// Names returns pack names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Packs returns all packs in insertion order.
func (r *Registry) Packs() []*Pack {
	out := make([]*Pack, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.packs[name])
	}
	return out
}

// Warnings returns the discovery warnings for excluded packs.
func (r *Registry) Warnings() []Warning {
	return r.warnings
}

// Len returns the number of discovered packs.
func (r *Registry) Len() int {
	return len(r.names)
}

func (r *Registry) add(p *Pack) {
	r.names = append(r.names, p.Name)
	r.packs[p.Name] = p
}

// Options control discovery.
type Options struct {
	// Exclude lists pack directory names to skip.
	Exclude []string
}

// Discover enumerates the immediate subdirectories of packsDir and builds a
// fresh registry. A candidate is any subdirectory carrying a manifest file.
// A candidate whose manifest fails to parse is excluded with a warning so one
// malformed pack never blocks the rest of the instance; two candidates whose
// names collide case-insensitively are a hard error.
func Discover(packsDir string, opts Options) (*Registry, error) {
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrPacksDirMissing, "%s", packsDir)
		}
		return nil, errors.Wrapf(err, "failed to read packs directory %s", packsDir)
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	registry := &Registry{packs: make(map[string]*Pack)}
	seen := make(map[string]string)

	for _, entry := range entries {
		if !entry.IsDir() || excluded[entry.Name()] {
			continue
		}
		name := entry.Name()
		path := filepath.Join(packsDir, name)

		if _, err := os.Stat(manifest.Path(path)); err != nil {
			// Not a pack, just a directory living under Packs/.
			continue
		}

		folded := strings.ToLower(name)
		if other, ok := seen[folded]; ok {
			return nil, errors.Wrapf(ErrDuplicatePack, "%q collides with %q", name, other)
		}
		seen[folded] = name

		m, err := manifest.Read(path)
		if err != nil {
			logger.Warn("excluding pack with unreadable manifest",
				logger.Fields{"pack": name, "error": err.Error()})
			registry.warnings = append(registry.warnings, Warning{Pack: name, Path: path, Err: err})
			continue
		}

		registry.add(&Pack{Name: name, Path: path, Manifest: m})
	}

	return registry, nil
}
