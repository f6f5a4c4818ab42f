// Package instance scaffolds and enumerates content instances: the
// directories holding a spellbook.yaml, a Packs tree and the build artifacts
// of one content repository.
package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/config"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/fsutil"
	"github.com/gocortexio/spellbook/pkg/template"
)

// SamplePackName is the starter pack created inside every new instance.
const SamplePackName = "SamplePack"

// Options customizes a new instance.
type Options struct {
	// Author becomes the default pack author in the instance config.
	Author string
	// Description is used in the instance README.
	Description string
	// NoSamplePack skips the starter pack.
	NoSamplePack bool
}

// Manager creates and lists instances under one base directory.
type Manager struct {
	basePath string
}

// NewManager creates a manager rooted at basePath.
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// Create scaffolds a new instance and returns its directory. An existing
// directory of the same name is an error.
func (m *Manager) Create(name string, opts Options) (string, error) {
	instancePath := filepath.Join(m.basePath, name)
	if _, err := os.Stat(instancePath); err == nil {
		return "", errors.Wrapf(errors.ErrInstanceExists, "%s", instancePath)
	}

	cfg := config.DefaultConfig()
	if opts.Author != "" {
		cfg.Defaults.Author = opts.Author
	}

	packsDir := cfg.PacksDir(instancePath)
	if err := fsutil.EnsureDir(packsDir); err != nil {
		return "", err
	}
	if err := cfg.SaveConfig(filepath.Join(instancePath, config.DefaultFilename)); err != nil {
		return "", err
	}
	if err := writeGitignore(instancePath); err != nil {
		return "", err
	}
	if err := writeReadme(instancePath, name, opts.Description); err != nil {
		return "", err
	}

	if !opts.NoSamplePack {
		scaffolder := template.New(packsDir, cfg.Defaults)
		_, err := scaffolder.Create(SamplePackName, template.Options{
			Description: "A sample content pack to get you started.",
			SampleRule:  true,
		})
		if err != nil {
			return "", err
		}
	}

	logger.Successf("created instance %s", instancePath)
	return instancePath, nil
}

// List returns the names of instances directly under the base path. An
// instance is any directory carrying both a config file and a packs
// directory.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.basePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", m.basePath)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(m.basePath, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, config.DefaultFilename)); err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, "Packs")); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func writeGitignore(instancePath string) error {
	content := `# Build artefacts
artifacts/
*.zip

# IDE
.idea/
.vscode/
*.swp

# OS
.DS_Store
Thumbs.db
`
	path := filepath.Join(instancePath, ".gitignore")
	if err := os.WriteFile(path, []byte(content), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func writeReadme(instancePath, name, description string) error {
	if description == "" {
		description = "Cortex Platform content packs repository."
	}
	content := fmt.Sprintf(`# %s

%s

## Structure

`+"```"+`
%s/
|-- Packs/                  # Content packs
|   +-- SamplePack/         # Starter pack with examples
|-- artifacts/              # Built pack zip files
+-- spellbook.yaml          # Build configuration
`+"```"+`

## Building Packs

`+"```bash"+`
# Build all packs (run from this directory)
spellbook build --all

# Build a specific pack
spellbook build SamplePack
`+"```"+`

The built zip files appear in the artifacts/ directory.

## Creating a New Pack

`+"```bash"+`
spellbook create MyNewPack --description "My new pack"
`+"```"+`

## Releasing

`+"```bash"+`
spellbook bump-version SamplePack --minor --tag
git push origin SamplePack-v1.1.0
`+"```"+`

## References

- Cortex Platform Content Pack Format: https://xsoar.pan.dev/docs/packs/packs-format
`, name, description, name)

	path := filepath.Join(instancePath, "README.md")
	if err := os.WriteFile(path, []byte(content), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
