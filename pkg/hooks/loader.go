package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gocortexio/spellbook/pkg/errors"
)

// HookFileExtensions lists the supported hook file extensions.
var HookFileExtensions = map[string]bool{
	".tengo": true,
}

// LoadFromDir loads every recognized hook script from a directory into the
// executor. File names select the hook type: validate.tengo, pre-build.tengo,
// post-build.tengo, pre-release.tengo, post-release.tengo.
func LoadFromDir(executor *TengoExecutor, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read hooks directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if !HookFileExtensions[ext] {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), ext))
		switch hookType {
		case Validate, PreBuild, PostBuild, PreRelease, PostRelease:
		default:
			continue
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errors.Wrapf(ErrHookLoad, "%s: %v", hookPath, err)
		}
		executor.AddScript(hookType, string(content))
	}

	return nil
}
