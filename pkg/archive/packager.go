// Package archive assembles a pack's file tree into a reproducible zip
// artifact. Entry order is lexicographic by relative path so two runs over
// identical content produce byte-identical archives.
package archive

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mholt/archives"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/fsutil"
	"github.com/gocortexio/spellbook/pkg/pack"
	"github.com/gocortexio/spellbook/pkg/version"
)

// DefaultExcludes matches version-control metadata, editor temp files and
// previously built artifacts.
var DefaultExcludes = []string{
	".git",
	".DS_Store",
	"Thumbs.db",
	"*.swp",
	".idea",
	".vscode",
	"*.zip",
}

// Packager writes pack artifacts into an artifacts directory.
type Packager struct {
	artifactsDir string
	excludes     []string
}

// New creates a packager for the given artifacts directory. The exclusion
// patterns extend DefaultExcludes; the artifacts directory itself is always
// excluded in case it is nested inside a pack.
func New(artifactsDir string, excludes ...string) *Packager {
	combined := make([]string, 0, len(DefaultExcludes)+len(excludes))
	combined = append(combined, DefaultExcludes...)
	combined = append(combined, excludes...)
	return &Packager{artifactsDir: artifactsDir, excludes: combined}
}

// ArtifactName returns the deterministic artifact file name for a pack version.
func ArtifactName(packName string, v version.Version) string {
	return fmt.Sprintf("%s-v%s.zip", packName, v)
}

// Package archives the pack's file tree under the artifacts directory and
// returns the artifact path. A rebuild with the same version overwrites the
// previous artifact; unrelated artifacts are never touched.
func (p *Packager) Package(ctx context.Context, pk *pack.Pack) (string, error) {
	v, err := pk.Manifest.Version()
	if err != nil {
		return "", errors.Wrapf(err, "pack %s", pk.Name)
	}

	files, err := p.collectFiles(pk)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errors.Wrapf(ErrEmptyPack, "%s", pk.Path)
	}

	if err := fsutil.EnsureDir(p.artifactsDir); err != nil {
		return "", NewFileOperationError("create directory", p.artifactsDir, err)
	}

	artifactPath := filepath.Join(p.artifactsDir, ArtifactName(pk.Name, v))
	out, err := os.Create(artifactPath)
	if err != nil {
		return "", NewFileOperationError("create", artifactPath, err)
	}
	defer func() {
		_ = out.Sync()
		_ = out.Close()
	}()

	format := archives.Zip{}
	if err := format.Archive(ctx, out, files); err != nil {
		return "", NewFileOperationError("write", artifactPath, err)
	}

	logger.Debugf("packaged %d files into %s", len(files), artifactPath)
	return artifactPath, nil
}

// collectFiles walks the pack tree, applies the exclusion filter and returns
// archive entries sorted lexicographically by archive path. Entries are rooted
// under the pack's directory name so extraction reproduces the pack directory.
func (p *Packager) collectFiles(pk *pack.Pack) ([]archives.FileInfo, error) {
	absArtifacts, _ := filepath.Abs(p.artifactsDir)
	absRoot, err := filepath.Abs(pk.Path)
	if err != nil {
		return nil, NewFileOperationError("resolve", pk.Path, err)
	}

	var files []archives.FileInfo
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return NewFileOperationError("read", path, err)
		}
		if path == absRoot {
			return nil
		}
		if d.IsDir() {
			if path == absArtifacts || p.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if p.excluded(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return NewFileOperationError("resolve", path, err)
		}
		info, err := d.Info()
		if err != nil {
			return NewFileOperationError("stat", path, err)
		}

		filePath := path
		files = append(files, archives.FileInfo{
			FileInfo:      info,
			NameInArchive: pk.Name + "/" + filepath.ToSlash(rel),
			Open: func() (fs.File, error) {
				return os.Open(filePath)
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].NameInArchive < files[j].NameInArchive
	})
	return files, nil
}

// excluded matches a file or directory base name against the exclusion
// patterns. Patterns without metacharacters compare exactly.
func (p *Packager) excluded(name string) bool {
	for _, pattern := range p.excludes {
		if strings.ContainsAny(pattern, "*?[") {
			if ok, _ := filepath.Match(pattern, name); ok {
				return true
			}
			continue
		}
		if name == pattern {
			return true
		}
	}
	return false
}
