// Package release orchestrates the multi-step version change of a single
// pack: manifest update, staging, commit and tag creation. It is the only
// component allowed to combine manifest writes with version-control mutation,
// which keeps the one place where cross-resource consistency matters
// auditable.
//
// Concurrent invocations against the same working tree are not coordinated
// here; at most one lifecycle operation per working tree at a time is an
// external precondition (CI job serialization or equivalent).
package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocortexio/spellbook/internal/logger"
	"github.com/gocortexio/spellbook/pkg/errors"
	"github.com/gocortexio/spellbook/pkg/fsutil"
	"github.com/gocortexio/spellbook/pkg/manifest"
	"github.com/gocortexio/spellbook/pkg/pack"
	"github.com/gocortexio/spellbook/pkg/version"
)

// Request describes a single version-change transaction.
type Request struct {
	Pack *pack.Pack

	// Kind selects the bump when Target is nil.
	Kind version.Kind
	// Target requests an explicit version instead of a bump.
	Target *version.Version
	// Force bypasses the regression check for explicit targets.
	Force bool

	// Tag requests the stage/commit/tag sequence after the manifest write.
	Tag bool
	// Message overrides the default commit message.
	Message string

	// ReleaseNotes creates a release-notes skeleton for the new version.
	ReleaseNotes bool
}

// Coordinator drives release transactions. The Git capability may be nil when
// no request ever asks for tagging.
type Coordinator struct {
	git Git
}

// NewCoordinator creates a coordinator using the given version-control
// capability.
func NewCoordinator(git Git) *Coordinator {
	return &Coordinator{git: git}
}

// transaction tracks one in-flight release. Each transition method moves it
// exactly one state forward or into StateFailed.
type transaction struct {
	state    State
	req      Request
	manifest *manifest.Manifest
	record   *Record
}

func (t *transaction) fail(err error) error {
	reached := t.state
	t.state = StateFailed
	return errors.Wrapf(err, "pack %s (stage %s)", t.req.Pack.Name, reached)
}

// Run executes the transaction. Without tagging the machine short-circuits
// from ManifestWritten to Done; with tagging it walks Staged, Committed and
// Tagged. A failure leaves everything already on disk or committed in place
// for manual recovery and reports the stage reached.
func (c *Coordinator) Run(ctx context.Context, req Request) (*Record, error) {
	if req.Pack == nil {
		return nil, fmt.Errorf("release request has no pack")
	}

	t := &transaction{state: StateIdle, req: req, record: &Record{Pack: req.Pack.Name}}

	if err := c.computeVersion(t); err != nil {
		return t.record, err
	}
	if err := c.writeManifest(t); err != nil {
		return t.record, err
	}

	if !req.Tag {
		t.state = StateDone
		logger.Debugf("release of %s finished without tagging", req.Pack.Name)
		return t.record, nil
	}

	if err := c.stage(ctx, t); err != nil {
		return t.record, err
	}
	if err := c.commit(ctx, t); err != nil {
		return t.record, err
	}
	if err := c.tag(ctx, t); err != nil {
		return t.record, err
	}

	t.state = StateDone
	return t.record, nil
}

// computeVersion is the Idle -> VersionComputed edge. The current version is
// always re-read from disk, so re-running the same bump advances from the
// post-bump value instead of double-bumping in memory.
func (c *Coordinator) computeVersion(t *transaction) error {
	m, err := manifest.Read(t.req.Pack.Path)
	if err != nil {
		return t.fail(err)
	}
	current, err := m.Version()
	if err != nil {
		return t.fail(err)
	}

	var next version.Version
	if t.req.Target != nil {
		next, err = version.Set(current, *t.req.Target, t.req.Force)
	} else {
		next = version.Bump(current, t.req.Kind)
	}
	if err != nil {
		return t.fail(err)
	}

	t.manifest = m
	t.record.OldVersion = current
	t.record.NewVersion = next
	t.state = StateVersionComputed
	return nil
}

// writeManifest is the VersionComputed -> ManifestWritten edge. The write is
// atomic, so a failure here leaves no partial state on disk and the computed
// version is simply discarded.
func (c *Coordinator) writeManifest(t *transaction) error {
	t.manifest.CurrentVersion = t.record.NewVersion.String()
	if err := manifest.Write(t.req.Pack.Path, t.manifest); err != nil {
		return t.fail(err)
	}

	if t.req.ReleaseNotes {
		if err := writeReleaseNotes(t.req.Pack, t.record.NewVersion); err != nil {
			return t.fail(err)
		}
	}

	t.state = StateManifestWritten
	return nil
}

// stage is the ManifestWritten -> Staged edge, scoped strictly to the pack's
// directory. The tag name is checked up front so a doomed transaction stops
// before creating a commit; the manifest change stays on disk either way.
func (c *Coordinator) stage(ctx context.Context, t *transaction) error {
	if c.git == nil {
		return t.fail(errors.Wrap(ErrNoRepository, "tagging requested"))
	}

	tagName := version.TagName(t.req.Pack.Name, t.record.NewVersion)
	exists, err := c.git.TagExists(ctx, tagName)
	if err != nil {
		return t.fail(err)
	}
	if exists {
		return t.fail(errors.Wrapf(ErrTagExists, "%s", tagName))
	}

	if err := c.git.Stage(ctx, t.req.Pack.Path); err != nil {
		return t.fail(err)
	}
	t.state = StateStaged
	return nil
}

// commit is the Staged -> Committed edge. On failure the staged manifest
// change is left intact: reverting a successful write after a failed commit
// risks losing legitimate edits already in the index.
func (c *Coordinator) commit(ctx context.Context, t *transaction) error {
	message := t.req.Message
	if message == "" {
		message = fmt.Sprintf("Bump %s to %s", t.req.Pack.Name, t.record.NewVersion)
	}

	hash, err := c.git.Commit(ctx, message)
	if err != nil {
		return t.fail(err)
	}
	t.record.Commit = hash
	t.state = StateCommitted
	return nil
}

// tag is the Committed -> Tagged edge. An existing tag is an error, never
// silently overwritten.
func (c *Coordinator) tag(ctx context.Context, t *transaction) error {
	tagName := version.TagName(t.req.Pack.Name, t.record.NewVersion)
	if err := c.git.CreateTag(ctx, tagName, t.record.Commit); err != nil {
		return t.fail(err)
	}
	t.record.Tag = tagName
	t.state = StateTagged
	return nil
}

// writeReleaseNotes creates the ReleaseNotes/<X_Y_Z>.md skeleton for a new
// version. An existing file is never overwritten.
func writeReleaseNotes(pk *pack.Pack, v version.Version) error {
	notesDir := filepath.Join(pk.Path, "ReleaseNotes")
	if err := fsutil.EnsureDir(notesDir); err != nil {
		return errors.Wrapf(err, "failed to create release notes directory for %s", pk.Name)
	}

	notesPath := filepath.Join(notesDir, strings.ReplaceAll(v.String(), ".", "_")+".md")
	if _, err := os.Stat(notesPath); err == nil {
		return nil
	}

	content := fmt.Sprintf(`#### Parsing Rules

##### %[1]s Parsing Rule

- (Describe parsing rule changes here)

#### Modeling Rules

##### %[1]s Modeling Rule

- (Describe modelling rule changes here)

#### Correlation Rules

##### %[1]s - (Rule Name)

- (Describe correlation rule changes here)
`, pk.Name)

	if err := os.WriteFile(notesPath, []byte(content), fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write release notes %s", notesPath)
	}
	return nil
}
