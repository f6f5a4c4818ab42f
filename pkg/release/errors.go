package release

import "fmt"

// Common release errors.
var (
	// ErrStagingFailed is returned when the pack's files cannot be staged
	// into the version-control index.
	ErrStagingFailed = fmt.Errorf("failed to stage pack files")

	// ErrCommitFailed is returned when the release commit cannot be created,
	// typically because no committer identity is configured. The manifest
	// change already on disk and in the index is left intact for manual
	// recovery.
	ErrCommitFailed = fmt.Errorf("failed to create release commit")

	// ErrTagExists is returned when the release tag already exists. Version
	// collisions are surfaced, never silently overwritten.
	ErrTagExists = fmt.Errorf("tag already exists (choose a different version or delete the tag)")

	// ErrNoRepository is returned when no git working tree encloses the
	// content instance.
	ErrNoRepository = fmt.Errorf("not inside a git repository")
)
