//go:generate mockgen -destination=./mocks/git.go -package=mocks . Git

package release

import "context"

// Git is the narrow capability surface the coordinator needs from the
// version-control working tree. Keeping it this small makes the transaction
// logic testable against a fake without a real repository.
type Git interface {
	// Stage adds everything under pathspec (relative to the repository root)
	// to the index. Implementations must never pick up changes outside the
	// pathspec.
	Stage(ctx context.Context, pathspec string) error

	// Commit creates a commit from the current index and returns its hash.
	Commit(ctx context.Context, message string) (string, error)

	// TagExists reports whether a tag with the given name exists.
	TagExists(ctx context.Context, name string) (bool, error)

	// CreateTag creates a lightweight tag pointing at the given commit, or
	// at HEAD when commit is empty.
	CreateTag(ctx context.Context, name, commit string) error

	// Tags lists all tag names in the repository.
	Tags(ctx context.Context) ([]string, error)
}
