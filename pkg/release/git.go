package release

import (
	"context"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gocortexio/spellbook/pkg/errors"
)

// gitRepo implements Git over a local working tree using go-git.
type gitRepo struct {
	repo *gogit.Repository
	root string
}

// OpenRepository locates the repository enclosing startPath, walking upward
// the way the git CLI does.
func OpenRepository(startPath string) (Git, error) {
	abs, err := filepath.Abs(startPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", startPath)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == gogit.ErrRepositoryNotExists {
			return nil, errors.Wrapf(ErrNoRepository, "%s", abs)
		}
		return nil, errors.Wrapf(err, "failed to open repository at %s", abs)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get worktree")
	}

	return &gitRepo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Stage adds the files under pathspec to the index. The pathspec is resolved
// relative to the repository root so unrelated in-progress edits elsewhere in
// the working tree are never swept in.
func (g *gitRepo) Stage(_ context.Context, pathspec string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return errors.Wrapf(ErrStagingFailed, "%v", err)
	}

	rel := pathspec
	if filepath.IsAbs(pathspec) {
		rel, err = filepath.Rel(g.root, pathspec)
		if err != nil {
			return errors.Wrapf(ErrStagingFailed, "%s is outside the repository %s", pathspec, g.root)
		}
	}

	if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
		return errors.Wrapf(ErrStagingFailed, "%s: %v", rel, err)
	}
	return nil
}

// Commit creates a commit from the index. go-git fails here when no committer
// identity is configured; that surfaces as ErrCommitFailed upstream.
func (g *gitRepo) Commit(_ context.Context, message string) (string, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return "", errors.Wrapf(ErrCommitFailed, "%v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{})
	if err != nil {
		return "", errors.Wrapf(ErrCommitFailed, "%v", err)
	}
	return hash.String(), nil
}

// TagExists reports whether a tag reference with the given name exists.
func (g *gitRepo) TagExists(_ context.Context, name string) (bool, error) {
	_, err := g.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err == nil {
		return true, nil
	}
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to look up tag %s", name)
}

// CreateTag creates a lightweight tag at the given commit, or at HEAD when
// commit is empty.
func (g *gitRepo) CreateTag(_ context.Context, name, commit string) error {
	hash := plumbing.NewHash(commit)
	if commit == "" {
		head, err := g.repo.Head()
		if err != nil {
			return errors.Wrapf(err, "failed to resolve HEAD for tag %s", name)
		}
		hash = head.Hash()
	}

	if _, err := g.repo.CreateTag(name, hash, nil); err != nil {
		if err == gogit.ErrTagExists {
			return errors.Wrapf(ErrTagExists, "%s", name)
		}
		return errors.Wrapf(err, "failed to create tag %s", name)
	}
	return nil
}

// Tags lists all tag names in the repository.
func (g *gitRepo) Tags(_ context.Context) ([]string, error) {
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to iterate tags")
	}
	return names, nil
}
