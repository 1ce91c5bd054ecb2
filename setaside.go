package gitredate

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
)

// setAside holds uncommitted worktree state in memory while a rewrite runs,
// the in-process equivalent of a stash push/pop pair.
type setAside struct {
	wt *git.Worktree

	// snapshot of modified and untracked files, keyed by worktree path
	files billy.Filesystem
	paths []string

	// paths deleted in the worktree, re-deleted on restore
	deleted []string
}

// setAsideWorktree snapshots every uncommitted modification of wt into memory
// and resets the worktree to a clean state, so the rewrite operates on a
// clean tree. A clean worktree yields a nil setAside, and restore on nil is a
// no-op.
func setAsideWorktree(wt *git.Worktree) (*setAside, error) {
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}
	if status.IsClean() {
		return nil, nil
	}

	a := &setAside{
		wt:    wt,
		files: memfs.New(),
	}

	for path, fs := range status {
		switch {
		case fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified:
			continue
		case fs.Worktree == git.Deleted,
			fs.Worktree == git.Unmodified && fs.Staging == git.Deleted:
			a.deleted = append(a.deleted, path)
		default:
			content, err := util.ReadFile(wt.Filesystem, path)
			if err != nil {
				return nil, fmt.Errorf("failed to snapshot %s: %w", path, err)
			}
			if err := util.WriteFile(a.files, path, content, 0o644); err != nil {
				return nil, fmt.Errorf("failed to keep snapshot of %s: %w", path, err)
			}
			a.paths = append(a.paths, path)
		}
	}

	logger.Info("setting aside uncommitted changes", "files", len(a.paths), "deleted", len(a.deleted))

	if err := wt.Reset(&git.ResetOptions{Mode: git.HardReset}); err != nil {
		return nil, fmt.Errorf("failed to reset worktree: %w", err)
	}
	if err := wt.Clean(&git.CleanOptions{Dir: true}); err != nil {
		return nil, fmt.Errorf("failed to clean worktree: %w", err)
	}

	return a, nil
}

// restore writes the set-aside files back into the worktree. It runs on every
// exit path of a rewrite, success or failure.
func (a *setAside) restore() error {
	if a == nil {
		return nil
	}

	logger.Info("restoring uncommitted changes", "files", len(a.paths), "deleted", len(a.deleted))

	for _, path := range a.paths {
		content, err := util.ReadFile(a.files, path)
		if err != nil {
			return fmt.Errorf("failed to read set-aside copy of %s: %w", path, err)
		}
		if err := util.WriteFile(a.wt.Filesystem, path, content, 0o644); err != nil {
			return fmt.Errorf("failed to restore %s: %w", path, err)
		}
	}

	for _, path := range a.deleted {
		if err := a.wt.Filesystem.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to re-delete %s: %w", path, err)
		}
	}

	return nil
}
