package gitredate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// RebuildCommit creates a brand-new commit in s carrying c's tree and summary
// line, with when as both the author and the committer time. parent, when not
// nil, becomes the sole parent of the new commit; the new root of a rebuilt
// chain is created with a nil parent.
//
// The tree is referenced by hash and never re-encoded, so the snapshot of the
// new commit is byte-identical to c's.
func RebuildCommit(
	ctx context.Context,
	c *object.Commit,
	parent *object.Commit,
	when time.Time,
	s storer.Storer,
) (*object.Commit, error) {
	newcommit := &object.Commit{
		Author:    c.Author,
		Committer: c.Committer,
		Message:   Summary(c) + "\n",
		TreeHash:  c.TreeHash,
	}

	newcommit.Author.When = when
	newcommit.Committer.When = when

	if parent != nil {
		newcommit.ParentHashes = []plumbing.Hash{parent.Hash}
	}

	newhash, err := GetHash(newcommit)
	if err != nil {
		return nil, fmt.Errorf("failed to get hash for new commit: %w", err)
	}
	newcommit.Hash = *newhash

	if err := updateHashAndSave(ctx, newcommit, s); err != nil {
		return nil, errorf(err, "failed to save new commit %s: %w", newcommit.Hash.String(), err)
	}

	return newcommit, nil
}

// RebuildLinearHistory replays a linear history as an entirely new chain of
// commits in s, starting from an empty root. Commit i of the new chain reuses
// the tree of commit i of the input, carries its summary line as message, and
// links the previously created commit as its sole parent. times must assign
// one time per input commit.
//
// A single failed commit aborts the whole rebuild - commits created so far
// stay in s, nothing is rolled back.
//
// The input commits can be obtained from [GetLinearHistory].
func RebuildLinearHistory(
	ctx context.Context,
	hist []*object.Commit,
	s storer.Storer,
	times []time.Time,
) ([]*object.Commit, error) {
	if len(times) != len(hist) {
		return nil, fmt.Errorf("%w: %d times for %d commits", ErrTimesMismatch, len(times), len(hist))
	}

	newpath := make([]*object.Commit, 0, len(hist))

	n := len(hist)

	var prev *object.Commit

	for i, c := range hist {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		newcommit, err := RebuildCommit(ctx, c, prev, times[i], s)
		if err != nil {
			return nil, errorf(err, "failed to rebuild commit %d/%d (%s): %w", i+1, n, c.Hash.String(), err)
		}

		logger.Info("rebuilding commit", "id", i, "total", n, "hash", c.Hash, "newcommit", newcommit.Hash)

		newpath = append(newpath, newcommit)
		prev = newcommit
	}

	return newpath, nil
}
