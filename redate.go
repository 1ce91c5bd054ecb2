package gitredate

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// RedateLinearHistory recreates every commit of a linear history with the
// author and committer times replaced by the time assigned to its hash in
// times. The result is saved into s.
//
//   - Trees and messages are carried over unchanged.
//   - Commits whose hash is not in times keep their original times - only
//     their parent links are remapped. This guards against a partial
//     assignment: unrecognized commits pass through untouched.
//   - Parents that are part of the input history are remapped to the newly
//     created commits; parents outside of it keep their original hashes.
//   - GPG sign information is dropped, since rehashing invalidates it.
//
// The input commits can be obtained from [GetLinearHistory].
func RedateLinearHistory(
	ctx context.Context,
	hist []*object.Commit,
	s storer.Storer,
	times map[plumbing.Hash]time.Time,
) ([]*object.Commit, error) {
	newpath := make([]*object.Commit, 0, len(hist))

	fromorigtonew := make(map[plumbing.Hash]*object.Commit)

	n := len(hist)

	for i, c := range hist {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if c == nil {
			continue
		}

		parents := make([]plumbing.Hash, 0, c.NumParents())
		seen := make(map[plumbing.Hash]empty)
		for j := 0; j < c.NumParents(); j++ {
			parenthash := c.ParentHashes[j]
			if newparent, found := fromorigtonew[parenthash]; found && newparent != nil {
				parenthash = newparent.Hash
			}
			if _, dup := seen[parenthash]; !dup {
				parents = append(parents, parenthash)
				seen[parenthash] = empty{}
			}
		}

		newcommit := &object.Commit{
			Author:       c.Author,
			Committer:    c.Committer,
			Message:      c.Message,
			TreeHash:     c.TreeHash,
			ParentHashes: parents,
		}

		if when, found := times[c.Hash]; found {
			newcommit.Author.When = when
			newcommit.Committer.When = when
		}

		if err := updateHashAndSave(ctx, newcommit, s); err != nil {
			return nil, errorf(err, "failed to save new commit for %s: %w", c.Hash.String(), err)
		}

		logger.Info("redating commit", "id", i, "total", n, "hash", c.Hash, "newcommit", newcommit.Hash)

		newpath = append(newpath, newcommit)
		fromorigtonew[c.Hash] = newcommit
	}

	return newpath, nil
}
