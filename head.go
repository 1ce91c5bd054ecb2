package gitredate

import "github.com/go-git/go-git/v5/plumbing/object"

// LastNonNilCommit returns the last commit in the slice that is not nil, or
// nil if there is none.
func LastNonNilCommit(commits []*object.Commit) *object.Commit {
	for i := len(commits); i > 0; i-- {
		v := commits[i-1]
		if v != nil {
			return v
		}
	}

	return nil
}
