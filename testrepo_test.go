package gitredate_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage"

	"github.com/fardream/gitredate"
)

// newTestRepo creates an in-memory repository with n commits on master, one
// file added per commit.
func newTestRepo(t *testing.T, s storage.Storer, n int) (*git.Repository, *git.Worktree) {
	t.Helper()

	repo, err := git.Init(s, memfs.New())
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("file-%d.txt", i)
		if err := util.WriteFile(wt.Filesystem, name, []byte(fmt.Sprintf("content %d\n", i)), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		_, err := wt.Commit(
			fmt.Sprintf("commit %d\n\nbody of commit %d\n", i, i),
			&git.CommitOptions{
				Author: &object.Signature{
					Name:  "Test Author",
					Email: "author@example.com",
					When:  time.Date(2020, 1, 1+i, 12, 0, 0, 0, time.UTC),
				},
			})
		if err != nil {
			t.Fatalf("failed to commit %d: %v", i, err)
		}
	}

	return repo, wt
}

// linearHistory enumerates the full first-parent history of the repo head,
// oldest commit first.
func linearHistory(t *testing.T, repo *git.Repository) []*object.Commit {
	t.Helper()

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("failed to get head: %v", err)
	}

	headcommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("failed to get head commit: %v", err)
	}

	hist, err := gitredate.GetLinearHistory(context.Background(), headcommit, nil)
	if err != nil {
		t.Fatalf("failed to get linear history: %v", err)
	}

	return hist
}

// mustOffset parses the offset or fails the test.
func mustOffset(t *testing.T, str string) *time.Location {
	t.Helper()

	loc, err := gitredate.ParseOffset(str)
	if err != nil {
		t.Fatalf("failed to parse offset %s: %v", str, err)
	}

	return loc
}

// mustDay parses a YYYY-MM-DD day or fails the test.
func mustDay(t *testing.T, str string, loc *time.Location) time.Time {
	t.Helper()

	day, err := gitredate.ParseDay(str, loc)
	if err != nil {
		t.Fatalf("failed to parse day %s: %v", str, err)
	}

	return day
}
