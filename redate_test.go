package gitredate_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/google/go-cmp/cmp"

	"github.com/fardream/gitredate"
)

func TestRedateLinearHistory(t *testing.T) {
	repo, _ := newTestRepo(t, memory.NewStorage(), 5)
	hist := linearHistory(t, repo)

	loc := mustOffset(t, "-0300")
	generated := gitredate.GenerateTimes(
		mustDay(t, "2025-08-28", loc), mustDay(t, "2025-09-14", loc),
		len(hist), rand.New(rand.NewPCG(5, 5)))

	times := make(map[plumbing.Hash]time.Time, len(hist))
	for i, c := range hist {
		times[c.Hash] = generated[i]
	}

	target := memory.NewStorage()

	newpath, err := gitredate.RedateLinearHistory(context.Background(), hist, target, times)
	if err != nil {
		t.Fatalf("failed to redate: %v", err)
	}

	if len(newpath) != len(hist) {
		t.Fatalf("expected %d commits, got %d", len(hist), len(newpath))
	}

	oldtrees := make([]string, 0, len(hist))
	newtrees := make([]string, 0, len(hist))

	for i, c := range newpath {
		oldtrees = append(oldtrees, hist[i].TreeHash.String())
		newtrees = append(newtrees, c.TreeHash.String())

		if c.Message != hist[i].Message {
			t.Errorf("commit %d message changed: %q -> %q", i, hist[i].Message, c.Message)
		}
		if !c.Author.When.Equal(generated[i]) || !c.Committer.When.Equal(generated[i]) {
			t.Errorf("commit %d did not pick up the assigned time", i)
		}
		if i > 0 {
			if len(c.ParentHashes) != 1 || c.ParentHashes[0] != newpath[i-1].Hash {
				t.Errorf("commit %d is not linked to the new commit %d", i, i-1)
			}
		} else if len(c.ParentHashes) != 0 {
			t.Errorf("the new root has %d parents", len(c.ParentHashes))
		}

		// the new commit must be retrievable from the target storer
		if _, err := object.GetCommit(target, c.Hash); err != nil {
			t.Errorf("commit %d (%s) not in target storer: %v", i, c.Hash, err)
		}
	}

	if diff := cmp.Diff(oldtrees, newtrees); diff != "" {
		t.Errorf("trees changed (-old +new):\n%s", diff)
	}
}

func TestRedateLinearHistory_PassThrough(t *testing.T) {
	repo, _ := newTestRepo(t, memory.NewStorage(), 5)
	hist := linearHistory(t, repo)

	loc := mustOffset(t, "-0300")
	generated := gitredate.GenerateTimes(
		mustDay(t, "2025-08-28", loc), mustDay(t, "2025-09-14", loc),
		len(hist), rand.New(rand.NewPCG(6, 6)))

	// leave commit 2 out of the assignment
	times := make(map[plumbing.Hash]time.Time, len(hist))
	for i, c := range hist {
		if i == 2 {
			continue
		}
		times[c.Hash] = generated[i]
	}

	newpath, err := gitredate.RedateLinearHistory(
		context.Background(), hist, memory.NewStorage(), times)
	if err != nil {
		t.Fatalf("failed to redate: %v", err)
	}

	for i, c := range newpath {
		if i == 2 {
			if !c.Author.When.Equal(hist[i].Author.When) {
				t.Errorf("unassigned commit %d lost its original author time", i)
			}
			if !c.Committer.When.Equal(hist[i].Committer.When) {
				t.Errorf("unassigned commit %d lost its original committer time", i)
			}
			continue
		}
		if !c.Author.When.Equal(generated[i]) {
			t.Errorf("commit %d did not pick up the assigned time", i)
		}
	}

	// the chain is still fully relinked around the pass-through commit
	for i := 1; i < len(newpath); i++ {
		if newpath[i].ParentHashes[0] != newpath[i-1].Hash {
			t.Errorf("commit %d is not linked to the new commit %d", i, i-1)
		}
	}
}
