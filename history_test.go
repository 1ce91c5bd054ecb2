package gitredate_test

import (
	"context"
	"testing"

	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/google/go-cmp/cmp"

	"github.com/fardream/gitredate"
)

func TestGetLinearHistory(t *testing.T) {
	repo, _ := newTestRepo(t, memory.NewStorage(), 5)

	hist := linearHistory(t, repo)

	if len(hist) != 5 {
		t.Fatalf("expected 5 commits, got %d", len(hist))
	}

	summaries := make([]string, 0, len(hist))
	for _, c := range hist {
		summaries = append(summaries, gitredate.Summary(c))
	}

	want := []string{"commit 0", "commit 1", "commit 2", "commit 3", "commit 4"}
	if diff := cmp.Diff(want, summaries); diff != "" {
		t.Errorf("history is not oldest first (-want +got):\n%s", diff)
	}

	for i := 1; i < len(hist); i++ {
		if hist[i].ParentHashes[0] != hist[i-1].Hash {
			t.Errorf("commit %d does not have commit %d as first parent", i, i-1)
		}
	}
}

func TestGetLinearHistory_Roots(t *testing.T) {
	repo, _ := newTestRepo(t, memory.NewStorage(), 5)

	hist := linearHistory(t, repo)

	head, err := repo.CommitObject(hist[len(hist)-1].Hash)
	if err != nil {
		t.Fatalf("failed to get head commit: %v", err)
	}

	bounded, err := gitredate.GetLinearHistory(
		context.Background(), head, gitredate.NewHashSet(hist[2].Hash))
	if err != nil {
		t.Fatalf("failed to get bounded history: %v", err)
	}

	if len(bounded) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(bounded))
	}
	if bounded[0].Hash != hist[2].Hash {
		t.Errorf("expected the root commit to be %s, got %s", hist[2].Hash, bounded[0].Hash)
	}
}

func TestGetLinearHistory_NilHead(t *testing.T) {
	hist, err := gitredate.GetLinearHistory(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("expected empty history, got %d commits", len(hist))
	}
}

func TestSummary(t *testing.T) {
	repo, _ := newTestRepo(t, memory.NewStorage(), 1)

	hist := linearHistory(t, repo)

	if got := gitredate.Summary(hist[0]); got != "commit 0" {
		t.Errorf("Summary = %q, want %q", got, "commit 0")
	}
}
