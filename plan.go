package gitredate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Options configures a [Plan].
type Options struct {
	// Branch to rewrite. Empty means the branch HEAD points at.
	Branch string

	// Start and End are the inclusive civil days (YYYY-MM-DD) bounding the
	// date window.
	Start string
	End   string

	// Offset is the fixed utc offset (±HHMM) of the generated times. Empty
	// means [DefaultOffset].
	Offset string

	// Seed for the random draws. 0 seeds from the clock.
	Seed uint64

	// Roots optionally stop the history enumeration, see [GetLinearHistory].
	Roots HashSet
}

// Assignment maps one commit of the enumerated history to its generated time.
type Assignment struct {
	Hash    plumbing.Hash
	Summary string
	When    time.Time
}

// Result of an applied rewrite.
type Result struct {
	OldHead plumbing.Hash
	NewHead plumbing.Hash
	Count   int
}

// scratchBranch holds the in-progress chain during [Plan.Rebuild]. It is
// deleted on success and left in place on failure for manual inspection.
const scratchBranch = "gitredate-rebuild"

// Plan is a fully resolved rewrite of one branch of one repository: the
// enumerated history and one generated time per commit. Building the plan
// mutates nothing; inspect it with [Plan.Assignments], then apply it with
// [Plan.Redate] or [Plan.Rebuild].
type Plan struct {
	repo *git.Repository

	branch  plumbing.ReferenceName
	oldhead plumbing.Hash

	hist  []*object.Commit
	times []time.Time
}

// NewPlan enumerates the branch history of repo and generates one time per
// commit according to opts. The repository is not modified.
func NewPlan(ctx context.Context, repo *git.Repository, opts *Options) (*Plan, error) {
	if repo == nil {
		return nil, ErrNilRepo
	}
	if opts == nil {
		opts = &Options{}
	}

	branch := opts.Branch
	if branch == "" {
		head, err := repo.Head()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
		}
		if !head.Name().IsBranch() {
			return nil, ErrDetachedHead
		}
		branch = head.Name().Short()
	}

	refname := plumbing.NewBranchReferenceName(branch)
	ref, err := repo.Reference(refname, true)
	if err != nil {
		return nil, fmt.Errorf("failed to find branch %s: %w", refname, err)
	}

	headcommit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get head commit %s: %w", ref.Hash().String(), err)
	}

	hist, err := GetLinearHistory(ctx, headcommit, opts.Roots)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate history of %s: %w", refname, err)
	}
	if len(hist) == 0 {
		return nil, ErrEmptyHistory
	}

	offset := opts.Offset
	if offset == "" {
		offset = DefaultOffset
	}
	loc, err := ParseOffset(offset)
	if err != nil {
		return nil, err
	}

	start, err := ParseDay(opts.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start day %s: %w", opts.Start, err)
	}
	end, err := ParseDay(opts.End, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid end day %s: %w", opts.End, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, opts.End, opts.Start)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	return &Plan{
		repo:    repo,
		branch:  refname,
		oldhead: ref.Hash(),
		hist:    hist,
		times:   GenerateTimes(start, end, len(hist), rng),
	}, nil
}

// Assignments returns the full commit to time mapping, oldest commit first.
func (p *Plan) Assignments() []Assignment {
	result := make([]Assignment, 0, len(p.hist))

	for i, c := range p.hist {
		result = append(result, Assignment{
			Hash:    c.Hash,
			Summary: Summary(c),
			When:    p.times[i],
		})
	}

	return result
}

// Redate rewrites the dates of the planned history in place, keeping trees,
// messages and ancestry. The old head is kept under
// refs/original/refs/heads/<branch> for the duration of the rewrite,
// overwriting any backup a previous run left behind; on success the backup is
// deleted again. Uncommitted worktree changes are set aside before the
// rewrite and restored on every exit path.
func (p *Plan) Redate(ctx context.Context) (result *Result, err error) {
	aside, err := p.setAside()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := aside.restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	times := make(map[plumbing.Hash]time.Time, len(p.hist))
	for i, c := range p.hist {
		times[c.Hash] = p.times[i]
	}

	newpath, err := RedateLinearHistory(ctx, p.hist, p.repo.Storer, times)
	if err != nil {
		return nil, errorf(err, "failed to redate %s: %w", p.branch, err)
	}

	newhead := LastNonNilCommit(newpath)
	if newhead == nil {
		return nil, ErrEmptyHistory
	}

	backup := plumbing.ReferenceName("refs/original/" + string(p.branch))
	if err := p.repo.Storer.SetReference(plumbing.NewHashReference(backup, p.oldhead)); err != nil {
		return nil, fmt.Errorf("failed to write backup ref %s: %w", backup, err)
	}

	if err := p.moveBranch(newhead.Hash); err != nil {
		return nil, err
	}

	// the backup may already be gone, deletion is best effort
	if err := p.repo.Storer.RemoveReference(backup); err != nil {
		logger.Warn("failed to remove backup ref", "ref", backup, "err", err)
	}

	return &Result{OldHead: p.oldhead, NewHead: newhead.Hash, Count: len(newpath)}, nil
}

// Rebuild replays the planned history as an entirely new chain from an empty
// root and points the branch at it. The scratch branch advances with every
// created commit; if a commit fails, the branch is left untouched and the
// scratch branch stays at the last created commit for manual inspection.
// Uncommitted worktree changes are set aside before the rewrite and restored
// on every exit path.
func (p *Plan) Rebuild(ctx context.Context) (result *Result, err error) {
	aside, err := p.setAside()
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := aside.restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	scratch := plumbing.NewBranchReferenceName(scratchBranch)

	n := len(p.hist)

	var prev *object.Commit

	for i, c := range p.hist {
		newcommit, err := RebuildCommit(ctx, c, prev, p.times[i], p.repo.Storer)
		if err != nil {
			return nil, errorf(err, "failed to rebuild commit %d/%d (%s): %w", i+1, n, c.Hash.String(), err)
		}

		if err := p.repo.Storer.SetReference(plumbing.NewHashReference(scratch, newcommit.Hash)); err != nil {
			return nil, fmt.Errorf("failed to advance scratch branch %s: %w", scratch, err)
		}

		logger.Info("rebuilding commit", "id", i, "total", n, "hash", c.Hash, "newcommit", newcommit.Hash)

		prev = newcommit
	}

	if prev == nil {
		return nil, ErrEmptyHistory
	}

	if err := p.moveBranch(prev.Hash); err != nil {
		return nil, err
	}

	if err := p.repo.Storer.RemoveReference(scratch); err != nil {
		logger.Warn("failed to remove scratch branch", "ref", scratch, "err", err)
	}

	return &Result{OldHead: p.oldhead, NewHead: prev.Hash, Count: n}, nil
}

// setAside stashes uncommitted worktree changes, see [setAsideWorktree].
// Bare repositories have nothing to set aside.
func (p *Plan) setAside() (*setAside, error) {
	wt, err := p.repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	return setAsideWorktree(wt)
}

// moveBranch points the branch at h, and hard resets the worktree when the
// branch is the one HEAD is on.
func (p *Plan) moveBranch(h plumbing.Hash) error {
	if err := p.repo.Storer.SetReference(plumbing.NewHashReference(p.branch, h)); err != nil {
		return fmt.Errorf("failed to move branch %s: %w", p.branch, err)
	}

	head, err := p.repo.Storer.Reference(plumbing.HEAD)
	if err != nil || head.Type() != plumbing.SymbolicReference || head.Target() != p.branch {
		return nil
	}

	wt, err := p.repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil
		}
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	if err := wt.Reset(&git.ResetOptions{Commit: h, Mode: git.HardReset}); err != nil {
		return fmt.Errorf("failed to reset worktree to %s: %w", h.String(), err)
	}

	return nil
}
