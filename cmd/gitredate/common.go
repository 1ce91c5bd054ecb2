package main

import (
	"context"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/fardream/gitredate"
)

// rewriteFlags are the flags shared by the redate and the rebuild commands.
type rewriteFlags struct {
	repoPath string
	branch   string
	start    string
	end      string
	offset   string
	seed     uint64
	roots    []string
	planOnly bool
}

func (f *rewriteFlags) addFlags(c *cobra.Command) {
	f.repoPath = "."
	f.offset = gitredate.DefaultOffset

	c.Flags().StringVarP(&f.repoPath, "repo", "C", f.repoPath, "path to the repository")
	c.Flags().StringVarP(&f.branch, "branch", "b", f.branch, "branch to rewrite (default: the branch HEAD is on)")
	c.Flags().StringVar(&f.start, "start", f.start, "first day of the date window (YYYY-MM-DD)")
	c.MarkFlagRequired("start")
	c.Flags().StringVar(&f.end, "end", f.end, "last day of the date window (YYYY-MM-DD), inclusive")
	c.MarkFlagRequired("end")
	c.Flags().StringVar(&f.offset, "offset", f.offset, "fixed utc offset of the new dates")
	c.Flags().Uint64Var(&f.seed, "seed", f.seed, "random seed (0 seeds from the clock)")
	c.Flags().StringArrayVar(&f.roots, "root", f.roots, "stop the history enumeration at this commit (repeatable)")
	c.Flags().BoolVar(&f.planOnly, "plan", f.planOnly, "print the full date assignment as yaml and exit without rewriting")
}

func (f *rewriteFlags) newPlan(ctx context.Context) (*gitredate.Plan, error) {
	repo, err := git.PlainOpen(f.repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", f.repoPath, err)
	}

	roots, err := gitredate.NewHashSetFromStrings(f.roots...)
	if err != nil {
		return nil, err
	}

	return gitredate.NewPlan(ctx, repo, &gitredate.Options{
		Branch: f.branch,
		Start:  f.start,
		End:    f.end,
		Offset: f.offset,
		Seed:   f.seed,
		Roots:  roots,
	})
}

// printPreview prints the first five assignments before any mutation happens.
func printPreview(plan *gitredate.Plan) {
	assignments := plan.Assignments()

	fmt.Printf("found %d commits to rewrite\n", len(assignments))
	fmt.Println("date assignment preview (first 5 commits):")

	for i, a := range assignments {
		if i >= 5 {
			fmt.Printf("  ... and %d more commits\n", len(assignments)-5)
			break
		}
		fmt.Printf("  %s -> %s\n", a.Hash.String()[:8], gitredate.FormatGitDate(a.When))
	}
}

type planEntry struct {
	Commit  string `yaml:"commit"`
	Summary string `yaml:"summary"`
	Date    string `yaml:"date"`
}

// printPlanYAML dumps the full assignment as yaml.
func printPlanYAML(plan *gitredate.Plan) error {
	assignments := plan.Assignments()

	entries := make([]planEntry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, planEntry{
			Commit:  a.Hash.String(),
			Summary: a.Summary,
			Date:    gitredate.FormatGitDate(a.When),
		})
	}

	out, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	fmt.Print(string(out))

	return nil
}
