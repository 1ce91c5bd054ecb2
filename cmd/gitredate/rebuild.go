package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fardream/gitredate/cmd"
)

type rebuildCmd struct {
	*cobra.Command

	rewriteFlags
}

func newRebuildCmd() *rebuildCmd {
	c := &rebuildCmd{
		Command: &cobra.Command{
			Use:   "rebuild",
			Short: "replay the history as a brand-new commit chain with new dates",
			Args:  cobra.NoArgs,
		},
	}

	c.addFlags(c.Command)

	c.Run = func(*cobra.Command, []string) {
		c.run()
	}

	return c
}

func (c *rebuildCmd) run() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	plan := cmd.GetOrPanic(c.newPlan(ctx))

	if c.planOnly {
		cmd.OrPanic(printPlanYAML(plan))
		return
	}

	printPreview(plan)

	fmt.Println("rebuilding commit history...")

	result, err := plan.Rebuild(ctx)
	if err != nil {
		fmt.Printf("failed to rebuild commit history: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("successfully rebuilt %d commits: %s -> %s\n",
		result.Count, result.OldHead.String(), result.NewHead.String())
}
