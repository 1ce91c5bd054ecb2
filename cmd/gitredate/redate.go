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

type redateCmd struct {
	*cobra.Command

	rewriteFlags
}

func newRedateCmd() *redateCmd {
	c := &redateCmd{
		Command: &cobra.Command{
			Use:   "redate",
			Short: "rewrite commit dates in place, keeping trees, messages and ancestry",
			Args:  cobra.NoArgs,
		},
	}

	c.addFlags(c.Command)

	c.Run = func(*cobra.Command, []string) {
		c.run()
	}

	return c
}

func (c *redateCmd) run() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	plan := cmd.GetOrPanic(c.newPlan(ctx))

	if c.planOnly {
		cmd.OrPanic(printPlanYAML(plan))
		return
	}

	printPreview(plan)

	fmt.Println("rewriting commit dates...")

	result, err := plan.Redate(ctx)
	if err != nil {
		fmt.Printf("failed to rewrite commit dates: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("successfully rewrote %d commit dates: %s -> %s\n",
		result.Count, result.OldHead.String(), result.NewHead.String())
}
