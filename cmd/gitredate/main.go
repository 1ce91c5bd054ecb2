package main

import (
	"github.com/spf13/cobra"
)

func main() {
	newRootCmd().Execute()
}

type rootCmd struct {
	*cobra.Command
}

func newRootCmd() *rootCmd {
	c := &rootCmd{
		Command: &cobra.Command{
			Use:   "gitredate",
			Short: "rewrite commit dates of a linear git history to a synthetic schedule",
			Args:  cobra.NoArgs,
		},
	}

	c.AddCommand(newRedateCmd().Command, newRebuildCmd().Command)

	return c
}
