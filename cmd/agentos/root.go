package main

import (
	"github.com/spf13/cobra"
)

// rootCmd builds the agentos CLI, matching the teacher's cmd/nebo/root.go
// shape: a bare root command with subcommands attached.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentos",
		Short: "Run vision-guided browser missions",
		Long:  `agentos launches and supervises browser automation missions driven by a vision-language model.`,
	}

	cmd.AddCommand(runCmd())
	cmd.AddCommand(planCmd())
	cmd.AddCommand(doctorCmd())

	return cmd
}
