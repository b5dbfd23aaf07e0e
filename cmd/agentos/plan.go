package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silvermark/agentos/internal/mission"
)

// planCmd scaffolds a new mission plan file: a goal plus an ordered list of
// {agent, task} steps, each starting pending.
func planCmd() *cobra.Command {
	var goal string
	var agents []string
	var tasks []string
	var out string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Scaffold a new mission plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(agents) != len(tasks) {
				return fmt.Errorf("agentos: --agent and --task must be given the same number of times (%d vs %d)", len(agents), len(tasks))
			}

			steps := make([]mission.Step, len(agents))
			for i := range agents {
				steps[i] = mission.Step{AgentName: agents[i], Task: tasks[i], Status: mission.StatusPending}
			}

			p := mission.NewPlan(out, goal, steps)
			if err := p.Save(); err != nil {
				return fmt.Errorf("agentos: write plan: %w", err)
			}
			fmt.Printf("Wrote mission plan to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "mission goal (free-form user intent)")
	cmd.Flags().StringArrayVar(&agents, "agent", nil, "registry name of an agent to run, in order (repeatable)")
	cmd.Flags().StringArrayVar(&tasks, "task", nil, "free-form task context for the matching --agent (repeatable)")
	cmd.Flags().StringVar(&out, "out", "mission.json", "path to write the plan file")
	cmd.MarkFlagRequired("goal")

	return cmd
}
