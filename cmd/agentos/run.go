package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/silvermark/agentos/internal/mission"
)

// runCmd loads a mission plan and drives it through the Launcher,
// mirroring the teacher's ServeCmd shape (a thin cobra wrapper around a
// cancellable context and a signal handler).
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <plan.json>",
		Short: "Execute a mission plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMission(args[0])
		},
	}
}

func runMission(planPath string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	plan, err := mission.LoadPlan(planPath)
	if err != nil {
		return fmt.Errorf("agentos: load plan: %w", err)
	}

	sys, err := buildSystem(ctx)
	if err != nil {
		return err
	}
	defer sys.Close()

	if err := sys.launcher.Run(ctx, plan); err != nil {
		return fmt.Errorf("agentos: mission run: %w", err)
	}

	fmt.Printf("Mission %q finished; final step statuses:\n", plan.Goal)
	for i, step := range plan.Steps {
		fmt.Printf("  %d. %s (%s): %s\n", i+1, step.AgentName, step.Status, step.Error)
	}
	return nil
}
