package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gitrdm/govpsc/internal/obslog"
	"github.com/gitrdm/govpsc/internal/scenario"
	"github.com/gitrdm/govpsc/pkg/vpsc"
)

// solveCommand implements `vpscdemo solve <scenario.yaml>`: run Satisfy
// and Refine to completion and print each variable's final position.
func (c *cli) solveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <scenario.yaml>",
		Short: "Solve a VPSC scenario and print final positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := obslog.FromContext(cmd.Context())
			runID := uuid.NewString()
			logger = logger.With("run_id", runID)

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			vars, cs, err := sc.Build()
			if err != nil {
				return err
			}

			trace := obslog.NewSolveTrace(logger)
			solver, err := vpsc.NewSolver(vars, cs, vpsc.WithLogger(logger))
			if err != nil {
				return err
			}
			trace.Begin("solve")
			active, err := solver.Solve()
			if err != nil {
				logger.Error("solve failed", "error", err)
				return err
			}
			trace.End("solve", len(solver.Blocks()))
			logger.Debugf("constraints active: %v", active)

			for i, v := range vars {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%g\n", i, v.FinalPosition)
			}
			return nil
		},
	}
	return cmd
}
