package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/govpsc/internal/obslog"
	"github.com/gitrdm/govpsc/internal/scenario"
	"github.com/gitrdm/govpsc/pkg/vpsc"
)

// refineCommand implements `vpscdemo refine <scenario.yaml>`: run
// Satisfy and Refine as two separately reported steps, a debug aid for
// inspecting how many blocks each phase leaves behind.
func (c *cli) refineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine <scenario.yaml>",
		Short: "Run Satisfy and Refine separately, reporting block counts (debug tool)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := obslog.FromContext(cmd.Context())

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			vars, cs, err := sc.Build()
			if err != nil {
				return err
			}

			solver, err := vpsc.NewSolver(vars, cs, vpsc.WithLogger(logger))
			if err != nil {
				return err
			}

			trace := obslog.NewSolveTrace(logger)
			out := cmd.OutOrStdout()
			trace.Begin("satisfy")
			if _, err := solver.Satisfy(); err != nil {
				return fmt.Errorf("satisfy: %w", err)
			}
			trace.End("satisfy", len(solver.Blocks()))
			fmt.Fprintf(out, "after satisfy: %d blocks\n", len(solver.Blocks()))

			trace.Begin("refine")
			if err := solver.Refine(); err != nil {
				return fmt.Errorf("refine: %w", err)
			}
			trace.End("refine", len(solver.Blocks()))
			fmt.Fprintf(out, "after refine: %d blocks\n", len(solver.Blocks()))

			for i, v := range vars {
				fmt.Fprintf(out, "%d\t%g\n", i, v.Position())
			}
			return nil
		},
	}
	return cmd
}
