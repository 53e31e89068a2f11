package main

import (
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gitrdm/govpsc/internal/obslog"
	"github.com/gitrdm/govpsc/internal/scenario"
	"github.com/gitrdm/govpsc/internal/workpool"
	"github.com/gitrdm/govpsc/pkg/vpsc"
)

// batchCommand implements `vpscdemo batch <dir>`: solves every
// *.yaml/*.yml scenario file in dir concurrently. Each file is an
// independent Solver instance over disjoint variables, so running them
// in parallel across a bounded workpool is safe: distinct solver
// instances may run in parallel as long as their inputs are disjoint.
func (c *cli) batchCommand() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Solve every scenario file in a directory concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := obslog.FromContext(cmd.Context())

			entries, err := os.ReadDir(args[0])
			if err != nil {
				return err
			}

			var paths []string
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				ext := filepath.Ext(e.Name())
				if ext == ".yaml" || ext == ".yml" {
					paths = append(paths, filepath.Join(args[0], e.Name()))
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("no scenario files found in %s", args[0])
			}

			pool := workpool.NewPool(workers)
			defer pool.Shutdown()

			// Collect results concurrently with submission: if a
			// submission fails partway through (e.g. ctx cancelled),
			// Shutdown must still be able to flush whatever tasks are
			// already queued without this command blocking on a
			// Results() count that never arrives.
			collected := make(chan map[string]error, 1)
			go func() {
				results := make(map[string]error, len(paths))
				for r := range pool.Results() {
					results[r.Label] = r.Err
				}
				collected <- results
			}()

			var submitErr error
			for _, p := range paths {
				p := p
				if err := pool.Submit(cmd.Context(), p, func() error {
					return solveOne(p, logger)
				}); err != nil {
					submitErr = err
					break
				}
			}
			pool.Shutdown()
			results := <-collected
			if submitErr != nil {
				return submitErr
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, p := range paths {
				if err := results[p]; err != nil {
					fmt.Fprintf(out, "%s\tFAILED: %v\n", p, err)
					failed++
				} else {
					fmt.Fprintf(out, "%s\tOK\n", p)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed to solve", failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of concurrent workers (default: number of CPUs)")
	return cmd
}

func solveOne(path string, logger *charmlog.Logger) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	vars, cs, err := sc.Build()
	if err != nil {
		return err
	}
	solver, err := vpsc.NewSolver(vars, cs, vpsc.WithLogger(logger.With("scenario", path)))
	if err != nil {
		return err
	}
	_, err = solver.Solve()
	return err
}
