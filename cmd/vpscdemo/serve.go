package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gitrdm/govpsc/internal/obslog"
	"github.com/gitrdm/govpsc/internal/scenario"
	"github.com/gitrdm/govpsc/pkg/vpsc"
)

// serveCommand implements `vpscdemo serve <scenario.yaml>`: solves a
// scenario once at startup, registers the solver's Prometheus
// collectors, and exposes them on /metrics until the context is
// cancelled. There is no solve-over-the-wire endpoint; this is a
// metrics sidecar for a one-shot solve, not a solver service.
func (c *cli) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <scenario.yaml>",
		Short: "Solve a scenario once and expose its solver metrics over HTTP",
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

			registry := prometheus.NewRegistry()
			metrics := vpsc.NewMetrics("vpscdemo", "solver")
			registry.MustRegister(metrics.Collectors()...)

			solver, err := vpsc.NewSolver(vars, cs, vpsc.WithLogger(logger), vpsc.WithMetrics(metrics))
			if err != nil {
				return err
			}
			if _, err := solver.Solve(); err != nil {
				logger.Error("solve failed", "error", err)
			}

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

			srv := &http.Server{Addr: addr, Handler: mux}
			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Infof("serving metrics on %s/metrics", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "HTTP listen address")
	return cmd
}
