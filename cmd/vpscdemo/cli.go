// Package main implements vpscdemo, a batch/one-shot CLI exercising
// pkg/vpsc end-to-end: load a scenario file, solve it, print or serve
// the result. It carries no solver logic of its own.
package main

import (
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gitrdm/govpsc/pkg/vpsc"
)

// Log levels exported for use in main.go.
const (
	logDebug = charmlog.DebugLevel
	logInfo  = charmlog.InfoLevel
)

// shutdownTimeout bounds how long `serve` waits for its HTTP server to
// drain in-flight requests after the CLI's context is cancelled.
const shutdownTimeout = 5 * time.Second

// version, commit, and date are set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli holds shared state for every vpscdemo subcommand. The logger
// itself lives on each command's context (internal/obslog), not on cli;
// this struct exists so subcommand constructors have a consistent
// receiver to grow shared flags/state on.
type cli struct{}

func newCLI() *cli { return &cli{} }

// rootCommand builds the root cobra command with every subcommand
// registered.
func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "vpscdemo",
		Short:        "vpscdemo solves variable placement with separation constraints",
		Long:         "vpscdemo loads a VPSC scenario (variables and separation constraints) from a YAML file, solves it, and reports the resulting positions.",
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(versionTemplate())

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.refineCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())

	return root
}

func versionTemplate() string {
	vi := vpsc.GetVersionInfo()
	return "vpscdemo " + version + "\ncommit: " + commit + "\nbuilt: " + date +
		"\nvpsc solver: " + vi.Version + " (" + vi.GoVersion + ")\n"
}
