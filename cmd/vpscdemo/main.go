package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gitrdm/govpsc/internal/obslog"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := newCLI()
	root := c.rootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := logInfo
		if verbose {
			level = logDebug
		}
		logger := obslog.New(os.Stderr, charmlog.Level(level))
		cmd.SetContext(obslog.WithLogger(cmd.Context(), logger))
	}

	return root.ExecuteContext(ctx)
}
