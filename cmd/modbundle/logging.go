package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type loggerKey struct{}

// newLogger builds the stderr logger from --quiet / --verbose.
func newLogger(cmd *cobra.Command) (*log.Logger, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if quiet && verbose {
		return nil, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "modbundle",
		Level:  logLevel(quiet, verbose),
	}), nil
}

func logLevel(quiet, verbose bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

func setLogger(cmd *cobra.Command, l *log.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, loggerKey{}, l))
}

// loggerFrom returns the command logger; commands run outside setupCommand
// (tests) get a discarding one at error level.
func loggerFrom(cmd *cobra.Command) *log.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
			return l
		}
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "modbundle", Level: log.ErrorLevel})
}
