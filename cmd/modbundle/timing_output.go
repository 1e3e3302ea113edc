package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"modbundle/internal/observ"
)

// timerFor returns a Timer, or nil when --timings is off.
func timerFor(cmd *cobra.Command) (*observ.Timer, error) {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if !on {
		return nil, nil
	}
	return observ.NewTimer(), nil
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
