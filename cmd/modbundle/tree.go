package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"modbundle/internal/diagfmt"
)

var treeCmd = &cobra.Command{
	Use:   "tree [entry | target | file]",
	Short: "Print the module hierarchy that a build would inline",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTree,
}

func init() {
	addSourceFlags(treeCmd)
	treeCmd.Flags().Bool("lines", false, "show how many lines each module contributes")
}

func runTree(cmd *cobra.Command, args []string) error {
	showLines, err := cmd.Flags().GetBool("lines")
	if err != nil {
		return fmt.Errorf("failed to get lines flag: %w", err)
	}
	targets, err := resolveTargets(cmd, args)
	if err != nil {
		return err
	}
	logger := loggerFrom(cmd)
	opts := diagfmt.TreeOpts{Color: stdoutColor(cmd), Lines: showLines}

	for i, t := range targets {
		b, err := loadTarget(cmd.Context(), t, logger, nil)
		if err != nil {
			return fmt.Errorf("bundle %q: %w", t.Name, err)
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if len(targets) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", t.Name)
		}
		if err := diagfmt.FormatTree(cmd.OutOrStdout(), b.Entry(), b.Tokens(), opts); err != nil {
			return err
		}
	}
	return nil
}
