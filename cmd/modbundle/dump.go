package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"modbundle/internal/bundle"
	"modbundle/internal/diagfmt"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [entry | target | file]",
	Short: "Dump the loaded token tree as JSON or as a msgpack snapshot",
	Long: `Dump the loaded token tree.

--format msgpack writes a snapshot that "modbundle render" turns into a bundle
without access to the original sources.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

var renderCmd = &cobra.Command{
	Use:   "render [flags] snapshot",
	Short: "Write a bundle from a msgpack snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	addSourceFlags(dumpCmd)
	dumpCmd.Flags().String("format", "json", "dump format (json|msgpack)")
	dumpCmd.Flags().StringP("output", "o", "", "write the dump to this file")

	renderCmd.Flags().StringP("output", "o", "", "write the bundle to this file")
}

func runDump(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	format = strings.ToLower(format)
	if format != "json" && format != "msgpack" {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == "msgpack" && (output == "" || output == "-") && cmd.OutOrStdout() == os.Stdout && isTerminal(os.Stdout) {
		return errors.New("refusing to write a binary snapshot to a terminal; use -o")
	}

	t, err := singleTarget(cmd, args)
	if err != nil {
		return err
	}
	b, err := loadTarget(cmd.Context(), t, loggerFrom(cmd), nil)
	if err != nil {
		return fmt.Errorf("bundle %q: %w", t.Name, err)
	}

	var buf bytes.Buffer
	if format == "json" {
		err = diagfmt.FormatBundleJSON(&buf, b.Entry(), b.Tokens())
	} else {
		err = b.SaveSnapshot(&buf)
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
}

func runRender(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	// #nosec G304 -- path comes from the command line
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	b, err := bundle.LoadSnapshot(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	var buf bytes.Buffer
	if err := b.Write(&buf); err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
}
