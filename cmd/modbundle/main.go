package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"modbundle/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "modbundle",
	Short: "Inline a tree of module files into a single source file",
	Long: `modbundle follows module declarations ("pub mod game;") from an entry file,
replaces each declaration with the body of the declared module and writes the
result as one file. Every other line is copied byte for byte.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
}

func main() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "only report errors")
	rootCmd.PersistentFlags().Bool("verbose", false, "log module resolution details")
	rootCmd.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")

	err := rootCmd.Execute()
	traceCleanup()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// setupCommand runs before every subcommand: colour, logging, tracing.
func setupCommand(cmd *cobra.Command, _ []string) error {
	mode, err := colorModeFlag(cmd)
	if err != nil {
		return err
	}
	applyColorMode(mode)

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	setLogger(cmd, logger)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return nil
}

// traceCleanup is replaced by setupCommand once a tracer is running.
var traceCleanup = func() {}

func printError(err error) {
	prefix := color.New(color.FgRed, color.Bold).Sprint("error:")
	fmt.Fprintf(os.Stderr, "%s %v\n", prefix, err)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
