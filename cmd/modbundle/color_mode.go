package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func colorModeFlag(cmd *cobra.Command) (colorMode, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return "", fmt.Errorf("failed to get color flag: %w", err)
	}
	return readColorMode(value)
}

// useColor decides colouring for output written to f.
func useColor(mode colorMode, f *os.File) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return f != nil && isTerminal(f)
	}
}

// applyColorMode configures fatih/color globally; "auto" keeps its own TTY detection.
func applyColorMode(mode colorMode) {
	switch mode {
	case colorOn:
		color.NoColor = false
	case colorOff:
		color.NoColor = true
	}
}

// stdoutColor reports whether pretty output on stdout should be coloured.
func stdoutColor(cmd *cobra.Command) bool {
	mode, err := colorModeFlag(cmd)
	if err != nil {
		return false
	}
	if cmd.OutOrStdout() != os.Stdout {
		return mode == colorOn
	}
	return useColor(mode, os.Stdout)
}
