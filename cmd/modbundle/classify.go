package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"modbundle/internal/diagfmt"
	"modbundle/internal/lexer"
	"modbundle/internal/project"
	"modbundle/internal/source"
	"modbundle/internal/token"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] file",
	Short: "Show how every line of a file is classified",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	classifyCmd.Flags().Int("width", 0, "truncate source text to this many columns (0=no limit)")
	classifyCmd.Flags().String("toml", "", "take [syntax] from this "+project.ManifestName)
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	tomlPath, err := cmd.Flags().GetString("toml")
	if err != nil {
		return fmt.Errorf("failed to get toml flag: %w", err)
	}

	cls := lexer.Default()
	if tomlPath != "" {
		m, err := project.LoadManifest(tomlPath)
		if err != nil {
			return err
		}
		if cls, err = lexer.NewClassifier(m.Syntax); err != nil {
			return err
		}
	}

	tokens, err := classifyFile(cls, args[0])
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, diagfmt.PrettyOpts{
			Color: stdoutColor(cmd),
			Width: width,
		})
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func classifyFile(cls *lexer.Classifier, path string) ([]token.Token, error) {
	// #nosec G304 -- path comes from the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	lines, err := source.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	tokens := make([]token.Token, 0, len(lines))
	for _, line := range lines {
		tokens = append(tokens, cls.Classify(line))
	}
	return tokens, nil
}
