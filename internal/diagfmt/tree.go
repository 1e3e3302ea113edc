package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"modbundle/internal/token"
)

// TreeOpts configures FormatTree.
type TreeOpts struct {
	Color bool
	// Lines appends the number of source lines each module contributes.
	Lines bool
}

var (
	treeRootStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	treePublicStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	treePrivStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	treeBranchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	treeNoteStyle   = lipgloss.NewStyle().Faint(true)
)

// FormatTree draws the module hierarchy of a token tree:
//
//	main
//	├── pub game
//	│   └── pub inner
//	└── pub util
func FormatTree(w io.Writer, entry string, tokens []token.Token, opts TreeOpts) error {
	paint := func(st lipgloss.Style, s string) string {
		if !opts.Color {
			return s
		}
		return st.Render(s)
	}

	root := paint(treeRootStyle, entry)
	if opts.Lines {
		root += " " + paint(treeNoteStyle, linesNote(tokens))
	}
	if _, err := fmt.Fprintln(w, root); err != nil {
		return err
	}
	return drawBlocks(w, tokens, "", opts, paint)
}

func drawBlocks(w io.Writer, tokens []token.Token, prefix string, opts TreeOpts, paint func(lipgloss.Style, string) string) error {
	blocks := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == token.Block {
			blocks = append(blocks, tok)
		}
	}
	for i, blk := range blocks {
		last := i == len(blocks)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		name := blk.Module
		if blk.Public {
			name = paint(treePublicStyle, "pub "+name)
		} else {
			name = paint(treePrivStyle, name)
		}
		line := prefix + paint(treeBranchStyle, branch) + name
		if opts.Lines {
			line += " " + paint(treeNoteStyle, linesNote(blk.Children))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := drawBlocks(w, blk.Children, prefix+paint(treeBranchStyle, next), opts, paint); err != nil {
			return err
		}
	}
	return nil
}

// linesNote counts only lines owned directly by a module, not by its submodules.
func linesNote(tokens []token.Token) string {
	n := 0
	for _, tok := range tokens {
		if tok.HasLine() {
			n++
		}
	}
	return "(" + pluralLines(n) + ")"
}

func pluralLines(n int) string {
	if n == 1 {
		return "1 line"
	}
	return fmt.Sprintf("%d lines", n)
}

// TreeString is FormatTree into a string without colour.
func TreeString(entry string, tokens []token.Token) string {
	var sb strings.Builder
	_ = FormatTree(&sb, entry, tokens, TreeOpts{}) //nolint:errcheck
	return sb.String()
}
