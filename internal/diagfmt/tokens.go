package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"modbundle/internal/source"
	"modbundle/internal/token"
)

// PrettyOpts configures FormatTokensPretty.
type PrettyOpts struct {
	Color bool
	Width int // максимальная ширина колонки с исходной строкой, 0 - не ограничено
}

var (
	declColor   = color.New(color.FgYellow, color.Bold)
	importColor = color.New(color.FgCyan)
	plainColor  = color.New(color.FgHiBlack)
	blockColor  = color.New(color.FgGreen, color.Bold)
)

func kindColor(k token.Kind) *color.Color {
	switch k {
	case token.SubmoduleDecl:
		return declColor
	case token.SingleImport, token.MultiImport:
		return importColor
	case token.Block:
		return blockColor
	default:
		return plainColor
	}
}

// FormatTokensPretty prints one row per token:
//
//	  1: SubmoduleDecl  name=game pub   | pub mod game;
//
// Blocks are listed with their children indented below them.
func FormatTokensPretty(w io.Writer, tokens []token.Token, opts PrettyOpts) error {
	n := 0
	return token.Walk(tokens, func(_ string, depth int, tok token.Token) error {
		n++
		kind := fmt.Sprintf("%-13s", tok.Kind)
		if opts.Color {
			kind = kindColor(tok.Kind).Sprint(kind)
		}
		indent := strings.Repeat("  ", depth)
		detail := describe(tok)
		if !tok.HasLine() {
			_, err := fmt.Fprintf(w, "%3d: %s%s  %s\n", n, indent, kind, detail)
			return err
		}
		_, err := fmt.Fprintf(w, "%3d: %s%s  %-28s | %s\n", n, indent, kind, detail, clip(tok.Line, opts.Width))
		return err
	})
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.SubmoduleDecl:
		if tok.Public {
			return "name=" + tok.NameText() + " pub"
		}
		return "name=" + tok.NameText()
	case token.SingleImport:
		return "path=" + tok.NameText()
	case token.MultiImport:
		return "parent=" + tok.ParentText() + " names=[" + strings.Join(tok.NameTexts(), ", ") + "]"
	case token.Block:
		vis := ""
		if tok.Public {
			vis = " pub"
		}
		return fmt.Sprintf("module=%s%s children=%d", tok.Module, vis, len(tok.Children))
	case token.PlainLine:
		return "trimmed=" + tok.Trimmed.String()
	default:
		return ""
	}
}

// clip shortens s to width display cells, marking the cut with "...".
func clip(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// TokenOutput is the JSON form of a token.
type TokenOutput struct {
	Kind     string            `json:"kind"`
	Line     string            `json:"line,omitempty"`
	Name     string            `json:"name,omitempty"`
	NameSpan *source.LineSpan  `json:"name_span,omitempty"`
	Parent   string            `json:"parent,omitempty"`
	Names    []string          `json:"names,omitempty"`
	Spans    []source.LineSpan `json:"spans,omitempty"`
	Trimmed  *source.LineSpan  `json:"trimmed,omitempty"`
	Public   bool              `json:"public,omitempty"`
	Children []TokenOutput     `json:"children,omitempty"`
}

// NewTokenOutput converts tok and its children.
func NewTokenOutput(tok token.Token) TokenOutput {
	out := TokenOutput{Kind: tok.Kind.String(), Line: tok.Line, Public: tok.Public}
	switch tok.Kind {
	case token.SubmoduleDecl, token.SingleImport:
		span := tok.Name
		out.Name = tok.NameText()
		out.NameSpan = &span
	case token.MultiImport:
		span := tok.Parent
		out.Parent = tok.ParentText()
		out.NameSpan = &span
		out.Names = tok.NameTexts()
		out.Spans = tok.Names
	case token.PlainLine:
		span := tok.Trimmed
		out.Trimmed = &span
	case token.Block:
		out.Name = tok.Module
		for _, child := range tok.Children {
			out.Children = append(out.Children, NewTokenOutput(child))
		}
	}
	return out
}

// FormatTokensJSON writes tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, NewTokenOutput(tok))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// BundleOutput is the JSON form of a loaded bundle.
type BundleOutput struct {
	Entry  string        `json:"entry"`
	Stats  token.Stats   `json:"stats"`
	Tokens []TokenOutput `json:"tokens"`
}

// FormatBundleJSON writes a whole token tree together with its summary.
func FormatBundleJSON(w io.Writer, entry string, tokens []token.Token) error {
	out := BundleOutput{Entry: entry, Stats: token.Collect(tokens), Tokens: make([]TokenOutput, 0, len(tokens))}
	for _, tok := range tokens {
		out.Tokens = append(out.Tokens, NewTokenOutput(tok))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
