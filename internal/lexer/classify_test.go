package lexer_test

import (
	"reflect"
	"strings"
	"testing"

	"modbundle/internal/lexer"
	"modbundle/internal/source"
	"modbundle/internal/token"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want token.Token
	}{
		{
			name: "pub mod",
			line: "pub mod game;",
			want: token.NewSubmoduleDecl("pub mod game;", span(8, 4), true),
		},
		{
			name: "private mod",
			line: "mod test_this;",
			want: token.NewSubmoduleDecl("mod test_this;", span(4, 9), false),
		},
		{
			name: "indented mod with trailing comment",
			line: "    mod inner; // nested",
			want: token.NewSubmoduleDecl("    mod inner; // nested", span(8, 5), false),
		},
		{
			name: "single use",
			line: "use std::io::Buf;",
			want: token.NewSingleImport("use std::io::Buf;", span(4, 12)),
		},
		{
			name: "single use bare",
			line: "use std::io;",
			want: token.NewSingleImport("use std::io;", span(4, 7)),
		},
		{
			name: "multi use",
			line: "use std::{collections::HashSet, io::BufWriter};",
			want: token.NewMultiImport(
				"use std::{collections::HashSet, io::BufWriter};",
				span(4, 3),
				[]source.LineSpan{span(10, 20), span(32, 13)},
			),
		},
		{
			name: "multi use single name",
			line: "use std::{BufReader};",
			want: token.NewMultiImport("use std::{BufReader};", span(4, 3), []source.LineSpan{span(10, 9)}),
		},
		{
			name: "multi use long prefix",
			line: "use game::model::{Action, Player, Round};",
			want: token.NewMultiImport(
				"use game::model::{Action, Player, Round};",
				span(4, 11),
				[]source.LineSpan{span(18, 6), span(26, 6), span(34, 5)},
			),
		},
		{
			name: "other line",
			line: "   class Turn  ",
			want: token.NewPlainLine("   class Turn  ", span(3, 10)),
		},
		{
			name: "use without terminator",
			line: "use std::fs::{File}",
			want: token.NewPlainLine("use std::fs::{File}", span(0, 19)),
		},
		{
			name: "inline module body",
			line: "mod tests {",
			want: token.NewPlainLine("mod tests {", span(0, 11)),
		},
		{
			name: "pub use is not an import",
			line: "pub use game::Action;",
			want: token.NewPlainLine("pub use game::Action;", span(0, 21)),
		},
		{
			name: "restricted visibility is not a declaration",
			line: "pub(crate) mod game;",
			want: token.NewPlainLine("pub(crate) mod game;", span(0, 20)),
		},
		{
			name: "empty line",
			line: "",
			want: token.NewPlainLine("", span(0, 0)),
		},
		{
			name: "whitespace only",
			line: " \t  ",
			want: token.NewPlainLine(" \t  ", span(0, 0)),
		},
		{
			name: "empty brace group",
			line: "use std::{};",
			want: token.NewPlainLine("use std::{};", span(0, 12)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexer.Classify(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Classify(%q)\n got  %+v\n want %+v", tt.line, got, tt.want)
			}
			if !got.SpansValid() {
				t.Fatalf("Classify(%q) produced out of range spans: %+v", tt.line, got)
			}
		})
	}
}

func TestClassifyPlainLineTrimsLikeTrimSpace(t *testing.T) {
	lines := []string{
		"fn main() {",
		"    // game loop",
		"\t}\t",
		"macro_rules! parse_input {",
		" **/",
		"enum Test {",
		"    One,   ",
		"   x ",
	}
	for _, line := range lines {
		tok := lexer.Classify(line)
		if tok.Kind != token.PlainLine {
			t.Fatalf("Classify(%q).Kind = %v, want PlainLine", line, tok.Kind)
		}
		if got, want := tok.TrimmedText(), strings.TrimSpace(line); got != want {
			t.Errorf("TrimmedText(%q) = %q, want %q", line, got, want)
		}
	}
}

func TestClassifyImportProperties(t *testing.T) {
	paths := []string{"a", "std::io", "crate::game::model::Round", "x1::_y"}
	for _, p := range paths {
		line := "use " + p + ";"
		tok := lexer.Classify(line)
		if tok.Kind != token.SingleImport || tok.NameText() != p {
			t.Errorf("Classify(%q) = %v %q, want SingleImport %q", line, tok.Kind, tok.NameText(), p)
		}
	}

	groups := []struct {
		prefix string
		names  []string
	}{
		{"std", []string{"fmt::Display", "io", "str::FromStr"}},
		{"game", []string{"Action"}},
		{"a::b::c", []string{"d", "e", "f", "g"}},
	}
	for _, g := range groups {
		line := "use " + g.prefix + "::{" + strings.Join(g.names, ", ") + "};"
		tok := lexer.Classify(line)
		if tok.Kind != token.MultiImport {
			t.Fatalf("Classify(%q).Kind = %v, want MultiImport", line, tok.Kind)
		}
		if tok.ParentText() != g.prefix {
			t.Errorf("ParentText(%q) = %q, want %q", line, tok.ParentText(), g.prefix)
		}
		if !reflect.DeepEqual(tok.NameTexts(), g.names) {
			t.Errorf("NameTexts(%q) = %q, want %q", line, tok.NameTexts(), g.names)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// a line that could be read both ways goes to the earlier rule
	c := lexer.MustClassifier(lexer.Syntax{Declare: "use", Import: "import"})
	tok := c.Classify("use game;")
	if tok.Kind != token.SubmoduleDecl {
		t.Fatalf("Kind = %v, want SubmoduleDecl", tok.Kind)
	}
}

func TestCustomSyntax(t *testing.T) {
	c, err := lexer.NewClassifier(lexer.Syntax{
		Visibility: "export",
		Declare:    "module",
		Import:     "import",
		Separator:  ".",
	})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	decl := c.Classify("export module net;")
	if decl.Kind != token.SubmoduleDecl || !decl.Public || decl.NameText() != "net" {
		t.Fatalf("decl = %+v", decl)
	}
	single := c.Classify("import a.b.c;")
	if single.Kind != token.SingleImport || single.NameText() != "a.b.c" {
		t.Fatalf("single = %+v", single)
	}
	multi := c.Classify("import a.b.{c, d};")
	if multi.Kind != token.MultiImport || multi.ParentText() != "a.b" {
		t.Fatalf("multi = %+v", multi)
	}
	if got := c.Classify("mod game;"); got.Kind != token.PlainLine {
		t.Fatalf("default keywords must not match a custom syntax: %v", got.Kind)
	}
	if got := c.Syntax().BlockHeader("net", true); got != "export module net{" {
		t.Fatalf("BlockHeader = %q", got)
	}
}

func TestNewClassifierRejectsBadSyntax(t *testing.T) {
	bad := []lexer.Syntax{
		{Declare: "mod x"},
		{Import: "mod"},
		{Separator: "{"},
		{Visibility: "1pub"},
	}
	for _, s := range bad {
		if _, err := lexer.NewClassifier(s); err == nil {
			t.Errorf("NewClassifier(%+v) succeeded, want error", s)
		}
	}
}

func TestDefaultSyntaxBlockHeader(t *testing.T) {
	s := lexer.Default().Syntax()
	if got := s.BlockHeader("game", true); got != "pub mod game{" {
		t.Errorf("public header = %q", got)
	}
	if got := s.BlockHeader("game", false); got != "mod game{" {
		t.Errorf("private header = %q", got)
	}
}
