package lexer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Syntax names the keywords the classifier recognises.
// Zero fields fall back to the Rust-like defaults.
type Syntax struct {
	Visibility string `toml:"visibility" json:"visibility"`
	Declare    string `toml:"declare" json:"declare"`
	Import     string `toml:"import" json:"import"`
	Separator  string `toml:"separator" json:"separator"`
}

// DefaultSyntax returns `pub` / `mod` / `use` with `::` path separators.
func DefaultSyntax() Syntax {
	return Syntax{
		Visibility: "pub",
		Declare:    "mod",
		Import:     "use",
		Separator:  "::",
	}
}

// WithDefaults fills empty fields from DefaultSyntax.
func (s Syntax) WithDefaults() Syntax {
	def := DefaultSyntax()
	if strings.TrimSpace(s.Visibility) == "" {
		s.Visibility = def.Visibility
	}
	if strings.TrimSpace(s.Declare) == "" {
		s.Declare = def.Declare
	}
	if strings.TrimSpace(s.Import) == "" {
		s.Import = def.Import
	}
	if s.Separator == "" {
		s.Separator = def.Separator
	}
	return s
}

var keywordRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that keywords are bare words and the separator is usable.
func (s Syntax) Validate() error {
	for _, kw := range []struct{ field, value string }{
		{"visibility", s.Visibility},
		{"declare", s.Declare},
		{"import", s.Import},
	} {
		if !keywordRe.MatchString(kw.value) {
			return fmt.Errorf("syntax: %s keyword %q is not an identifier", kw.field, kw.value)
		}
	}
	if s.Declare == s.Import {
		return fmt.Errorf("syntax: declare and import keywords must differ (both %q)", s.Declare)
	}
	if s.Separator == "" || strings.ContainsAny(s.Separator, " \t{},;") {
		return errors.New("syntax: separator must be non-empty and free of whitespace, braces, commas and semicolons")
	}
	return nil
}

// BlockHeader renders the opening line of an inlined module, without the newline.
func (s Syntax) BlockHeader(module string, public bool) string {
	if public {
		return s.Visibility + " " + s.Declare + " " + module + "{"
	}
	return s.Declare + " " + module + "{"
}

const identPattern = `[A-Za-z_][A-Za-z0-9_]*`

type patterns struct {
	decl   *regexp.Regexp
	single *regexp.Regexp
	multi  *regexp.Regexp
}

func compilePatterns(s Syntax) (patterns, error) {
	vis := regexp.QuoteMeta(s.Visibility)
	decl := regexp.QuoteMeta(s.Declare)
	imp := regexp.QuoteMeta(s.Import)
	sep := regexp.QuoteMeta(s.Separator)
	path := `(?:\w+` + sep + `)*\w+`

	sources := [...]string{
		`^\s*(?:(?P<vis>` + vis + `)\s+)?` + decl + `\s+(?P<name>` + identPattern + `)\s*;`,
		`^\s*` + imp + `\s+(?P<path>` + path + `)\s*;`,
		`^\s*` + imp + `\s+(?P<parent>` + path + `)` + sep + `\{(?P<names>.+)\}\s*;`,
	}
	var compiled [len(sources)]*regexp.Regexp
	for i, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return patterns{}, fmt.Errorf("syntax: compile %q: %w", src, err)
		}
		compiled[i] = re
	}
	return patterns{decl: compiled[0], single: compiled[1], multi: compiled[2]}, nil
}
