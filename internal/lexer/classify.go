package lexer

import (
	"regexp"
	"strings"
	"unicode"

	"modbundle/internal/source"
	"modbundle/internal/token"
)

// Classifier turns lines into tokens for one Syntax.
// It holds only compiled patterns and is safe for concurrent use.
type Classifier struct {
	syntax   Syntax
	patterns patterns
}

// NewClassifier compiles the patterns for s (empty fields take defaults).
func NewClassifier(s Syntax) (*Classifier, error) {
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p, err := compilePatterns(s)
	if err != nil {
		return nil, err
	}
	return &Classifier{syntax: s, patterns: p}, nil
}

// MustClassifier is like NewClassifier but panics on error.
func MustClassifier(s Syntax) *Classifier {
	c, err := NewClassifier(s)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultClassifier = MustClassifier(DefaultSyntax())

// Default returns the shared classifier for DefaultSyntax.
func Default() *Classifier { return defaultClassifier }

// Classify classifies line with the default syntax.
func Classify(line string) token.Token {
	return defaultClassifier.Classify(line)
}

// Syntax returns the keywords this classifier was built for.
func (c *Classifier) Syntax() Syntax { return c.syntax }

// Classify never fails: lines matching no structural pattern become PlainLine.
// Precedence: submodule declaration, single import, multi import, plain line.
func (c *Classifier) Classify(line string) token.Token {
	if m := c.patterns.decl.FindStringSubmatchIndex(line); m != nil {
		_, public := group(c.patterns.decl, m, "vis")
		name, _ := group(c.patterns.decl, m, "name")
		return token.NewSubmoduleDecl(line, name, public)
	}

	if m := c.patterns.single.FindStringSubmatchIndex(line); m != nil {
		path, _ := group(c.patterns.single, m, "path")
		return token.NewSingleImport(line, path)
	}

	if m := c.patterns.multi.FindStringSubmatchIndex(line); m != nil {
		parent, _ := group(c.patterns.multi, m, "parent")
		list, _ := group(c.patterns.multi, m, "names")
		names := make([]source.LineSpan, 0, strings.Count(list.Resolve(line), ",")+1)
		for sp := range Names(list.Resolve(line)) {
			names = append(names, sp.Shift(list.Start))
		}
		return token.NewMultiImport(line, parent, names)
	}

	return token.NewPlainLine(line, trimmedSpan(line))
}

// group returns the span of a named capture and whether it participated in the match.
func group(re *regexp.Regexp, m []int, name string) (source.LineSpan, bool) {
	i := re.SubexpIndex(name)
	if i < 0 || m[2*i] < 0 {
		return source.LineSpan{}, false
	}
	return source.NewLineSpan(m[2*i], m[2*i+1]-m[2*i]), true
}

// trimmedSpan covers line without leading and trailing whitespace.
// Blank lines yield an empty span at offset 0.
func trimmedSpan(line string) source.LineSpan {
	left := strings.TrimLeftFunc(line, unicode.IsSpace)
	if left == "" {
		return source.LineSpan{}
	}
	trimmed := strings.TrimRightFunc(left, unicode.IsSpace)
	return source.NewLineSpan(len(line)-len(left), len(trimmed))
}
