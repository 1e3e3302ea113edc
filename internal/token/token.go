package token

import (
	"modbundle/internal/source"
)

// Token is one element of a token tree. Which fields are meaningful depends on Kind:
//
//	SubmoduleDecl  Line, Name, Public
//	SingleImport   Line, Name
//	MultiImport    Line, Parent, Names
//	Block          Module, Public, Children
//	PlainLine      Line, Trimmed
type Token struct {
	Kind     Kind              `msgpack:"k"`
	Line     string            `msgpack:"t,omitempty"`
	Name     source.LineSpan   `msgpack:"n,omitempty"`
	Parent   source.LineSpan   `msgpack:"p,omitempty"`
	Names    []source.LineSpan `msgpack:"ns,omitempty"`
	Trimmed  source.LineSpan   `msgpack:"tr,omitempty"`
	Public   bool              `msgpack:"pub,omitempty"`
	Module   string            `msgpack:"m,omitempty"`
	Children []Token           `msgpack:"c,omitempty"`
}

// NewSubmoduleDecl builds a declaration token; name must resolve against line.
func NewSubmoduleDecl(line string, name source.LineSpan, public bool) Token {
	return Token{Kind: SubmoduleDecl, Line: line, Name: name, Public: public}
}

func NewSingleImport(line string, path source.LineSpan) Token {
	return Token{Kind: SingleImport, Line: line, Name: path}
}

func NewMultiImport(line string, parent source.LineSpan, names []source.LineSpan) Token {
	return Token{Kind: MultiImport, Line: line, Parent: parent, Names: names}
}

// NewBlock wraps the tokens of an inlined module.
func NewBlock(module string, public bool, children []Token) Token {
	return Token{Kind: Block, Module: module, Public: public, Children: children}
}

func NewPlainLine(line string, trimmed source.LineSpan) Token {
	return Token{Kind: PlainLine, Line: line, Trimmed: trimmed}
}

// HasLine reports whether the token carries original line text.
func (t Token) HasLine() bool {
	switch t.Kind {
	case SubmoduleDecl, SingleImport, MultiImport, PlainLine:
		return true
	default:
		return false
	}
}

// IsImport reports whether the token is a single or multi import.
func (t Token) IsImport() bool {
	return t.Kind == SingleImport || t.Kind == MultiImport
}

// NameText resolves the declared module name (SubmoduleDecl) or the imported
// path (SingleImport). For a Block it returns the module name.
func (t Token) NameText() string {
	switch t.Kind {
	case SubmoduleDecl, SingleImport:
		return t.Name.Resolve(t.Line)
	case Block:
		return t.Module
	default:
		return ""
	}
}

// ParentText resolves the path prefix of a MultiImport.
func (t Token) ParentText() string {
	if t.Kind != MultiImport {
		return ""
	}
	return t.Parent.Resolve(t.Line)
}

// NameTexts resolves every name listed in a MultiImport brace group, in order.
func (t Token) NameTexts() []string {
	if t.Kind != MultiImport {
		return nil
	}
	out := make([]string, 0, len(t.Names))
	for _, sp := range t.Names {
		out = append(out, sp.Resolve(t.Line))
	}
	return out
}

// TrimmedText resolves the whitespace-trimmed content of a PlainLine.
func (t Token) TrimmedText() string {
	if t.Kind != PlainLine {
		return ""
	}
	return t.Trimmed.Resolve(t.Line)
}

// SpansValid reports whether every span of a line-backed token fits its line.
func (t Token) SpansValid() bool {
	switch t.Kind {
	case SubmoduleDecl, SingleImport:
		return t.Name.Valid(t.Line)
	case MultiImport:
		if !t.Parent.Valid(t.Line) {
			return false
		}
		for _, sp := range t.Names {
			if !sp.Valid(t.Line) {
				return false
			}
		}
		return true
	case PlainLine:
		return t.Trimmed.Valid(t.Line)
	case Block:
		return true
	default:
		return false
	}
}
