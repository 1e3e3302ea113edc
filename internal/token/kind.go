package token

import "fmt"

// Kind represents the category of a classified line.
type Kind uint8

const (
	// Invalid is the zero Kind; no classifier produces it.
	Invalid Kind = iota
	// SubmoduleDecl declares a child module by name, e.g. `pub mod game;`.
	SubmoduleDecl
	// SingleImport imports exactly one path, e.g. `use std::io;`.
	SingleImport
	// MultiImport imports a brace group, e.g. `use std::{fmt, io};`.
	MultiImport
	// Block is an inlined submodule with its own children.
	Block
	// PlainLine is any line without structural meaning.
	PlainLine
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	SubmoduleDecl: "SubmoduleDecl",
	SingleImport:  "SingleImport",
	MultiImport:   "MultiImport",
	Block:         "Block",
	PlainLine:     "PlainLine",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && Kind(k) != Invalid {
			return Kind(k), nil
		}
	}
	return Invalid, fmt.Errorf("unknown token kind %q", s)
}
