// Package bundle inlines a tree of module files into a single token tree and
// writes it back out as one source file.
//
// A Bundle is driven in two steps: Load resolves the entry module and every
// module it declares, depth-first in declaration order, then Write serialises
// the resulting tree. A Bundle is not safe for concurrent use.
package bundle

import (
	"github.com/charmbracelet/log"

	"modbundle/internal/lexer"
	"modbundle/internal/project"
	"modbundle/internal/token"
)

// Options tune loading and writing.
type Options struct {
	// Classifier recognises structural lines; nil means lexer.Default().
	Classifier *lexer.Classifier
	// PreserveVisibility keeps the declared visibility of inlined modules.
	// By default every inlined block is written as public.
	PreserveVisibility bool
	// Logger receives per-module debug messages; nil disables them.
	Logger *log.Logger
}

// Bundle holds the entry module name, its resolver and, after a successful
// Load, the token tree.
type Bundle struct {
	entry    string
	resolver project.Resolver
	opts     Options
	tokens   []token.Token
	loaded   bool
}

// New creates an unloaded Bundle.
func New(entry string, resolver project.Resolver, opts Options) *Bundle {
	if opts.Classifier == nil {
		opts.Classifier = lexer.Default()
	}
	return &Bundle{entry: entry, resolver: resolver, opts: opts}
}

// Entry returns the entry module name.
func (b *Bundle) Entry() string { return b.entry }

// Loaded reports whether the last Load succeeded.
func (b *Bundle) Loaded() bool { return b.loaded }

// Tokens returns the loaded token tree, or nil before a successful Load.
// The slice is shared; callers must not modify it.
func (b *Bundle) Tokens() []token.Token { return b.tokens }

// Syntax returns the keyword set used to classify and write this bundle.
func (b *Bundle) Syntax() lexer.Syntax { return b.opts.Classifier.Syntax() }

// Stats summarises the loaded tree.
func (b *Bundle) Stats() token.Stats { return token.Collect(b.tokens) }
