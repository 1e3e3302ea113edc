package token

import "errors"

// SkipBlock may be returned by a WalkFunc visiting a Block to skip its children.
var SkipBlock = errors.New("skip block")

// WalkFunc is called for every token of a tree. scope is the slash-separated
// module path of the block containing tok ("" for the root file).
type WalkFunc func(scope string, depth int, tok Token) error

// Walk visits tokens depth-first in output order.
func Walk(tokens []Token, fn WalkFunc) error {
	err := walk("", 0, tokens, fn)
	if errors.Is(err, SkipBlock) {
		return nil
	}
	return err
}

func walk(scope string, depth int, tokens []Token, fn WalkFunc) error {
	for _, tok := range tokens {
		err := fn(scope, depth, tok)
		if err != nil {
			if errors.Is(err, SkipBlock) && tok.Kind == Block {
				continue
			}
			return err
		}
		if tok.Kind != Block {
			continue
		}
		child := tok.Module
		if scope != "" {
			child = scope + "/" + tok.Module
		}
		if err := walk(child, depth+1, tok.Children, fn); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarises a token tree.
type Stats struct {
	Blocks  int `json:"blocks"`
	Lines   int `json:"lines"`
	Imports int `json:"imports"`
	Depth   int `json:"depth"`
}

// Collect counts blocks, emitted source lines and imports of a tree.
func Collect(tokens []Token) Stats {
	var st Stats
	_ = Walk(tokens, func(_ string, depth int, tok Token) error {
		if depth > st.Depth {
			st.Depth = depth
		}
		switch {
		case tok.Kind == Block:
			st.Blocks++
		case tok.HasLine():
			st.Lines++
			if tok.IsImport() {
				st.Imports++
			}
		}
		return nil
	})
	return st
}

// CountBlocks returns the number of Block tokens at any depth.
func CountBlocks(tokens []Token) int { return Collect(tokens).Blocks }

// CountLines returns the number of line-backed tokens at any depth.
func CountLines(tokens []Token) int { return Collect(tokens).Lines }
