package bundle

import (
	"bufio"
	"io"

	"modbundle/internal/lexer"
	"modbundle/internal/token"
)

// Write serialises the loaded tree to w.
func (b *Bundle) Write(w io.Writer) error {
	if !b.loaded {
		return ErrNotLoaded
	}
	return WriteTokens(w, b.tokens, b.Syntax())
}

// WriteTokens writes a token tree using syntax for block headers. Line-backed
// tokens are written verbatim followed by "\n"; a Block becomes
//
//	[VIS ]DECL name{
//	...children...
//	}
//
// Nothing is re-indented.
func WriteTokens(w io.Writer, tokens []token.Token, syntax lexer.Syntax) error {
	bw := bufio.NewWriter(w)
	if err := writeTokens(bw, tokens, syntax.WithDefaults()); err != nil {
		return sinkError(err)
	}
	if err := bw.Flush(); err != nil {
		return sinkError(err)
	}
	return nil
}

func writeTokens(bw *bufio.Writer, tokens []token.Token, syntax lexer.Syntax) error {
	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind != token.Block {
			if _, err := bw.WriteString(tok.Line); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			continue
		}
		if _, err := bw.WriteString(syntax.BlockHeader(tok.Module, tok.Public)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		if err := writeTokens(bw, tok.Children, syntax); err != nil {
			return err
		}
		if _, err := bw.WriteString("}\n"); err != nil {
			return err
		}
	}
	return nil
}

func sinkError(err error) error {
	return &WriteError{Err: err}
}
