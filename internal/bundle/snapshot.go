package bundle

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"modbundle/internal/lexer"
	"modbundle/internal/token"
)

// snapshotSchemaVersion must be bumped whenever Snapshot or token.Token changes shape.
const snapshotSchemaVersion uint16 = 1

// ErrSnapshotSchema reports a snapshot written by an incompatible version.
var ErrSnapshotSchema = errors.New("unsupported snapshot schema")

// Snapshot is the on-disk form of a loaded bundle.
type Snapshot struct {
	Schema             uint16        `msgpack:"schema"`
	Entry              string        `msgpack:"entry"`
	Syntax             lexer.Syntax  `msgpack:"syntax"`
	PreserveVisibility bool          `msgpack:"preserve_visibility,omitempty"`
	Tokens             []token.Token `msgpack:"tokens"`
}

// Snapshot returns the serialisable form of the loaded tree.
func (b *Bundle) Snapshot() (*Snapshot, error) {
	if !b.loaded {
		return nil, ErrNotLoaded
	}
	return &Snapshot{
		Schema:             snapshotSchemaVersion,
		Entry:              b.entry,
		Syntax:             b.Syntax(),
		PreserveVisibility: b.opts.PreserveVisibility,
		Tokens:             b.tokens,
	}, nil
}

// SaveSnapshot encodes the loaded tree to w as msgpack.
func (b *Bundle) SaveSnapshot(w io.Writer) error {
	snap, err := b.Snapshot()
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot decodes a snapshot into a loaded Bundle. The returned Bundle
// has no resolver; calling Load on it fails.
func LoadSnapshot(r io.Reader) (*Bundle, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotSchema, snap.Schema, snapshotSchemaVersion)
	}
	cls, err := lexer.NewClassifier(snap.Syntax)
	if err != nil {
		return nil, fmt.Errorf("snapshot syntax: %w", err)
	}
	for i := range snap.Tokens {
		if err := checkSpans(snap.Tokens[i]); err != nil {
			return nil, err
		}
	}
	b := New(snap.Entry, nil, Options{Classifier: cls, PreserveVisibility: snap.PreserveVisibility})
	b.tokens, b.loaded = snap.Tokens, true
	return b, nil
}

func checkSpans(tok token.Token) error {
	if !tok.SpansValid() {
		return fmt.Errorf("decode snapshot: %s token has spans outside its line %q", tok.Kind, tok.Line)
	}
	for _, child := range tok.Children {
		if err := checkSpans(child); err != nil {
			return err
		}
	}
	return nil
}
