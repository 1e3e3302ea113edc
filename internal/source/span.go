package source

import (
	"fmt"

	"fortio.org/safecast"
)

// LineSpan references a substring of its owning line without copying it.
// Offsets are in bytes. Invariant: Start+Len <= len(line).
type LineSpan struct {
	Start uint32 `json:"start" msgpack:"s"`
	Len   uint32 `json:"len" msgpack:"l"`
}

// NewLineSpan builds a span from int offsets, panicking if they do not fit uint32.
func NewLineSpan(start, length int) LineSpan {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	l, err := safecast.Conv[uint32](length)
	if err != nil {
		panic(fmt.Errorf("span length overflow: %w", err))
	}
	return LineSpan{Start: s, Len: l}
}

// End returns the exclusive end offset.
func (s LineSpan) End() uint32 {
	return s.Start + s.Len
}

func (s LineSpan) Empty() bool {
	return s.Len == 0
}

// Shift moves the span right by n bytes. Used to rebase spans computed
// against a substring onto the full line.
func (s LineSpan) Shift(n uint32) LineSpan {
	return LineSpan{Start: s.Start + n, Len: s.Len}
}

// Resolve returns the referenced substring of line.
// The caller guarantees that line is the string the span was taken from.
func (s LineSpan) Resolve(line string) string {
	return line[s.Start:s.End()]
}

// Valid reports whether the span fits inside line.
func (s LineSpan) Valid(line string) bool {
	n, err := safecast.Conv[uint32](len(line))
	if err != nil {
		return false
	}
	return s.End() >= s.Start && s.End() <= n
}

func (s LineSpan) String() string {
	return fmt.Sprintf("%d+%d", s.Start, s.Len)
}
