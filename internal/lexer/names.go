package lexer

import (
	"iter"

	"modbundle/internal/source"
)

// NameSplitter walks a comma separated list and yields one span per field.
// Spaces are skipped while a field is still empty; nothing else is trimmed.
// A trailing comma does not produce an empty final field, but an empty field
// between two commas does.
type NameSplitter struct {
	text  string
	start int
	size  int
}

func NewNameSplitter(text string) *NameSplitter {
	return &NameSplitter{text: text}
}

// Next returns the next field span relative to the splitter's text.
func (s *NameSplitter) Next() (source.LineSpan, bool) {
	for {
		i := s.start + s.size
		if i >= len(s.text) {
			if s.size > 0 {
				return s.yield(), true
			}
			return source.LineSpan{}, false
		}
		switch c := s.text[i]; {
		case c == ',':
			return s.yield(), true
		case c == ' ' && s.size == 0:
			s.start++
		default:
			s.size++
		}
	}
}

func (s *NameSplitter) yield() source.LineSpan {
	sp := source.NewLineSpan(s.start, s.size)
	s.start += s.size + 1
	s.size = 0
	return sp
}

// Names returns a lazy sequence of field spans of text.
// Each iteration starts a fresh splitter.
func Names(text string) iter.Seq[source.LineSpan] {
	return func(yield func(source.LineSpan) bool) {
		sp := NewNameSplitter(text)
		for {
			span, ok := sp.Next()
			if !ok || !yield(span) {
				return
			}
		}
	}
}
