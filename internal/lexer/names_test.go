package lexer_test

import (
	"reflect"
	"slices"
	"testing"

	"modbundle/internal/lexer"
	"modbundle/internal/source"
)

func span(start, length uint32) source.LineSpan {
	return source.LineSpan{Start: start, Len: length}
}

func TestNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []source.LineSpan
	}{
		{name: "single spaces", input: "a, bb, cccc", want: []source.LineSpan{span(0, 1), span(3, 2), span(7, 4)}},
		{name: "double space and none", input: "a,  bb,cccc", want: []source.LineSpan{span(0, 1), span(4, 2), span(7, 4)}},
		{name: "single field", input: "BufReader", want: []source.LineSpan{span(0, 9)}},
		{name: "empty input", input: "", want: nil},
		{name: "trailing comma", input: "a, b,", want: []source.LineSpan{span(0, 1), span(3, 1)}},
		{name: "trailing comma and space", input: "a, b, ", want: []source.LineSpan{span(0, 1), span(3, 1)}},
		{name: "empty middle field", input: "a,,b", want: []source.LineSpan{span(0, 1), span(2, 0), span(3, 1)}},
		{name: "trailing space kept", input: "a ,b", want: []source.LineSpan{span(0, 2), span(3, 1)}},
		{name: "tab not skipped", input: "a,\tb", want: []source.LineSpan{span(0, 1), span(2, 2)}},
		{name: "leading spaces", input: "  x", want: []source.LineSpan{span(2, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(lexer.Names(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Names(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNamesResolveToValues(t *testing.T) {
	for _, input := range []string{"a, bb, cccc", "a,  bb,cccc"} {
		var got []string
		for sp := range lexer.Names(input) {
			got = append(got, sp.Resolve(input))
		}
		want := []string{"a", "bb", "cccc"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Names(%q) resolved = %q, want %q", input, got, want)
		}
	}
}

func TestNamesIsRestartable(t *testing.T) {
	seq := lexer.Names("x, y")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !reflect.DeepEqual(first, second) || len(first) != 2 {
		t.Fatalf("iterations differ: %v vs %v", first, second)
	}

	// early break must not disturb a later run
	for range seq {
		break
	}
	if got := slices.Collect(seq); !reflect.DeepEqual(got, first) {
		t.Fatalf("after early break got %v, want %v", got, first)
	}
}

func TestNameSplitterExhausted(t *testing.T) {
	sp := lexer.NewNameSplitter("a")
	if s, ok := sp.Next(); !ok || s != span(0, 1) {
		t.Fatalf("first Next() = %v, %v", s, ok)
	}
	for i := 0; i < 3; i++ {
		if _, ok := sp.Next(); ok {
			t.Fatalf("Next() after end returned ok on call %d", i)
		}
	}
}
