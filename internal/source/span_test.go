package source

import (
	"testing"
)

func TestLineSpan_Resolve(t *testing.T) {
	tests := []struct {
		name string
		line string
		span LineSpan
		want string
	}{
		{name: "prefix", line: "Hello, world", span: LineSpan{Start: 0, Len: 5}, want: "Hello"},
		{name: "suffix", line: "Hello, world", span: LineSpan{Start: 7, Len: 5}, want: "world"},
		{name: "empty span", line: "test", span: LineSpan{Start: 0, Len: 0}, want: ""},
		{name: "empty span at end", line: "test", span: LineSpan{Start: 4, Len: 0}, want: ""},
		{name: "whole line", line: "mod game;", span: LineSpan{Start: 0, Len: 9}, want: "mod game;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.span.Valid(tt.line) {
				t.Fatalf("span %v should be valid for %q", tt.span, tt.line)
			}
			if got := tt.span.Resolve(tt.line); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineSpan_Shift(t *testing.T) {
	span := NewLineSpan(3, 2)
	shifted := span.Shift(7)
	if shifted.Start != 10 || shifted.Len != 2 {
		t.Fatalf("Shift(7) = %+v, want {Start:10 Len:2}", shifted)
	}
	if span.Start != 3 {
		t.Fatalf("Shift mutated the receiver: %+v", span)
	}
	if shifted.End() != 12 {
		t.Errorf("End() = %d, want 12", shifted.End())
	}
}

func TestLineSpan_Valid(t *testing.T) {
	line := "abc"
	cases := []struct {
		span LineSpan
		want bool
	}{
		{LineSpan{Start: 0, Len: 3}, true},
		{LineSpan{Start: 3, Len: 0}, true},
		{LineSpan{Start: 2, Len: 2}, false},
		{LineSpan{Start: 4, Len: 0}, false},
	}
	for _, tc := range cases {
		if got := tc.span.Valid(line); got != tc.want {
			t.Errorf("%v.Valid(%q) = %v, want %v", tc.span, line, got, tc.want)
		}
	}
}

func TestNewLineSpan_PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative start")
		}
	}()
	_ = NewLineSpan(-1, 2)
}

func TestLineSpan_Empty(t *testing.T) {
	if !(LineSpan{Start: 5}).Empty() {
		t.Error("zero-length span should be empty")
	}
	if (LineSpan{Start: 0, Len: 1}).Empty() {
		t.Error("one-byte span should not be empty")
	}
	if got := (LineSpan{Start: 4, Len: 7}).String(); got != "4+7" {
		t.Errorf("String() = %q, want %q", got, "4+7")
	}
}
