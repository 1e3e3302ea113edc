package source

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty input", input: "", want: nil},
		{name: "single line no newline", input: "mod game;", want: []string{"mod game;"}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\n\nb", want: []string{"a", "", "", "b"}},
		{name: "only newline", input: "\n", want: []string{""}},
		{name: "crlf normalized", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "lone cr kept", input: "a\rb\n", want: []string{"a\rb"}},
		{name: "indentation preserved", input: "    test: i32,  \n", want: []string{"    test: i32,  "}},
		{name: "bom stripped", input: "\uFEFFuse std::io;\n", want: []string{"use std::io;"}},
		{name: "bom only at start", input: "a\n\uFEFFb", want: []string{"a", "\uFEFFb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadLines: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

type failingReader struct {
	data string
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		return copy(p, r.data), nil
	}
	return 0, r.err
}

func TestLineReader_PropagatesReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	lr := NewLineReader(&failingReader{data: "first\nsecond", err: boom})

	line, ok := lr.Next()
	if !ok || line != "first" {
		t.Fatalf("Next() = %q, %v; want \"first\", true", line, ok)
	}
	if _, ok := lr.Next(); ok {
		t.Fatal("expected Next to stop on read error")
	}
	if !errors.Is(lr.Err(), boom) {
		t.Fatalf("Err() = %v, want %v", lr.Err(), boom)
	}
	if _, ok := lr.Next(); ok {
		t.Fatal("Next after failure must keep returning false")
	}
}

func TestLineReader_EOFIsNotAnError(t *testing.T) {
	lr := NewLineReader(strings.NewReader("x"))
	for {
		if _, ok := lr.Next(); !ok {
			break
		}
	}
	if err := lr.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}
