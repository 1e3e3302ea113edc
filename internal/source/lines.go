package source

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const bom = "\uFEFF"

// LineReader yields the lines of a stream with "\n" and "\r\n" terminators removed.
// Empty lines are kept; a final terminator does not produce an extra empty line.
// A UTF-8 BOM at the very start of the stream is dropped.
type LineReader struct {
	r     *bufio.Reader
	first bool
	err   error
}

// NewLineReader wraps r. It does not take ownership of r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r), first: true}
}

// Next returns the next line. ok is false once the stream is exhausted or
// failed; Err reports the failure, if any.
func (lr *LineReader) Next() (line string, ok bool) {
	if lr.err != nil {
		return "", false
	}
	raw, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		lr.err = err
		return "", false
	}
	if raw == "" && err != nil {
		// EOF без хвоста: строк больше нет
		lr.err = io.EOF
		return "", false
	}
	if lr.first {
		raw = strings.TrimPrefix(raw, bom)
		lr.first = false
	}
	line = trimEOL(raw)
	if err != nil {
		lr.err = io.EOF
	}
	return line, true
}

// Err returns the first non-EOF error encountered by Next.
func (lr *LineReader) Err() error {
	if errors.Is(lr.err, io.EOF) {
		return nil
	}
	return lr.err
}

// ReadLines drains r into a slice of normalised lines.
func ReadLines(r io.Reader) ([]string, error) {
	lr := NewLineReader(r)
	var lines []string
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return lines, lr.Err()
}

// trimEOL снимает "\n" и предшествующий ему "\r"; одиночный "\r" не трогаем.
func trimEOL(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s
	}
	s = s[:len(s)-1]
	return strings.TrimSuffix(s, "\r")
}
