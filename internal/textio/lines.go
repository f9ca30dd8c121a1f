// Package textio turns a byte stream into numbered text lines.
package textio

import (
	"bufio"
	"io"
	"strings"
)

const utf8BOM = "\xef\xbb\xbf"

// LineReader yields lines from an io.Reader.
//
// A leading UTF-8 byte order mark is dropped; every other byte is passed
// through as read, valid UTF-8 or not. Lines are split on '\n'; a trailing
// '\r' is removed. A final line without terminator is returned; an empty
// remainder after the last terminator is not.
type LineReader struct {
	r    *bufio.Reader
	err  error
	line int
}

// NewLineReader returns a LineReader reading from r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r: bufio.NewReader(r),
	}
}

// Next returns the next line. ok is false at end of input or on error;
// check Err to tell them apart.
func (lr *LineReader) Next() (line string, ok bool) {
	if lr.err != nil {
		return "", false
	}

	s, err := lr.r.ReadString('\n')
	if lr.line == 0 {
		s = strings.TrimPrefix(s, utf8BOM)
	}
	if err != nil {
		if err != io.EOF {
			lr.err = err
			return "", false
		}
		if s == "" {
			return "", false
		}
	}

	lr.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true
}

// Line returns the 1-based number of the line last returned by Next.
func (lr *LineReader) Line() int {
	return lr.line
}

// Err returns the first non-EOF error encountered.
func (lr *LineReader) Err() error {
	return lr.err
}
