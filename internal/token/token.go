// Package token provides the positional string primitives used to split a
// CUE sheet line into its arguments.
//
// A Reader walks a single, already trimmed line. Every primitive consumes the
// run of whitespace that follows what it returns, so consecutive calls read
// consecutive arguments.
package token

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reader reads tokens from one line.
type Reader struct {
	s   string
	pos int
}

// NewReader returns a Reader positioned at the start of line.
//
// Leading whitespace is not skipped; callers pass a trimmed line.
func NewReader(line string) *Reader {
	return &Reader{s: line}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.s) - r.pos
}

// Rest returns the unread remainder without consuming it.
func (r *Reader) Rest() string {
	return r.s[r.pos:]
}

// NextToken consumes characters up to the next whitespace and returns them.
//
// Returns "" when the reader is exhausted or positioned on whitespace.
func (r *Reader) NextToken() string {
	start := r.pos
	for r.pos < len(r.s) {
		c, size := utf8.DecodeRuneInString(r.s[r.pos:])
		if unicode.IsSpace(c) {
			break
		}
		r.pos += size
	}
	tok := r.s[start:r.pos]
	r.skipSpace()
	return tok
}

// NextString reads a bare word or a double-quoted string.
//
// A quoted string runs to the next unescaped '"'; inside it a backslash
// escapes the following character. The returned value has its surrounding
// quotes removed and every \" replaced by ". Fails with message when the
// reader is exhausted.
func (r *Reader) NextString(message string) (string, error) {
	if r.pos >= len(r.s) {
		return "", errors.New(message)
	}
	if r.s[r.pos] != '"' {
		return r.NextToken(), nil
	}

	start := r.pos
	r.pos++ // opening quote
	escaped := false
	for r.pos < len(r.s) {
		// '"' and '\\' are ASCII and never occur inside a multi-byte
		// sequence, so stepping by byte is safe here.
		c := r.s[r.pos]
		r.pos++
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			break
		}
	}
	raw := r.s[start:r.pos]
	r.skipSpace()
	return Unescape(raw), nil
}

// NextText reads a quoted string, or the unquoted remainder of the line.
//
// It is used for trailing free-text arguments such as TITLE or a REM value,
// where an unquoted argument extends to end of line.
func (r *Reader) NextText(message string) (string, error) {
	if r.pos >= len(r.s) {
		return "", errors.New(message)
	}
	if r.s[r.pos] == '"' {
		return r.NextString(message)
	}
	rest := strings.TrimRightFunc(r.s[r.pos:], unicode.IsSpace)
	r.pos = len(r.s)
	return rest, nil
}

// NextValues consumes the remainder and splits it on runs of whitespace.
func (r *Reader) NextValues() []string {
	values := strings.Fields(r.s[r.pos:])
	r.pos = len(r.s)
	return values
}

func (r *Reader) skipSpace() {
	for r.pos < len(r.s) {
		c, size := utf8.DecodeRuneInString(r.s[r.pos:])
		if !unicode.IsSpace(c) {
			return
		}
		r.pos += size
	}
}

// Unescape removes one pair of surrounding double quotes, if and only if
// both are present, and replaces each \" with ".
//
// A string with no surrounding quotes and no \" is returned unchanged.
func Unescape(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}
