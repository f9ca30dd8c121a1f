package types

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes the two failure classes of the reader.
type ErrorKind int

const (
	// KindIO means the byte source failed or the path could not be opened.
	KindIO ErrorKind = iota
	// KindParse means the input could not be accounted for.
	KindParse
)

// String returns the human-readable name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type returned by the reader.
//
// Parse errors carry a Reason naming the offending field or rule and, when
// known, the 1-based input Line. I/O errors wrap the underlying error in Err.
type Error struct {
	Err    error
	Reason string
	Line   int
	Kind   ErrorKind
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		if e.Reason != "" {
			return fmt.Sprintf("io error: %s: %v", e.Reason, e.Err)
		}
		return fmt.Sprintf("io error: %v", e.Err)
	default:
		if e.Line > 0 {
			return fmt.Sprintf("parse error: line %d: %s", e.Line, e.Reason)
		}
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewParseError returns a KindParse error with the given reason.
func NewParseError(reason string) *Error {
	return &Error{Kind: KindParse, Reason: reason}
}

// NewIOError wraps err as a KindIO error. what describes the operation.
func NewIOError(what string, err error) *Error {
	return &Error{Kind: KindIO, Reason: what, Err: err}
}

// AtLine returns a copy of e bound to the given input line.
func (e *Error) AtLine(line int) *Error {
	c := *e
	c.Line = line
	return &c
}

// IsParseError reports whether err is, or wraps, a KindParse *Error.
func IsParseError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindParse
}

// IsIOError reports whether err is, or wraps, a KindIO *Error.
func IsIOError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindIO
}

// Warning represents a line dropped by a lenient parse.
//
// The message is the same reason strict mode would have failed with, so
// callers can audit what a lenient parse skipped.
type Warning struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}
