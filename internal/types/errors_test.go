package types

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "parse with line",
			err:      NewParseError("missing TRACK number").AtLine(7),
			contains: []string{"parse error", "line 7", "missing TRACK number"},
		},
		{
			name:     "parse without line",
			err:      NewParseError("bad INDEX timestamp"),
			contains: []string{"parse error", "bad INDEX timestamp"},
		},
		{
			name:     "io",
			err:      NewIOError("open disc.cue", fs.ErrNotExist),
			contains: []string{"io error", "open disc.cue", "not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestError_AtLineCopies(t *testing.T) {
	base := NewParseError("x")
	bound := base.AtLine(3)

	if base.Line != 0 {
		t.Errorf("AtLine mutated the receiver: Line = %d", base.Line)
	}
	if bound.Line != 3 {
		t.Errorf("bound.Line = %d, want 3", bound.Line)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := fmt.Errorf("parse disc.cue: %w", NewIOError("read", fs.ErrPermission))

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see through to the wrapped cause")
	}
	if !IsIOError(err) {
		t.Error("IsIOError should be true")
	}
	if IsParseError(err) {
		t.Error("IsParseError should be false")
	}
}

func TestIsParseError(t *testing.T) {
	if !IsParseError(fmt.Errorf("wrapped: %w", NewParseError("x"))) {
		t.Error("IsParseError should be true for a wrapped parse error")
	}
	if IsParseError(errors.New("plain")) {
		t.Error("IsParseError should be false for a plain error")
	}
	if IsParseError(nil) {
		t.Error("IsParseError(nil) should be false")
	}
}

func TestErrorKind_String(t *testing.T) {
	if KindIO.String() != "io" || KindParse.String() != "parse" {
		t.Errorf("unexpected kind names: %s %s", KindIO, KindParse)
	}
	if got := ErrorKind(9).String(); got != "ErrorKind(9)" {
		t.Errorf("unknown kind = %q", got)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Line: 4, Message: "unknown command FOO"}
	if got := w.String(); got != "line 4: unknown command FOO" {
		t.Errorf("String() = %q", got)
	}
	if got := (Warning{Message: "m"}).String(); got != "m" {
		t.Errorf("String() without line = %q", got)
	}
}
