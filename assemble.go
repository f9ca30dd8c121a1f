package cuesheet

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/simonhull/cuesheet/internal/command"
	"github.com/simonhull/cuesheet/internal/timestamp"
	"github.com/simonhull/cuesheet/internal/types"
)

// assembler builds a Disc one line at a time.
//
// The current file is always the last file of the disc and the current
// track the last track of that file. Indentation is ignored: a REM that
// follows a TRACK belongs to the track however it is indented.
type assembler struct {
	disc   *types.Disc
	logger *slog.Logger
	line   int
	strict bool
}

func newAssembler(o *parseOptions) *assembler {
	return &assembler{
		disc:   &types.Disc{},
		logger: o.log(),
		strict: o.strictParsing,
	}
}

func (a *assembler) currentFile() *types.File {
	if n := len(a.disc.Files); n > 0 {
		return &a.disc.Files[n-1]
	}
	return nil
}

func (a *assembler) currentTrack() *types.Track {
	f := a.currentFile()
	if f == nil {
		return nil
	}
	if n := len(f.Tracks); n > 0 {
		return &f.Tracks[n-1]
	}
	return nil
}

// feed tokenizes and applies one raw input line.
//
// A line that cannot be tokenized, such as a FILE with no path, is a parse
// error in both modes. Everything else that cannot be placed is an error
// only in strict mode.
func (a *assembler) feed(line int, raw string) error {
	a.line = line

	cmd, err := command.Tokenize(raw)
	if err != nil {
		a.trace(raw, "", err)
		if a.strict {
			return a.reject("bad line: " + reason(err))
		}
		return types.NewParseError("bad line: " + reason(err)).AtLine(line)
	}
	a.trace(raw, cmd.Keyword(), nil)

	return a.apply(cmd, raw)
}

func (a *assembler) apply(cmd command.Command, raw string) error {
	switch c := cmd.(type) {
	case command.Catalog:
		a.disc.Catalog = c.ID

	case command.CDTextFile:
		a.disc.CDTextFile = c.Path

	case command.Title:
		if t := a.currentTrack(); t != nil {
			t.Title = c.Text
		} else {
			a.disc.Title = c.Text
		}

	case command.Performer:
		if t := a.currentTrack(); t != nil {
			t.Performer = c.Name
		} else {
			a.disc.Performer = c.Name
		}

	case command.Songwriter:
		if t := a.currentTrack(); t != nil {
			t.Songwriter = c.Name
		} else {
			a.disc.Songwriter = c.Name
		}

	case command.Rem:
		comment := types.Comment{Key: c.Key, Value: c.Value}
		if t := a.currentTrack(); t != nil {
			t.Comments = append(t.Comments, comment)
		} else if f := a.currentFile(); f != nil {
			f.Comments = append(f.Comments, comment)
		} else {
			a.disc.Comments = append(a.disc.Comments, comment)
		}

	case command.File:
		a.disc.Files = append(a.disc.Files, types.File{Path: c.Path, Format: c.Format})

	case command.Track:
		f := a.currentFile()
		if f == nil {
			return a.reject("TRACK assigned to no FILE")
		}
		f.Tracks = append(f.Tracks, types.Track{Number: c.Number, Format: c.Mode})

	case command.Index:
		t := a.currentTrack()
		if t == nil {
			return a.reject("INDEX assigned to no TRACK")
		}
		offset, err := timestamp.Parse(c.Timestamp)
		if err != nil {
			return a.reject("bad INDEX timestamp: " + reason(err))
		}
		t.Indices = append(t.Indices, types.Index{Number: c.Number, Offset: offset})

	case command.Pregap:
		return a.setGap("PREGAP", c.Timestamp, func(t *types.Track, d time.Duration) { t.Pregap = &d })

	case command.Postgap:
		return a.setGap("POSTGAP", c.Timestamp, func(t *types.Track, d time.Duration) { t.Postgap = &d })

	case command.Flags:
		t := a.currentTrack()
		if t == nil {
			return a.reject("FLAGS assigned to no TRACK")
		}
		t.Flags = c.Flags

	case command.ISRC:
		t := a.currentTrack()
		if t == nil {
			return a.reject("ISRC assigned to no TRACK")
		}
		t.ISRC = c.Code

	case command.Unknown:
		if a.strict {
			return a.reject("unknown command: " + strings.TrimSpace(raw))
		}
		if t := a.currentTrack(); t != nil {
			t.Unknown = append(t.Unknown, c.Line)
		} else {
			a.disc.Unknown = append(a.disc.Unknown, c.Line)
		}

	case command.None:
		return a.reject("empty line")
	}

	return nil
}

func (a *assembler) setGap(keyword, ts string, set func(*types.Track, time.Duration)) error {
	t := a.currentTrack()
	if t == nil {
		return a.reject(keyword + " assigned to no TRACK")
	}
	d, err := timestamp.Parse(ts)
	if err != nil {
		return a.reject("bad " + keyword + " timestamp: " + reason(err))
	}
	set(t, d)
	return nil
}

// reject handles a line that cannot be accounted for: an error in strict
// mode, a warning otherwise.
func (a *assembler) reject(why string) error {
	if a.strict {
		return types.NewParseError("strict mode failure: " + why).AtLine(a.line)
	}
	a.disc.Warnings = append(a.disc.Warnings, types.Warning{Line: a.line, Message: why})
	a.logger.Debug("dropped line", "line", a.line, "reason", why)
	return nil
}

func (a *assembler) trace(raw, keyword string, err error) {
	if !a.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{"line", a.line, "text", raw}
	if keyword != "" {
		attrs = append(attrs, "keyword", keyword)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	a.logger.Debug("cue line", attrs...)
}

// reason extracts the bare reason from a parse error.
func reason(err error) string {
	var e *types.Error
	if errors.As(err, &e) && e.Kind == types.KindParse {
		return e.Reason
	}
	return err.Error()
}
