// Package command classifies a single CUE sheet line into a Command.
//
// Tokenize knows nothing about context: it never decides whether a command
// is legal where it appears, and it does not validate timestamps. That is
// the job of the assembler in the root package.
package command

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/simonhull/cuesheet/internal/token"
	"github.com/simonhull/cuesheet/internal/types"
)

// Command is one classified line. The concrete types below are the only
// implementations.
type Command interface {
	// Keyword returns the upper-case CUE keyword, or "" for None and Unknown.
	Keyword() string
	sealed()
}

// Rem is a comment line: REM key value.
type Rem struct {
	Key   string
	Value string
}

// Catalog is the disc's media catalog number.
type Catalog struct {
	ID string
}

// CDTextFile is the path of the disc's CD-Text file.
type CDTextFile struct {
	Path string
}

// Title is a disc or track title.
type Title struct {
	Text string
}

// Performer is a disc or track performer.
type Performer struct {
	Name string
}

// Songwriter is a disc or track songwriter.
type Songwriter struct {
	Name string
}

// File opens a new media file.
type File struct {
	Path   string
	Format string
}

// Flags sets a track's sub-code flags.
type Flags struct {
	Flags []string
}

// ISRC sets a track's recording code.
type ISRC struct {
	Code string
}

// Track opens a new track in the current file.
type Track struct {
	Number string
	Mode   string
}

// Pregap sets a track's pregap. Timestamp is unvalidated.
type Pregap struct {
	Timestamp string
}

// Postgap sets a track's postgap. Timestamp is unvalidated.
type Postgap struct {
	Timestamp string
}

// Index adds an index to the current track. Timestamp is unvalidated.
type Index struct {
	Number    string
	Timestamp string
}

// Unknown is a line whose keyword is not recognized. Line is the raw input.
type Unknown struct {
	Line string
}

// None is a blank line.
type None struct{}

func (Rem) Keyword() string        { return "REM" }
func (Catalog) Keyword() string    { return "CATALOG" }
func (CDTextFile) Keyword() string { return "CDTEXTFILE" }
func (Title) Keyword() string      { return "TITLE" }
func (Performer) Keyword() string  { return "PERFORMER" }
func (Songwriter) Keyword() string { return "SONGWRITER" }
func (File) Keyword() string       { return "FILE" }
func (Flags) Keyword() string      { return "FLAGS" }
func (ISRC) Keyword() string       { return "ISRC" }
func (Track) Keyword() string      { return "TRACK" }
func (Pregap) Keyword() string     { return "PREGAP" }
func (Postgap) Keyword() string    { return "POSTGAP" }
func (Index) Keyword() string      { return "INDEX" }
func (Unknown) Keyword() string    { return "" }
func (None) Keyword() string       { return "" }

func (Rem) sealed()        {}
func (Catalog) sealed()    {}
func (CDTextFile) sealed() {}
func (Title) sealed()      {}
func (Performer) sealed()  {}
func (Songwriter) sealed() {}
func (File) sealed()       {}
func (Flags) sealed()      {}
func (ISRC) sealed()       {}
func (Track) sealed()      {}
func (Pregap) sealed()     {}
func (Postgap) sealed()    {}
func (Index) sealed()      {}
func (Unknown) sealed()    {}
func (None) sealed()       {}

// Tokenize classifies one raw input line.
//
// The line is trimmed and its first token matched against the CUE keywords,
// ASCII case-insensitively. A blank line yields None; an unrecognized
// keyword yields Unknown carrying the raw line. A recognized keyword with
// missing arguments yields a parse error naming the field.
func Tokenize(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return None{}, nil
	}

	r := token.NewReader(trimmed)
	switch upperASCII(r.NextToken()) {
	case "REM":
		key := r.NextToken()
		if key == "" {
			return nil, missing("REM key")
		}
		value, err := r.NextText("missing REM value")
		if err != nil {
			return nil, types.NewParseError(err.Error())
		}
		return Rem{Key: key, Value: value}, nil

	case "CATALOG":
		id, err := r.NextText("missing CATALOG number")
		if err != nil {
			return nil, types.NewParseError(err.Error())
		}
		return Catalog{ID: id}, nil

	case "CDTEXTFILE":
		path, err := r.NextText("missing CDTEXTFILE path")
		if err != nil {
			return nil, types.NewParseError(err.Error())
		}
		return CDTextFile{Path: path}, nil

	case "TITLE":
		s, err := r.NextText("missing TITLE")
		if err != nil {
			return nil, types.NewParseError(err.Error())
		}
		return Title{Text: s}, nil

	case "PERFORMER":
		s, err := r.NextText("missing PERFORMER")
		if err != nil {
			return nil, types.NewParseError(err.Error())
		}
		return Performer{Name: s}, nil

	case "SONGWRITER":
		s, err := r.NextText("missing SONGWRITER")
		if err != nil {
			return nil, types.NewParseError(err.Error())
		}
		return Songwriter{Name: s}, nil

	case "FILE":
		return tokenizeFile(r)

	case "FLAGS":
		return Flags{Flags: r.NextValues()}, nil

	case "ISRC":
		code := r.NextToken()
		if code == "" {
			return nil, missing("ISRC code")
		}
		return ISRC{Code: code}, nil

	case "TRACK":
		number := r.NextToken()
		if number == "" {
			return nil, missing("TRACK number")
		}
		mode := r.NextToken()
		if mode == "" {
			return nil, missing("TRACK mode")
		}
		return Track{Number: number, Mode: mode}, nil

	case "PREGAP":
		ts := r.NextToken()
		if ts == "" {
			return nil, missing("PREGAP timestamp")
		}
		return Pregap{Timestamp: ts}, nil

	case "POSTGAP":
		ts := r.NextToken()
		if ts == "" {
			return nil, missing("POSTGAP timestamp")
		}
		return Postgap{Timestamp: ts}, nil

	case "INDEX":
		number := r.NextToken()
		if number == "" {
			return nil, missing("INDEX number")
		}
		ts := r.NextToken()
		if ts == "" {
			return nil, missing("INDEX timestamp")
		}
		return Index{Number: number, Timestamp: ts}, nil

	default:
		return Unknown{Line: line}, nil
	}
}

// tokenizeFile reads FILE's path and format. A quoted path is read as a
// string; an unquoted one runs up to the last token, which is the format,
// so bare paths containing spaces survive.
func tokenizeFile(r *token.Reader) (Command, error) {
	if r.Len() == 0 {
		return nil, missing("FILE path")
	}

	if strings.HasPrefix(r.Rest(), `"`) {
		path, err := r.NextString("missing FILE path")
		if err != nil {
			return nil, types.NewParseError(err.Error())
		}
		format := r.NextToken()
		if format == "" {
			return nil, missing("FILE format")
		}
		return File{Path: path, Format: format}, nil
	}

	rest := strings.TrimRightFunc(r.Rest(), unicode.IsSpace)
	i := strings.LastIndexFunc(rest, unicode.IsSpace)
	if i < 0 {
		return nil, missing("FILE format")
	}
	_, size := utf8.DecodeRuneInString(rest[i:])
	path := strings.TrimRightFunc(rest[:i], unicode.IsSpace)
	format := rest[i+size:]
	r.NextValues()
	return File{Path: path, Format: format}, nil
}

func missing(what string) *types.Error {
	return types.NewParseError("missing " + what)
}

// upperASCII upper-cases ASCII letters only, leaving other bytes alone.
func upperASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'a' && c <= 'z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'a' && b[j] <= 'z' {
					b[j] -= 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
