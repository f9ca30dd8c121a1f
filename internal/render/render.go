// Package render encodes a parsed disc for display.
//
// Timestamps are written back as MM:SS:FF so the output reads like the
// sheet it came from. Rendering is for people and scripts; it is not CUE
// emission.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/cuesheet/internal/timestamp"
	"github.com/simonhull/cuesheet/internal/types"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// Formats lists the supported encodings in display order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat maps a user-supplied name to a Format. Matching ignores case
// and accepts "yml" for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "text", "txt", "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Write encodes disc to w in the given format.
func Write(w io.Writer, disc *types.Disc, format Format) error {
	if disc == nil {
		return fmt.Errorf("render: nil disc")
	}
	v := newDiscView(disc)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatText:
		return writeText(w, v)
	}
	return fmt.Errorf("unknown output format %q", format)
}

type discView struct {
	Title      string        `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Performer  string        `json:"performer,omitempty" yaml:"performer,omitempty" toml:"performer,omitempty"`
	Songwriter string        `json:"songwriter,omitempty" yaml:"songwriter,omitempty" toml:"songwriter,omitempty"`
	Catalog    string        `json:"catalog,omitempty" yaml:"catalog,omitempty" toml:"catalog,omitempty"`
	CDTextFile string        `json:"cdtextfile,omitempty" yaml:"cdtextfile,omitempty" toml:"cdtextfile,omitempty"`
	Comments   []commentView `json:"comments,omitempty" yaml:"comments,omitempty" toml:"comments,omitempty"`
	Unknown    []string      `json:"unknown,omitempty" yaml:"unknown,omitempty" toml:"unknown,omitempty"`
	Warnings   []string      `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
	Files      []fileView    `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
}

type commentView struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

type fileView struct {
	Path     string        `json:"path" yaml:"path" toml:"path"`
	Format   string        `json:"format" yaml:"format" toml:"format"`
	Comments []commentView `json:"comments,omitempty" yaml:"comments,omitempty" toml:"comments,omitempty"`
	Tracks   []trackView   `json:"tracks,omitempty" yaml:"tracks,omitempty" toml:"tracks,omitempty"`
}

type trackView struct {
	Number     string        `json:"number" yaml:"number" toml:"number"`
	Format     string        `json:"format" yaml:"format" toml:"format"`
	Title      string        `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Performer  string        `json:"performer,omitempty" yaml:"performer,omitempty" toml:"performer,omitempty"`
	Songwriter string        `json:"songwriter,omitempty" yaml:"songwriter,omitempty" toml:"songwriter,omitempty"`
	ISRC       string        `json:"isrc,omitempty" yaml:"isrc,omitempty" toml:"isrc,omitempty"`
	Pregap     string        `json:"pregap,omitempty" yaml:"pregap,omitempty" toml:"pregap,omitempty"`
	Postgap    string        `json:"postgap,omitempty" yaml:"postgap,omitempty" toml:"postgap,omitempty"`
	Flags      []string      `json:"flags,omitempty" yaml:"flags,omitempty" toml:"flags,omitempty"`
	Indices    []indexView   `json:"indices,omitempty" yaml:"indices,omitempty" toml:"indices,omitempty"`
	Comments   []commentView `json:"comments,omitempty" yaml:"comments,omitempty" toml:"comments,omitempty"`
	Unknown    []string      `json:"unknown,omitempty" yaml:"unknown,omitempty" toml:"unknown,omitempty"`
}

type indexView struct {
	Number string `json:"number" yaml:"number" toml:"number"`
	Offset string `json:"offset" yaml:"offset" toml:"offset"`
}

func newDiscView(d *types.Disc) discView {
	v := discView{
		Title:      d.Title,
		Performer:  d.Performer,
		Songwriter: d.Songwriter,
		Catalog:    d.Catalog,
		CDTextFile: d.CDTextFile,
		Comments:   commentViews(d.Comments),
		Unknown:    d.Unknown,
	}
	for _, w := range d.Warnings {
		v.Warnings = append(v.Warnings, w.String())
	}
	for _, f := range d.Files {
		fv := fileView{Path: f.Path, Format: f.Format, Comments: commentViews(f.Comments)}
		for _, t := range f.Tracks {
			fv.Tracks = append(fv.Tracks, newTrackView(t))
		}
		v.Files = append(v.Files, fv)
	}
	return v
}

func newTrackView(t types.Track) trackView {
	tv := trackView{
		Number:     t.Number,
		Format:     t.Format,
		Title:      t.Title,
		Performer:  t.Performer,
		Songwriter: t.Songwriter,
		ISRC:       t.ISRC,
		Flags:      t.Flags,
		Comments:   commentViews(t.Comments),
		Unknown:    t.Unknown,
	}
	if t.Pregap != nil {
		tv.Pregap = timestamp.Format(*t.Pregap)
	}
	if t.Postgap != nil {
		tv.Postgap = timestamp.Format(*t.Postgap)
	}
	for _, idx := range t.Indices {
		tv.Indices = append(tv.Indices, indexView{Number: idx.Number, Offset: timestamp.Format(idx.Offset)})
	}
	return tv
}

func commentViews(cs []types.Comment) []commentView {
	if len(cs) == 0 {
		return nil
	}
	out := make([]commentView, len(cs))
	for i, c := range cs {
		out[i] = commentView{Key: c.Key, Value: c.Value}
	}
	return out
}
