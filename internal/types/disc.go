// Package types provides the data structures produced by the CUE sheet reader.
//
// A Disc owns its Files and a File owns its Tracks. There are no back
// references; the tree is built strictly in input order.
package types

import (
	"iter"
	"time"
)

// Comment is a REM line split into its key and value.
type Comment struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Index is a positional marker inside a track.
//
// Number is kept as written (e.g. "01"); Offset is the MM:SS:FF timestamp
// converted to a duration relative to the start of the owning file.
type Index struct {
	Number string        `json:"number"`
	Offset time.Duration `json:"offset"`
}

// Track is one TRACK entry inside a FILE.
type Track struct {
	Pregap     *time.Duration `json:"pregap,omitempty"`
	Postgap    *time.Duration `json:"postgap,omitempty"`
	Number     string         `json:"number"` // as written, leading zeros kept
	Format     string         `json:"format"` // AUDIO, MODE1/2352, ...
	Title      string         `json:"title,omitempty"`
	Performer  string         `json:"performer,omitempty"`
	Songwriter string         `json:"songwriter,omitempty"`
	ISRC       string         `json:"isrc,omitempty"`
	Indices    []Index        `json:"indices,omitempty"`
	Flags      []string       `json:"flags,omitempty"` // DCP, 4CH, PRE, SCMS
	Comments   []Comment      `json:"comments,omitempty"`
	Unknown    []string       `json:"unknown,omitempty"`
}

// Index returns the index with the given number.
//
// Numbers are compared as written, so "1" and "01" are different indices.
func (t *Track) Index(number string) (Index, bool) {
	for _, idx := range t.Indices {
		if idx.Number == number {
			return idx, true
		}
	}
	return Index{}, false
}

// Start returns the offset of INDEX 01, the conventional track start.
func (t *Track) Start() (time.Duration, bool) {
	idx, ok := t.Index("01")
	return idx.Offset, ok
}

// File is a media file referenced by a FILE command.
type File struct {
	Path     string    `json:"path"`
	Format   string    `json:"format"` // WAVE, MP3, AIFF, BINARY, MOTOROLA
	Tracks   []Track   `json:"tracks,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// Disc is the top-level record of a CUE sheet.
type Disc struct {
	Title      string    `json:"title,omitempty"`
	Performer  string    `json:"performer,omitempty"`
	Songwriter string    `json:"songwriter,omitempty"`
	CDTextFile string    `json:"cdtextfile,omitempty"`
	Catalog    string    `json:"catalog,omitempty"` // media catalog number
	Files      []File    `json:"files,omitempty"`
	Comments   []Comment `json:"comments,omitempty"`
	Unknown    []string  `json:"unknown,omitempty"`
	Warnings   []Warning `json:"warnings,omitempty"`
}

// Comment returns the value of the first disc-level REM with the given key.
func (d *Disc) Comment(key string) (string, bool) {
	for _, c := range d.Comments {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}

// AllTracks returns an iterator over every track in input order, paired
// with the file that owns it.
//
// Example:
//
//	for file, track := range disc.AllTracks() {
//	    fmt.Printf("%s #%s %s\n", file.Path, track.Number, track.Title)
//	}
func (d *Disc) AllTracks() iter.Seq2[*File, *Track] {
	return func(yield func(*File, *Track) bool) {
		for i := range d.Files {
			f := &d.Files[i]
			for j := range f.Tracks {
				if !yield(f, &f.Tracks[j]) {
					return
				}
			}
		}
	}
}

// TrackCount returns the number of tracks across all files.
func (d *Disc) TrackCount() int {
	n := 0
	for _, f := range d.Files {
		n += len(f.Tracks)
	}
	return n
}
