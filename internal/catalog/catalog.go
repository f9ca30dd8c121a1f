// Package catalog keeps a searchable index of parsed CUE sheets.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/simonhull/cuesheet/internal/types"
)

// ErrNotFound is returned by Get when no sheet is indexed under a path.
var ErrNotFound = errors.New("catalog: sheet not indexed")

// Store is an index of CUE sheets keyed by their path on disk.
type Store interface {
	// Put indexes disc under path, replacing any earlier entry.
	Put(ctx context.Context, path string, disc *types.Disc) error
	// Remove drops the entry for path. It reports whether one existed.
	Remove(ctx context.Context, path string) (bool, error)
	// Get returns the entry for path, or ErrNotFound.
	Get(ctx context.Context, path string) (*Entry, error)
	// Search returns the tracks whose title or performer, or whose disc's
	// title or performer, contains term. Matching ignores ASCII case.
	Search(ctx context.Context, term string) ([]Hit, error)
	// Paths lists every indexed path in sorted order.
	Paths(ctx context.Context) ([]string, error)
	Close() error
}

// Entry is the indexed summary of one sheet.
type Entry struct {
	IndexedAt  time.Time
	Path       string
	Title      string
	Performer  string
	Songwriter string
	Catalog    string
	Tracks     []TrackEntry
	FileCount  int
	TrackCount int
}

// TrackEntry is one indexed track.
type TrackEntry struct {
	Start      *time.Duration // INDEX 01, nil if the track has none
	FilePath   string
	FileFormat string
	Number     string
	Format     string
	Title      string
	Performer  string
	ISRC       string
	Position   int // 1-based across the whole disc
}

// Hit is a search result: a track plus enough of its disc to show it.
type Hit struct {
	SheetPath     string
	DiscTitle     string
	DiscPerformer string
	Track         TrackEntry
}

// entryFromDisc flattens a disc into the rows Put writes.
func entryFromDisc(path string, disc *types.Disc) *Entry {
	e := &Entry{
		Path:       path,
		Title:      disc.Title,
		Performer:  disc.Performer,
		Songwriter: disc.Songwriter,
		Catalog:    disc.Catalog,
		FileCount:  len(disc.Files),
	}
	pos := 0
	for file, track := range disc.AllTracks() {
		pos++
		te := TrackEntry{
			Position:   pos,
			FilePath:   file.Path,
			FileFormat: file.Format,
			Number:     track.Number,
			Format:     track.Format,
			Title:      track.Title,
			Performer:  track.Performer,
			ISRC:       track.ISRC,
		}
		if start, ok := track.Start(); ok {
			te.Start = &start
		}
		e.Tracks = append(e.Tracks, te)
	}
	e.TrackCount = len(e.Tracks)
	return e
}
