package cuesheet

import (
	"github.com/simonhull/cuesheet/internal/types"
)

// Disc is an alias to types.Disc.
// Re-exporting from internal/types to maintain public API.
type Disc = types.Disc

// File is an alias to types.File.
// Re-exporting from internal/types to maintain public API.
type File = types.File

// Track is an alias to types.Track.
// Re-exporting from internal/types to maintain public API.
type Track = types.Track

// Comment is an alias to types.Comment.
type Comment = types.Comment

// Index is an alias to types.Index.
type Index = types.Index
