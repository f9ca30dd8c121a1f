package cuesheet

import (
	"github.com/simonhull/cuesheet/internal/types"
)

// Error is an alias to types.Error.
// Re-exporting from internal/types to maintain public API.
type Error = types.Error

// ErrorKind is an alias to types.ErrorKind.
type ErrorKind = types.ErrorKind

// Error kinds.
const (
	KindIO    = types.KindIO
	KindParse = types.KindParse
)

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

// IsParseError reports whether err is, or wraps, a parse failure.
func IsParseError(err error) bool {
	return types.IsParseError(err)
}

// IsIOError reports whether err is, or wraps, an I/O failure.
func IsIOError(err error) bool {
	return types.IsIOError(err)
}
