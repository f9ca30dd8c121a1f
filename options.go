package cuesheet

import (
	"log/slog"
	"os"
)

// Option configures behavior when parsing a CUE sheet.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	disc, err := cuesheet.ParseFile("disc.cue",
//	    cuesheet.WithStrictParsing(),
//	    cuesheet.WithLogger(logger),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for a single parse.
type parseOptions struct {
	logger         *slog.Logger
	strictParsing  bool // Fail on the first line that cannot be accounted for
	ignoreWarnings bool // Drop lenient-mode warnings
	debug          bool // Emit per-line debug records
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{
		strictParsing:  false,
		ignoreWarnings: false,
		debug:          debugFromEnv(),
	}
}

func applyOptions(opts []Option) *parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// log returns the logger the parse should write to.
//
// A configured logger always wins. Without one, debug mode writes to
// stderr and everything else is discarded.
func (o *parseOptions) log() *slog.Logger {
	switch {
	case o.logger != nil:
		return o.logger
	case o.debug:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.DiscardHandler)
	}
}

// WithStrictParsing makes the first unaccountable line a fatal error.
//
// By default cuesheet is lenient: orphan commands (an INDEX with no TRACK),
// malformed timestamps and blank lines are skipped and recorded in
// Disc.Warnings, and lines with unknown keywords are kept verbatim in the
// nearest Unknown list. A line missing a required argument fails the parse
// in either mode.
//
// With strict parsing enabled, any of those returns a parse error naming
// the reason, and no Disc is returned.
//
// Example:
//
//	disc, err := cuesheet.ParseFile("disc.cue", cuesheet.WithStrictParsing())
//	// err != nil if ANY line is rejected
func WithStrictParsing() Option {
	return func(o *parseOptions) {
		o.strictParsing = true
	}
}

// WithStrict sets strict parsing from a boolean, for callers that carry
// the mode as a flag.
func WithStrict(strict bool) Option {
	return func(o *parseOptions) {
		o.strictParsing = strict
	}
}

// WithIgnoreWarnings discards the warnings a lenient parse collects.
//
// Example:
//
//	disc, err := cuesheet.ParseFile("disc.cue", cuesheet.WithIgnoreWarnings())
//	// disc.Warnings will always be empty
func WithIgnoreWarnings() Option {
	return func(o *parseOptions) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger that receives per-line debug records.
//
// Records are emitted at slog.LevelDebug; the handler's level decides
// whether they are written.
func WithLogger(logger *slog.Logger) Option {
	return func(o *parseOptions) {
		o.logger = logger
	}
}

// WithDebug turns on per-line debug output on stderr, as if DebugEnv were
// set. It has no effect when a logger is configured with WithLogger.
func WithDebug() Option {
	return func(o *parseOptions) {
		o.debug = true
	}
}
