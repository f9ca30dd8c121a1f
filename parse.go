package cuesheet

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/cuesheet/internal/textio"
	"github.com/simonhull/cuesheet/internal/types"
)

// Parse reads a CUE sheet from r.
//
// r only needs to yield bytes; it is read line by line to the end, or to
// the first rejected line in strict mode, and is never seeked. Parse does
// not close r.
//
// In lenient mode (the default) only I/O errors and lines that cannot be
// tokenized at all, such as a FILE with no path, are returned as errors.
// In strict mode the first rejected line returns a parse error and no Disc.
//
// Example:
//
//	disc, err := cuesheet.Parse(os.Stdin, cuesheet.WithStrictParsing())
//	if err != nil {
//		return err
//	}
//	fmt.Println(disc.Performer, "-", disc.Title)
func Parse(r io.Reader, opts ...Option) (*Disc, error) {
	return parse(r, applyOptions(opts))
}

// ParseString parses a CUE sheet held in memory.
func ParseString(s string, opts ...Option) (*Disc, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile opens path and parses it as a CUE sheet.
//
// The file is closed before ParseFile returns, on every path. A path that
// cannot be opened yields an I/O error that unwraps to the *fs.PathError.
//
// Example:
//
//	disc, err := cuesheet.ParseFile("Loveless.cue")
//	if err != nil {
//		return err
//	}
//	for file, track := range disc.AllTracks() {
//		fmt.Printf("%s  %s  %s\n", file.Path, track.Number, track.Title)
//	}
func ParseFile(path string, opts ...Option) (*Disc, error) {
	options := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewIOError("", err)
	}
	defer f.Close()

	options.logger = options.log().With("path", path)
	return parse(f, options)
}

// ParseContext parses a file with context support for cancellation.
//
// This is a thin wrapper around ParseFile that checks ctx before starting.
// Parsing itself is not interruptible; bound the work by bounding the input.
func ParseContext(ctx context.Context, path string, opts ...Option) (*Disc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseFile(path, opts...)
}

// ParseMany parses multiple CUE sheets concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails, the first error is returned, prefixed with its path, and no
// results are returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	discs, err := cuesheet.ParseMany(ctx, paths, cuesheet.WithStrictParsing())
//	if err != nil {
//		log.Fatal(err)
//	}
func ParseMany(ctx context.Context, paths []string, opts ...Option) ([]*Disc, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Disc, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			disc, err := ParseFile(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = disc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func parse(r io.Reader, options *parseOptions) (*Disc, error) {
	a := newAssembler(options)

	lines := textio.NewLineReader(r)
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		if err := a.feed(lines.Line(), line); err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, types.NewIOError(fmt.Sprintf("read line %d", lines.Line()+1), err)
	}

	if options.ignoreWarnings {
		a.disc.Warnings = nil
	}
	return a.disc, nil
}
