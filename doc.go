// Package cuesheet reads CUE sheets into a structured disc record.
//
// A CUE sheet is the plain-text descriptor that accompanies a CD image. It
// names the media files of the disc, the tracks inside each file, their
// index points and pregaps, and disc/track metadata such as title and
// performer. cuesheet reads that text and returns a Disc; it does not read
// or verify the referenced media.
//
// # Quick Start
//
// Reading a sheet from disk:
//
//	disc, err := cuesheet.ParseFile("Loveless.cue")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%s - %s\n", disc.Performer, disc.Title)
//	for file, track := range disc.AllTracks() {
//		start, _ := track.Start()
//		fmt.Printf("%s  %s  %-30s %s\n", file.Path, track.Number, track.Title, start)
//	}
//
// Any io.Reader works too:
//
//	disc, err := cuesheet.Parse(os.Stdin)
//
// # Structure
//
//	[Disc]            - title, performer, catalog, REM comments
//	  └─ [File]       - FILE "path" FORMAT
//	       └─ [Track] - TRACK nn MODE, INDEX, PREGAP, FLAGS, ISRC
//
// Commands attach to the most recent context: TITLE, PERFORMER and
// SONGWRITER go to the last TRACK if there is one and to the disc
// otherwise; REM goes to the last TRACK, else the last FILE, else the disc.
// Indentation is not significant.
//
// # Strict and Lenient Parsing
//
// By default parsing is lenient. Lines that cannot be placed (an INDEX
// before any TRACK, a malformed timestamp, a blank line) are skipped and
// recorded in Disc.Warnings; lines with an unknown keyword are kept
// verbatim in Track.Unknown or Disc.Unknown. Errors are returned only for
// I/O failures and for lines that cannot be tokenized at all, such as a
// FILE with no path.
//
// WithStrictParsing turns the first such line into a parse error:
//
//	disc, err := cuesheet.ParseFile("disc.cue", cuesheet.WithStrictParsing())
//	if cuesheet.IsParseError(err) {
//		// e.g. "parse error: line 12: strict mode failure: INDEX assigned to no TRACK"
//	}
//
// A sheet that parses strictly parses to the same Disc leniently.
//
// # Timestamps
//
// CUE timestamps are MM:SS:FF where FF counts frames of 1/75 second.
// cuesheet converts them to time.Duration, truncated to the nanosecond;
// 04:17:52 becomes 257.693333333s.
//
// # Debugging
//
// Set CUESHEET_DEBUG=1 to print one debug record per input line on stderr,
// or pass a logger with WithLogger to receive them at slog.LevelDebug.
package cuesheet
