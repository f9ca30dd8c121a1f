package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// writeText prints a listing in the spirit of a CD player's track display:
// a header block for the disc, then one row per track grouped by file.
func writeText(w io.Writer, v discView) error {
	bw := bufio.NewWriter(w)

	header := func(label, value string) {
		if value != "" {
			fmt.Fprintf(bw, "%-11s %s\n", label+":", value)
		}
	}
	header("Title", v.Title)
	header("Performer", v.Performer)
	header("Songwriter", v.Songwriter)
	header("Catalog", v.Catalog)
	header("CD-Text", v.CDTextFile)
	for _, c := range v.Comments {
		header(c.Key, c.Value)
	}

	for _, f := range v.Files {
		fmt.Fprintf(bw, "\n%s (%s)\n", f.Path, f.Format)

		tw := tabwriter.NewWriter(bw, 0, 0, 2, ' ', 0)
		for _, t := range f.Tracks {
			start := "--:--:--"
			for _, idx := range t.Indices {
				if idx.Number == "01" {
					start = idx.Offset
					break
				}
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", t.Number, start, t.Title, t.Performer, trackNotes(t))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(v.Unknown) > 0 {
		fmt.Fprintf(bw, "\nUnknown commands:\n")
		for _, u := range v.Unknown {
			fmt.Fprintf(bw, "  %s\n", strings.TrimSpace(u))
		}
	}
	if len(v.Warnings) > 0 {
		fmt.Fprintf(bw, "\nWarnings:\n")
		for _, w := range v.Warnings {
			fmt.Fprintf(bw, "  %s\n", w)
		}
	}

	return bw.Flush()
}

func trackNotes(t trackView) string {
	var notes []string
	if t.Format != "AUDIO" {
		notes = append(notes, t.Format)
	}
	if t.Pregap != "" {
		notes = append(notes, "pregap "+t.Pregap)
	}
	if t.Postgap != "" {
		notes = append(notes, "postgap "+t.Postgap)
	}
	if len(t.Flags) > 0 {
		notes = append(notes, strings.Join(t.Flags, " "))
	}
	if t.ISRC != "" {
		notes = append(notes, "ISRC "+t.ISRC)
	}
	return strings.Join(notes, ", ")
}
