package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simonhull/cuesheet/internal/timestamp"
)

func newSearchCmd(a *app) *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Find tracks in the catalog",
		Long: `List catalog tracks whose title or performer, or whose disc title or
performer, contains TERM. Several words are searched as one phrase.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openCatalog(cmd, db)
			if err != nil {
				return err
			}
			defer store.Close()

			term := strings.Join(args, " ")
			hits, err := store.Search(cmd.Context(), term)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintf(w, "no tracks match %q\n", term)
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SHEET\tTRACK\tSTART\tTITLE\tPERFORMER")
			for _, h := range hits {
				start := "--:--:--"
				if h.Track.Start != nil {
					start = timestamp.Format(*h.Track.Start)
				}
				performer := h.Track.Performer
				if performer == "" {
					performer = h.DiscPerformer
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", h.SheetPath, h.Track.Number, start, h.Track.Title, performer)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "catalog database path")
	return cmd
}
