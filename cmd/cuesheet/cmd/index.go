package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/cuesheet"
)

func newIndexCmd(a *app) *cobra.Command {
	var (
		db     string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "index FILE...",
		Short: "Add CUE sheets to the catalog",
		Long: `Parse CUE sheets and store them in the SQLite catalog, replacing any
earlier entry for the same path. Sheets that fail to parse are reported
and skipped; the rest are still indexed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}

			store, err := a.openCatalog(cmd, db)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := a.parseOptions(a.strict(cmd, strict))
			ctx := cmd.Context()

			var failed int
			for _, path := range paths {
				if err := ctx.Err(); err != nil {
					return err
				}
				disc, err := cuesheet.ParseFile(path, opts...)
				if err == nil {
					err = store.Put(ctx, path, disc)
				}
				if err != nil {
					a.logger.Error("failed to index sheet", "file", path, "error", err)
					failed++
					continue
				}
				a.logger.Info("indexed", "file", path, "tracks", disc.TrackCount(), "warnings", len(disc.Warnings))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d of %d sheets\n", len(paths)-failed, len(paths))
			if failed > 0 {
				return fmt.Errorf("%d sheets could not be indexed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "catalog database path")
	cmd.Flags().BoolVar(&strict, "strict", false, "skip sheets with any line that cannot be placed")
	return cmd
}

// ensureDir creates the directory that will hold the database file.
func ensureDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
	}
	return nil
}
