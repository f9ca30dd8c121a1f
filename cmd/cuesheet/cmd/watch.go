package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/cuesheet"
	"github.com/simonhull/cuesheet/internal/catalog"
	"github.com/simonhull/cuesheet/internal/types"
	"github.com/simonhull/cuesheet/internal/watch"
)

// catalogHandler stores watched sheets in the catalog.
type catalogHandler struct {
	store catalog.Store
}

func (h catalogHandler) Update(ctx context.Context, path string, disc *types.Disc) error {
	return h.store.Put(ctx, path, disc)
}

func (h catalogHandler) Remove(ctx context.Context, path string) error {
	_, err := h.store.Remove(ctx, path)
	return err
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		db     string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Keep the catalog in sync with a directory",
		Long: `Index every CUE sheet in DIR, then re-index sheets as they are created
or changed and drop them when they are removed, until interrupted.
Subdirectories are not watched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			store, err := a.openCatalog(cmd, db)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if err := prune(ctx, store, dir); err != nil {
				return err
			}

			opts := a.parseOptions(a.strict(cmd, strict))
			parse := func(path string) (*types.Disc, error) {
				return cuesheet.ParseFile(path, opts...)
			}

			w, err := watch.New(dir, parse, catalogHandler{store: store},
				watch.WithLogger(a.logger),
				watch.WithDebounce(a.cfg.Watch.Debounce.Duration),
			)
			if err != nil {
				return err
			}

			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Close()

			n, err := w.Scan(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("initial scan complete", "dir", dir, "sheets", n)
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s, press Ctrl+C to stop\n", dir)

			<-w.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "catalog database path")
	cmd.Flags().BoolVar(&strict, "strict", false, "skip sheets with any line that cannot be placed")
	return cmd
}

// prune drops catalog entries for sheets in dir that no longer exist.
func prune(ctx context.Context, store catalog.Store, dir string) error {
	paths, err := store.Paths(ctx)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if filepath.Dir(p) != dir {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			if _, err := store.Remove(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}
