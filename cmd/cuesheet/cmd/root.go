// Package cmd implements the cuesheet command tree.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/cuesheet"
	"github.com/simonhull/cuesheet/internal/catalog"
	"github.com/simonhull/cuesheet/internal/config"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the command line in os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cuesheet",
		Short: "Read CUE sheets",
		Long: `cuesheet reads the CUE sheets that describe CD images.

Commands:
  parse   - print a sheet as text, JSON, YAML or TOML
  dump    - show how each line of a sheet is tokenized
  index   - add sheets to the local catalog
  search  - find tracks in the catalog
  watch   - keep the catalog in sync with a directory

Settings are read from --config, $CUESHEET_CONFIG, ./cuesheet.toml or the
user config directory, then from CUESHEET_STRICT, CUESHEET_OUTPUT and
CUESHEET_DB (a .env file is honored). Flags win over both.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./cuesheet.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output, including per-line parse records")

	root.AddCommand(
		newParseCmd(a),
		newDumpCmd(),
		newIndexCmd(a),
		newSearchCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.Path != "" {
		a.logger.Debug("config loaded", "path", cfg.Path)
	}
	return nil
}

// parseOptions translates settings into library options.
func (a *app) parseOptions(strict bool) []cuesheet.Option {
	opts := []cuesheet.Option{cuesheet.WithStrict(strict)}
	if a.verbose {
		opts = append(opts, cuesheet.WithLogger(a.logger))
	}
	return opts
}

// strict resolves --strict against the configured default.
func (a *app) strict(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("strict") {
		return flag
	}
	return a.cfg.Parse.Strict
}

// openCatalog opens the catalog named by --db or the configuration.
func (a *app) openCatalog(cmd *cobra.Command, flag string) (catalog.Store, error) {
	dsn := a.cfg.Catalog.DB
	if cmd.Flags().Changed("db") {
		dsn = flag
	}
	if err := ensureDir(dsn); err != nil {
		return nil, err
	}
	store, err := catalog.NewSQLiteStore(dsn, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", dsn, err)
	}
	return store, nil
}

// absPaths makes catalog keys independent of the working directory.
func absPaths(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		out[i] = abs
	}
	return out, nil
}
