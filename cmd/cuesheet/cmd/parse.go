package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonhull/cuesheet"
	"github.com/simonhull/cuesheet/internal/render"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		strict bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse CUE sheets and print them",
		Long: `Parse one or more CUE sheets and print the result.

Use "-" to read a sheet from standard input. Several files are parsed
concurrently; if any of them fails nothing is printed.`,
		Example: `  cuesheet parse Loveless.cue
  cuesheet parse --strict -o json *.cue
  cat disc.cue | cuesheet parse -o yaml -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Parse.Output
			if cmd.Flags().Changed("output") {
				name = output
			}
			format, err := render.ParseFormat(name)
			if err != nil {
				return err
			}

			discs, err := a.parseAll(cmd, args, a.parseOptions(a.strict(cmd, strict)))
			if err != nil {
				return err
			}
			return printDiscs(cmd.OutOrStdout(), args, discs, format)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first line that cannot be placed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: text, json, yaml or toml")
	return cmd
}

func (a *app) parseAll(cmd *cobra.Command, args []string, opts []cuesheet.Option) ([]*cuesheet.Disc, error) {
	if len(args) == 1 {
		var (
			disc *cuesheet.Disc
			err  error
		)
		if args[0] == "-" {
			disc, err = cuesheet.Parse(cmd.InOrStdin(), opts...)
		} else {
			disc, err = cuesheet.ParseContext(cmd.Context(), args[0], opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", args[0], err)
		}
		return []*cuesheet.Disc{disc}, nil
	}
	return cuesheet.ParseMany(cmd.Context(), args, opts...)
}

func printDiscs(w io.Writer, names []string, discs []*cuesheet.Disc, format render.Format) error {
	for i, disc := range discs {
		if len(discs) > 1 && format == render.FormatText {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", names[i])
		}
		if err := render.Write(w, disc, format); err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
	}
	return nil
}
