package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simonhull/cuesheet/internal/command"
	"github.com/simonhull/cuesheet/internal/textio"
)

// newDumpCmd prints what each line of a sheet tokenizes to, before any
// context is applied. Useful for checking awkward sheets.
func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Show the command each line tokenizes to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			lines := textio.NewLineReader(f)
			for {
				line, ok := lines.Next()
				if !ok {
					break
				}
				c, err := command.Tokenize(line)
				if err != nil {
					fmt.Fprintf(tw, "%d\t!\t%v\n", lines.Line(), err)
					continue
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", lines.Line(), describeKeyword(c), describeFields(c))
			}
			if err := lines.Err(); err != nil {
				return err
			}
			return tw.Flush()
		},
	}
}

func describeKeyword(c command.Command) string {
	switch c.(type) {
	case command.None:
		return "-"
	case command.Unknown:
		return "?"
	}
	return c.Keyword()
}

func describeFields(c command.Command) string {
	switch c := c.(type) {
	case command.None:
		return ""
	case command.Unknown:
		return strings.TrimSpace(c.Line)
	case command.Flags:
		return strings.Join(c.Flags, " ")
	}
	// %+v of the struct minus the type name: {Key:GENRE Value:Rock}
	return fmt.Sprintf("%+v", c)
}
