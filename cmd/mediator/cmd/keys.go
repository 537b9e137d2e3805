package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/mediator/internal/event/topic"
)

func newKeysCommand(e *env) *cobra.Command {
	var match []string

	cmd := &cobra.Command{
		Use:   "keys <spec>...",
		Short: "Parse topic keys and show how they match",
		Long: `Parse topic key specs the way scenario files do and describe each key.

A spec without a prefix is an exact topic name. Patterns use a prefix:
  re:    regular expression matched against the whole name
  wild:  dot-separated segments, * matches one segment and ** any number
  glob:  shell glob over the whole name, * matches any run and ? one character

Examples:
  mediator keys 'party.hp.a' 're:party\.hp\.\w+' 'wild:party.**'

  # Check keys against topic names
  mediator keys 're:a\d' --match a1,a10,b1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := e.parser.ParseAll(args...)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			header := "KEY\tKIND\tID"
			if len(match) > 0 {
				header += "\tMATCHES"
			}
			fmt.Fprintln(tw, header)

			for _, k := range keys {
				line := fmt.Sprintf("%s\t%s\t%s", k, k.Kind(), k.ID())
				if len(match) > 0 {
					line += "\t" + matching(k, match)
				}
				fmt.Fprintln(tw, line)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVarP(&match, "match", "m", nil, "topic names to test each key against")
	return cmd
}

func matching(k topic.Key, names []string) string {
	var hits []string
	for _, name := range names {
		if k.Matches(topic.Topic(name)) {
			hits = append(hits, name)
		}
	}
	if len(hits) == 0 {
		return "-"
	}
	return strings.Join(hits, ",")
}
