package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/dshills/mediator/internal/scenario"
)

// defaultDemo runs when no demo is named.
const defaultDemo = "strength"

func newDemoCommand(e *env) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "demo [name...]",
		Short: "Run the built-in demo scenarios",
		Long: fmt.Sprintf(`Run one or more of the scenarios compiled into mediator.

Available demos: %s

With JSON output a single demo prints one report object; several demos
print one array holding a report per demo, in the order named.

Examples:
  # Run the strength demo
  mediator demo

  # Run every demo
  mediator demo %s`, strings.Join(scenario.DemoNames(), ", "), strings.Join(scenario.DemoNames(), " ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, name := range scenario.DemoNames() {
					if _, err := fmt.Fprintln(out, name); err != nil {
						return err
					}
				}
				return nil
			}

			if len(args) == 0 {
				args = []string{defaultDemo}
			}
			demos := make([]*scenario.Scenario, 0, len(args))
			for _, name := range args {
				s, err := scenario.Demo(name)
				if err != nil {
					return err
				}
				demos = append(demos, s)
			}

			if len(demos) > 1 && e.cfg.Output.Format == outputJSON {
				return e.executeJSONArray(cmd, demos)
			}
			for i, s := range demos {
				if i > 0 && e.cfg.Output.Format != outputJSON {
					if _, err := fmt.Fprintln(out); err != nil {
						return err
					}
				}
				if err := e.execute(cmd.Context(), out, s); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the available demos")
	return cmd
}

// executeJSONArray runs every scenario and writes their reports as one
// JSON array.
func (e *env) executeJSONArray(cmd *cobra.Command, scenarios []*scenario.Scenario) error {
	items := make([][]byte, 0, len(scenarios))
	for _, s := range scenarios {
		report, snap, err := e.run(cmd.Context(), s)
		if err != nil {
			return err
		}
		item, err := jsonDocument(report, snap)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	doc := append([]byte{'['}, bytes.Join(items, []byte{','})...)
	doc = append(doc, ']')
	_, err := cmd.OutOrStdout().Write(pretty.Pretty(doc))
	return err
}
