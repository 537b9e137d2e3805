package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"golang.org/x/text/language"

	"github.com/dshills/mediator/internal/app"
	"github.com/dshills/mediator/internal/scenario"
)

// Report output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

func newRunCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a scenario file",
		Long: `Run a scenario described in a TOML or YAML file and print its report.

The report lists the watched values before the steps run, every notification
of a watched value while they run, and the watched values at the end.

Examples:
  # Run a TOML scenario
  mediator run stats.toml

  # Print the report as JSON with mediator metrics
  mediator run stats.yaml -o json --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}
			return e.execute(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}
}

// execute runs s and writes its report in the configured output format.
func (e *env) execute(ctx context.Context, w io.Writer, s *scenario.Scenario) error {
	report, snap, err := e.run(ctx, s)
	if err != nil {
		return err
	}

	switch e.cfg.Output.Format {
	case outputJSON:
		doc, err := jsonDocument(report, snap)
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	default:
		return writeText(w, report, snap)
	}
}

// run runs s, counting mediator events when metrics are enabled.
// The snapshot is nil without metrics.
func (e *env) run(ctx context.Context, s *scenario.Scenario) (*scenario.Report, *app.MetricsSnapshot, error) {
	opts := []scenario.RunnerOption{
		scenario.WithLogger(e.logger),
		scenario.WithParser(e.parser),
	}

	var metrics *app.MetricsObserver
	if e.cfg.Metrics.Enabled {
		var err error
		metrics, err = app.NewMetricsObserver(prometheus.NewRegistry())
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, scenario.WithObserver(metrics))
	}

	report, err := scenario.NewRunner(opts...).Run(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	if metrics == nil {
		return report, nil, nil
	}

	snap, err := metrics.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	return report, &snap, nil
}

func writeText(w io.Writer, report *scenario.Report, snap *app.MetricsSnapshot) error {
	if err := report.WriteText(w, language.English); err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	if _, err := fmt.Fprintf(w, "metrics: publishers=%d notifications=%d\n", snap.PublishersAdded, snap.Notifications); err != nil {
		return err
	}
	for _, kind := range sortedKinds(snap.SubscribersAdded) {
		if _, err := fmt.Fprintf(w, "metrics: subscribers[%s]=%d\n", kind, snap.SubscribersAdded[kind]); err != nil {
			return err
		}
	}
	return nil
}

// jsonDocument renders the report, with a "metrics" object when snap is
// set.
func jsonDocument(report *scenario.Report, snap *app.MetricsSnapshot) ([]byte, error) {
	doc, err := report.JSON()
	if err != nil || snap == nil {
		return doc, err
	}

	if doc, err = sjson.SetBytes(doc, "metrics.publishers", snap.PublishersAdded); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "metrics.notifications", snap.Notifications); err != nil {
		return nil, err
	}
	for _, kind := range sortedKinds(snap.SubscribersAdded) {
		if doc, err = sjson.SetBytes(doc, "metrics.subscribers."+kind, snap.SubscribersAdded[kind]); err != nil {
			return nil, err
		}
	}
	return pretty.Pretty(doc), nil
}

func sortedKinds(m map[string]uint64) []string {
	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
