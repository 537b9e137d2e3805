package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dshills/mediator/internal/scenario"
	"github.com/dshills/mediator/internal/watcher"
)

func newWatchCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Run a scenario file again whenever it changes",
		Long: `Run a scenario file, then watch it and run it again after every change.

Changes are debounced by watch.debounce from the configuration. Errors from
a run are logged and watching continues. Stop with Ctrl-C.

Examples:
  mediator watch stats.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			rerun := func() {
				s, err := scenario.LoadFile(path)
				if err == nil {
					err = e.execute(ctx, out, s)
				}
				if err != nil && ctx.Err() == nil {
					e.logger.Error("scenario run failed", "path", path, "error", err)
				}
			}

			rerun()
			return watcher.Watch(ctx, path, e.cfg.Watch.Debounce, rerun, watcher.WithLogger(e.logger))
		},
	}
}
