package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(info VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mediator",
		Args:  cobra.NoArgs,
		// Skip configuration loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "mediator %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
			return err
		},
	}
}
