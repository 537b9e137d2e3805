// Package cmd implements the mediator command line.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dshills/mediator/internal/app"
	"github.com/dshills/mediator/internal/config"
	"github.com/dshills/mediator/internal/event/topic"
)

// VersionInfo describes the build.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
	output     string
	metrics    bool
}

// env is the state prepared for a command before it runs.
type env struct {
	flags  globalFlags
	cfg    *config.Config
	logger *slog.Logger
	parser *topic.Parser
}

// NewRootCommand builds the command tree.
func NewRootCommand(info VersionInfo) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "mediator",
		Short: "Run reactive value scenarios on an in-process topic mediator",
		Long: `mediator drives an in-process publish/subscribe mediator from scenario files.

Values publish data under topic names; dynamic values subscribe to exact names
or patterns (re:, wild:, glob:) and recompute when their dependencies change.

Use "mediator [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&e.flags.configPath, "config", "c", "", "path to a TOML configuration file")
	pf.StringVar(&e.flags.envFile, "env-file", config.DefaultEnvFile, "path to a .env file (empty to skip)")
	pf.StringVar(&e.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&e.flags.logFormat, "log-format", "", "log format: auto, text, json")
	pf.StringVarP(&e.flags.output, "output", "o", "", "report format: text, json")
	pf.BoolVar(&e.flags.metrics, "metrics", false, "count mediator events and print them after each run")

	root.AddCommand(
		newRunCommand(e),
		newDemoCommand(e),
		newWatchCommand(e),
		newKeysCommand(e),
		newVersionCommand(info),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger and key parser.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.flags.configPath, config.WithEnvFile(e.flags.envFile))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = e.flags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = e.flags.logFormat
	}
	if flags.Changed("output") {
		cfg.Output.Format = e.flags.output
	}
	if flags.Changed("metrics") {
		cfg.Metrics.Enabled = e.flags.metrics
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := app.NewLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	size := cfg.Keys.CacheSize
	if size == 0 {
		size = topic.DefaultCacheSize
	}

	e.cfg = cfg
	e.logger = logger
	e.parser = topic.NewParser(size)
	return nil
}
