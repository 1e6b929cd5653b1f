package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelf/pkg/constants"
	"github.com/agentstation/shelf/pkg/logging"
)

// Execute runs the shelf CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     constants.AppName + " [data.csv ...]",
		Short:   "Personal library catalog",
		Version: a.version,
		Long: `Shelf keeps a catalog of books in memory and answers commands
against it: ADD a CSV data file, LIST, GROUP, REMOVE and SEARCH entries.

Run without a subcommand to start the interactive prompt. Data files given
as arguments or under the "data" config key are loaded first.`,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd.Context(), args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configFile, "config", "", "config file (default is $HOME/.shelf.yaml)")
	flags.BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=error)")
	flags.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("shelf {{.Version}}\n")

	rootCmd.AddCommand(
		a.NewExecCommand(),
		a.NewExportCommand(),
		a.NewVersionCommand(),
	)
	return rootCmd
}

// setupCommand runs before every command. It reloads the config file named
// by --config, merges the flags and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if a.flags.configFile != "" {
		config, err := LoadConfig(a.flags.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(a.flags.verbose, a.flags.quiet, a.flags.noColor, a.flags.logLevel)

	logger := NewLogger(a.config, a.errOut)
	logging.SetDefault(logger)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("config_file", a.config.ConfigFile).
		Strs("data", a.config.DataFiles).
		Msg("Configuration loaded")
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
