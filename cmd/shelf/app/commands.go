package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelf/internal/cmd/output"
	"github.com/agentstation/shelf/pkg/constants"
	"github.com/agentstation/shelf/pkg/logging"
)

// NewExecCommand runs command lines in batch mode.
func (a *App) NewExecCommand() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   `exec [-f data.csv ...] "<COMMAND ...>" ...`,
		Short: "Run library commands non-interactively",
		Long: `Exec loads the data files, then runs each argument as one command
line in order. It stops at the first unknown command or rejected argument
and exits non-zero.`,
		Example: `  shelf exec -f books.csv "LIST long" "SEARCH dune"
  shelf exec "ADD books.csv" "GROUP AUTHOR"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())

			s, err := a.preload(cmd.Context(), files, a.out)
			if err != nil {
				return err
			}

			for _, line := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				res, err := s.Run(cmd.Context(), line)
				if err != nil {
					return err
				}
				if err := res.WriteTo(a.out, a.errOut); err != nil {
					return err
				}
			}

			logger.Debug().Int("commands", len(args)).Int("books", s.Len()).Msg("Batch finished")
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "data file to load first (repeatable)")
	return cmd
}

// NewExportCommand renders the loaded library as a table, JSON or YAML.
func (a *App) NewExportCommand() *cobra.Command {
	var (
		files  []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export [-f data.csv ...] [--format table|json|yaml]",
		Short: "Print the loaded library in a structured format",
		Long: `Export loads the data files and prints every book. Without --format
a terminal gets a table and a pipe gets JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = a.config.Format
			}
			parsed, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			// Load summaries would corrupt structured output.
			s, err := a.preload(cmd.Context(), files, a.errOut)
			if err != nil {
				return err
			}

			return output.FormatBooks(a.out, s.Library().All(), output.DetectFormat(string(parsed)))
		},
	}

	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "data file to load (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "o", "", "output format: "+output.FormatNames())
	return cmd
}

// NewVersionCommand prints build information.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(a.out, "%s %s (commit %s, built %s by %s)\n",
				constants.AppName, a.version, a.commit, a.date, a.builtBy)
			return err
		},
	}
}
