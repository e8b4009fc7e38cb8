// Package cli implements the lumen command line.
package cli

import (
	"io"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/younwookim/lumen/internal/infrastructure/logging"
)

// DefaultConfig is the file read from the built-in configuration when
// --config is not given.
const DefaultConfig = "lumen.yaml"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string
	LogJSON  bool

	// Defaults holds the built-in configuration files.
	Defaults fs.FS
}

// NewRootCommand creates the root command for the lumen CLI. defaults may be
// nil, in which case built-in defaults apply.
func NewRootCommand(defaults fs.FS) *cobra.Command {
	opts := &RootOptions{Defaults: defaults}

	cmd := &cobra.Command{
		Use:   "lumen",
		Short: "lumen - a real-time scene runtime",
		Long:  "Runs interactive applications built from scenes, resources and a paced frame loop.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
				return WrapExitError(ExitCommandError, "invalid flag", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.LogJSON, "log-json", false, "write logs as JSON lines")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewMonitorsCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// logger builds the process logger from the global flags.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(w, level, o.LogJSON)
}
