// Package cmd wires the cobra command tree of the qitrack binary
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/cli/data"
	"github.com/thenoetrevino/qitrack/internal/cli/pdsa"
	"github.com/thenoetrevino/qitrack/internal/cli/project"
	"github.com/thenoetrevino/qitrack/internal/cli/styles"
	"github.com/thenoetrevino/qitrack/internal/cli/tutorial"
	"github.com/thenoetrevino/qitrack/internal/cli/use"
	"github.com/thenoetrevino/qitrack/internal/config"
	"github.com/thenoetrevino/qitrack/internal/logging"
)

// logSession owns the log file opened for one run
type logSession struct {
	closer io.Closer
}

func (l *logSession) close() {
	if l.closer == nil {
		return
	}
	if err := l.closer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing log file: %v\n", err)
	}
	l.closer = nil
}

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&logSession{})
}

func newRootCmd(logs *logSession) *cobra.Command {
	var (
		dataDir    string
		backend    string
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "qitrack",
		Short: "qitrack - track resident QI projects and their PDSA cycles",
		Long: `qitrack keeps a resident's quality-improvement projects and their
Plan-Do-Study-Act cycles in two CSV tables (or a SQLite file) in a local
data directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
				return &cli.CodedError{Code: cli.ExitError, Err: err}
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if backend != "" {
				cfg.Backend = backend
			}

			logs.close()
			logs.closer, err = logging.Init(logging.Options{
				File:      cfg.Log.File,
				Level:     cfg.Log.Level,
				MaxSizeMB: cfg.Log.MaxSizeMB,
				MaxFiles:  cfg.Log.MaxFiles,
			})
			if err != nil {
				// Logging is best effort; commands still run
				logging.Discard()
			}

			styles.Init(cfg.ColorScheme)

			slog.Debug("command starting", "command", cmd.CommandPath(), "data_dir", cfg.DataDir, "backend", cfg.Backend)
			cmd.SetContext(cli.WithOptions(cmd.Context(), cli.Options{
				DataDir: cfg.DataDir,
				Backend: cfg.Backend,
				Logger:  logging.Logger,
				Colors:  cfg.ColorScheme,
			}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides config and "+config.EnvDataDir+")")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: csv or sqlite (overrides config and "+config.EnvBackend+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/qitrack/config.yaml)")

	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(pdsa.PdsaCmd())
	rootCmd.AddCommand(data.DataCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// Execute runs the command tree and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, args, &logSession{})
}

// execute closes the log file after the command returns, including on
// failure where cobra skips the post-run hooks
func execute(ctx context.Context, args []string, logs *logSession) int {
	defer logs.close()

	rootCmd := newRootCmd(logs)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}
	slog.Error("command failed", "args", args, "error", err)

	var exitErr *cli.CodedError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Flag and argument errors from cobra have not been reported yet
	fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
	return cli.ExitUsage
}
