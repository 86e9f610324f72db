// Package cli implements the geogen command-line interface.
//
// The single `run` command drives the whole pipeline: parse inputs,
// load the template library, generate configurations, realize and
// analyze them, and write one report per input. Logging goes to stderr
// through charmbracelet/log; the level comes from GEOGEN_LOG_LEVEL
// (error, warn, info, debug) and --verbose forces debug.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AnonymousPurplePotato/geogen/pkg/input"
	"github.com/AnonymousPurplePotato/geogen/pkg/runner"
)

// Exit codes of the CLI surface.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInputParse    = 2
	ExitTemplateParse = 3
	ExitAnalyticFault = 4
)

var version = "dev"

// SetVersion sets the version string shown by --version; main injects
// it via ldflags.
func SetVersion(v string) {
	version = v
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	var verbose bool

	root := &cobra.Command{
		Use:          "geogen",
		Short:        "geogen generates and analyzes Euclidean geometry theorems",
		Long:         "geogen enumerates geometric configurations reachable from a starting figure,\nverifies which theorems hold in randomized numeric pictures, and filters out\nthe trivial, redundant and reducible ones.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, logLevel(verbose))))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newRunCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, input.ErrParseFailure):
		return ExitInputParse
	case errors.Is(err, runner.ErrTemplateLoad):
		return ExitTemplateParse
	case errors.Is(err, runner.ErrStartupAnalytic):
		return ExitAnalyticFault
	default:
		return ExitFailure
	}
}

// newLogger creates the stderr logger with timestamp formatting.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel resolves the logging level from GEOGEN_LOG_LEVEL, with
// --verbose overriding to debug.
func logLevel(verbose bool) charmlog.Level {
	if verbose {
		return charmlog.DebugLevel
	}
	switch os.Getenv("GEOGEN_LOG_LEVEL") {
	case "error":
		return charmlog.ErrorLevel
	case "warn":
		return charmlog.WarnLevel
	case "debug":
		return charmlog.DebugLevel
	default:
		return charmlog.InfoLevel
	}
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*charmlog.Logger); ok {
		return l
	}
	return charmlog.Default()
}
