// Command citeproc renders CSL citations: it loads a style, a
// directory of locale/style files, and a CSL-JSON reference set, then
// evaluates one or more cites against them and prints the result.
package main

import (
	"fmt"
	"log/slog"
	"os"

	console "github.com/ansel1/console-slog"
	"github.com/spf13/cobra"

	"github.com/citeproc-go/citeproc/internal/config"
)

var (
	cfg     *config.Config
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "citeproc",
		Short:         "Render CSL citations",
		Long:          "citeproc loads a CSL style, its locales, and a CSL-JSON reference set, and renders citations against them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.LoadConfig()
			setupLogging(verbose || cfg.Debug)
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newRenderCmd(), newLocalesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "citeproc: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the default slog logger as a console.Handler
// writing to stderr, at debug level when debug is set and info level
// otherwise.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
