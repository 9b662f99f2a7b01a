package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"event-finder/config"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string
)

// newRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "event-finder",
		Short: "Event finder - search local events by city",
		Long: `Event finder relays city event searches to SerpApi's Google Events engine
and narrows the results by date, type and free text.

It provides:
- A JSON API (/api/events, /api/health) that keeps the SerpApi key server-side
- A server-rendered results page with date, type, text and sort filters
- Command line search, an interactive shell and per-day charts
- An optional Redis cache of provider results`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file path (optional, env vars override it)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console) (default: json)")

	rootCmd.AddCommand(
		newServeCommand(),
		newSearchCommand(),
		newShellCommand(),
		newChartCommand(),
		newCacheCommand(),
		newHealthcheckCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the command tree until it finishes or the process is
// interrupted. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	// Override logging from flags if provided
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, nil
}
