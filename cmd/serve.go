package cmd

import (
	"context"
	"fmt"

	"event-finder/config"
	"event-finder/di"

	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server and begin accepting requests.

The server will:
- Load configuration from --config and environment variables
- Connect to Redis when REDIS_ADDR is set and refresh cached cities periodically
- Serve the JSON API, the results page and /metrics
- Shut down gracefully on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  event-finder serve

  # Start on a specific host and port
  event-finder serve --host 127.0.0.1 --port 9090

  # Serve the bundled fixture instead of calling SerpApi
  SERPAPI_USE_MOCK=true event-finder serve --log-format console`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 3000)")
	return serveCmd
}

func runServer(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Msg("starting event finder")

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close redis client")
		}
	}()

	if container.EventsRefresherService != nil && cfg.Redis.RefreshInterval > 0 {
		logger.Info().Dur("interval", cfg.Redis.RefreshInterval).Msg("starting events refresher")
		container.EventsRefresherService.StartPeriodicJob(ctx, cfg.Redis.RefreshInterval)
	}

	return container.EventFinderHttpServer.Start(ctx)
}
