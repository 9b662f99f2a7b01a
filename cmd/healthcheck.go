package cmd

import (
	"context"
	"fmt"
	"time"

	"event-finder/client"

	"github.com/spf13/cobra"
)

var (
	healthcheckTimeout int
	healthcheckURL     string
)

func newHealthcheckCommand() *cobra.Command {
	healthcheckCmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check if the server is healthy",
		Long: `Calls /api/health and exits non-zero unless the server answers {"status":"ok"}.

Suitable for a container HEALTHCHECK.`,
		RunE: runHealthcheck,
	}

	healthcheckCmd.Flags().IntVar(&healthcheckTimeout, "timeout", 5, "timeout in seconds")
	healthcheckCmd.Flags().StringVar(&healthcheckURL, "url", "", "server base URL (default: http://localhost:{PORT})")
	return healthcheckCmd
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	baseURL := healthcheckURL
	if baseURL == "" {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		baseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	timeout := time.Duration(healthcheckTimeout) * time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	health, err := client.NewClient(baseURL, timeout).Health(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("unhealthy: status=%s", health.Status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
