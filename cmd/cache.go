package cmd

import (
	"errors"
	"fmt"

	"event-finder/config"
	"event-finder/di"

	"github.com/spf13/cobra"
)

var errCacheDisabled = errors.New("events cache is not configured (set REDIS_ADDR)")

func newCacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the Redis events cache",
	}

	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List cached cities",
			Args:  cobra.NoArgs,
			RunE:  runCacheList,
		},
		&cobra.Command{
			Use:   "clear [city...]",
			Short: "Evict the given cities, or every cached city",
			RunE:  runCacheClear,
		},
		&cobra.Command{
			Use:   "refresh",
			Short: "Re-fetch every cached city from SerpApi",
			Args:  cobra.NoArgs,
			RunE:  runCacheRefresh,
		},
	)
	return cacheCmd
}

func openCache(cmd *cobra.Command) (*di.Container, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Addr == "" {
		return nil, errCacheDisabled
	}
	logger := config.NewLoggerTo(cfg.Logging, cmd.ErrOrStderr())
	return di.NewContainer(cmd.Context(), cfg, logger)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	container, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	cities, err := container.RedisEventsDao.ListCachedCities()
	if err != nil {
		return err
	}
	for _, city := range cities {
		fmt.Fprintln(cmd.OutOrStdout(), city)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	container, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	cities := args
	if len(cities) == 0 {
		if cities, err = container.RedisEventsDao.ListCachedCities(); err != nil {
			return err
		}
	}
	for _, city := range cities {
		if err := container.RedisEventsDao.DeleteEvents(city); err != nil {
			return fmt.Errorf("evict %q: %w", city, err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Evicted %d cities\n", len(cities))
	return nil
}

func runCacheRefresh(cmd *cobra.Command, args []string) error {
	container, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	refreshed, err := container.EventsRefresherService.RefreshCachedEvents(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d cities\n", refreshed)
	return nil
}
