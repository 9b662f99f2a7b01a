package cmd

import (
	"os"
	"time"

	"event-finder/client"
	"event-finder/config"
	"event-finder/controller"
	"event-finder/di"
	"event-finder/finder"
	"event-finder/server/handlers"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// session is what the client-side commands search with: either a running
// server reached over HTTP, or the in-process service.
type session struct {
	cfg       config.Config
	logger    zerolog.Logger
	fetcher   controller.Fetcher
	engine    *finder.Engine
	container *di.Container
}

// openSession talks to serverURL when set, and otherwise wires the service
// in-process. Logs go to stderr at warn level unless asked otherwise.
func openSession(cmd *cobra.Command, serverURL string) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if logLevel == "" && os.Getenv("LOG_LEVEL") == "" {
		cfg.Logging.Level = "warn"
	}
	logger := config.NewLoggerTo(cfg.Logging, cmd.ErrOrStderr())

	if serverURL != "" {
		loc, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		return &session{
			cfg:     cfg,
			logger:  logger,
			fetcher: client.NewClient(serverURL, cfg.SerpApi.Timeout),
			engine:  finder.NewEngine(finder.NewDateNormalizer(loc, time.Now)),
		}, nil
	}

	container, err := di.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:       cfg,
		logger:    logger,
		fetcher:   handlers.NewServiceFetcher(container.EventService),
		engine:    container.Engine,
		container: container,
	}, nil
}

func (s *session) newController() *controller.SearchController {
	return controller.NewSearchController(s.fetcher, s.engine, s.logger)
}

func (s *session) Close() error {
	if s.container == nil {
		return nil
	}
	return s.container.Close()
}
