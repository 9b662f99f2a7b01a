package di

import (
	"context"
	"fmt"
	"time"

	"event-finder/api"
	"event-finder/api/serpapi"
	"event-finder/config"
	"event-finder/dao/redis"
	"event-finder/db"
	"event-finder/finder"
	"event-finder/server"
	"event-finder/server/handlers"
	services "event-finder/service"
	"event-finder/web"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies.
type Container struct {
	Config                 config.Config
	Logger                 zerolog.Logger
	RedisClient            db.RedisClient
	RedisEventsDao         *redis.RedisEventsDAO
	SerpApi                serpapi.SerpApiAPI
	EventService           *services.EventService
	EventsRefresherService *services.EventsRefresherService
	Engine                 *finder.Engine
	Presenter              *web.Presenter
	EventHandler           *handlers.EventHandler
	PageHandler            *handlers.PageHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	EventFinderHttpServer  *server.EventFinderHttpServer
}

// NewContainer initializes and wires up all dependencies. The events cache
// and its refresher exist only when a Redis address is configured.
func NewContainer(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Container, error) {
	logger.Info().Str("env", cfg.Environment).Msg("initializing container")

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// SerpApi client, or the bundled fixture
	var serpApiClient serpapi.SerpApiAPI
	if cfg.SerpApi.UseMock {
		logger.Info().Msg("using mock serpapi client")
		serpApiClient = serpapi.NewSerpApiClientMock(config.GetResourcePath(config.SEARCH_EVENTS_RESPONSE_RESOURCE))
	} else {
		httpClient := api.NewHTTPClient(cfg.SerpApi.BaseURL, cfg.SerpApi.Timeout)
		serpApiClient = serpapi.NewSerpApiClient(httpClient, logger)
		serpApiClient.SetCredentials(cfg.SerpApi.APIKey)
	}
	if !serpApiClient.HasCredentials() {
		logger.Warn().Msg("SERPAPI_API_KEY is not set; event searches will fail until it is configured")
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		SerpApi: serpApiClient,
	}

	// Optional Redis events cache
	var cache services.EventsCache
	if cfg.Redis.Addr != "" {
		redisClient, err := db.NewGoRedisClientFromConfig(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.RedisClient = redisClient
		c.RedisEventsDao = redis.NewRedisEventsDAO(redisClient, cfg.Redis.TTL)
		c.EventsRefresherService = services.NewEventsRefresherService(c.RedisEventsDao, serpApiClient, logger)
		cache = c.RedisEventsDao
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("events cache enabled")
	}

	c.EventService = services.NewEventService(serpApiClient, cache, logger)

	c.Engine = finder.NewEngine(finder.NewDateNormalizer(loc, time.Now))
	presenter, err := web.NewPresenter()
	if err != nil {
		return nil, err
	}
	c.Presenter = presenter

	c.EventHandler = handlers.NewEventHandler(c.EventService)
	// Lists kept for the results page between filter changes
	var pageResults services.EventsCache
	if c.RedisEventsDao != nil {
		pageResults = c.RedisEventsDao
	} else {
		pageResults = redis.NewRedisEventsDAO(db.NewMemoryRedisClient(ctx), cfg.Redis.TTL)
	}
	c.PageHandler = handlers.NewPageHandler(c.EventService, pageResults, c.Engine, c.Presenter)

	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.EventHandler, c.PageHandler, c.MuxRouter, cfg, logger)
	c.EventFinderHttpServer = server.NewEventFinderHttpServer(c.Router, c.MuxRouter, cfg.Server.Addr(), logger)

	return c, nil
}

// Close releases the Redis connection, if any.
func (c *Container) Close() error {
	if c.RedisClient == nil {
		return nil
	}
	return c.RedisClient.Close()
}
