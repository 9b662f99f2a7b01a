package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

type EventFinderHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	logger    zerolog.Logger
}

func NewEventFinderHttpServer(router *Router, muxRouter *mux.Router, addr string, logger zerolog.Logger) *EventFinderHttpServer {
	return &EventFinderHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
		logger:    logger,
	}
}

// Handler registers the routes and returns the root handler.
func (s *EventFinderHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return s.muxRouter
}

// Start listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *EventFinderHttpServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Start on an existing listener.
func (s *EventFinderHttpServer) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", listener.Addr().String()).Msg("server is running")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info().Msg("server exiting")
	return nil
}
