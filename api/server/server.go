package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-middleware/api"
	"task-middleware/api/middleware"
	"task-middleware/config"
	"task-middleware/logger"
	"task-middleware/posts"
	"task-middleware/tasks"
)

// Server wraps http.Server with graceful shutdown capabilities
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *logger.Logger
}

// dependencies contains all the dependencies needed to create a server
type dependencies struct {
	store    tasks.Store[posts.State]
	services api.CapabilityLister
	config   *config.Config
	logger   *logger.Logger
}

// New creates a new server with all HTTP configuration
func New(store tasks.Store[posts.State], services api.CapabilityLister, cfg *config.Config, lg *logger.Logger) *Server {
	deps := &dependencies{
		store:    store,
		services: services,
		config:   cfg,
		logger:   lg,
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      newRouter(deps),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		config: cfg,
		logger: lg,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// newRouter creates and configures the HTTP router with all routes and middleware
func newRouter(deps *dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", api.NewHealthHandler(deps.config, deps.services, deps.logger))
	mux.HandleFunc("/posts", api.NewPostsHandler(deps.store, deps.logger))
	mux.HandleFunc("/posts/refresh", api.NewRefreshHandler(deps.store, api.RefreshSource{
		URL:        deps.config.PostsURL,
		StorageKey: deps.config.StorageKey,
	}, deps.logger))

	return applyMiddleware(mux, deps.logger)
}

// applyMiddleware wraps the handler with all necessary middleware
func applyMiddleware(handler http.Handler, lg *logger.Logger) http.Handler {
	// Last applied = first executed
	wrapped := handler
	wrapped = middleware.LoggingMiddleware(lg)(wrapped)
	wrapped = middleware.RequestID(wrapped)

	return wrapped
}

// Start starts the server and blocks until an interrupt or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", map[string]any{
			"address": s.config.Address(),
		})

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", map[string]any{
				"error": err.Error(),
			})
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	return s.shutdown()
}

// shutdown gracefully shuts down the server
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})

		return err
	}

	s.logger.Info("Server shutdown complete")
	return nil
}
