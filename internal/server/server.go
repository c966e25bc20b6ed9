package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/middleware"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server is the Wayfind dev server.
type Server struct {
	cfg    *config.Config
	table  *router.Table
	nav    *router.Navigator
	hub    *hub
	logger *slog.Logger

	// navMu serializes navigations; the navigator is a single-writer
	// state machine and POST /api/navigate may race.
	navMu sync.Mutex

	httpServer *http.Server
}

// New builds a server from the project configuration. The declarative
// route list in wayfind.json is registered into a fresh table.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	s := &Server{
		cfg:    cfg,
		table:  router.NewTable(),
		logger: logger,
	}
	s.hub = newHub(logger)
	go s.hub.run()

	for _, rc := range cfg.Routes {
		if err := s.register(rc); err != nil {
			return nil, err
		}
	}

	nav := router.NewNavigator(s.table)
	nav.Use(
		middleware.Prometheus(),
		middleware.OpenTelemetry(),
	)
	nav.SetNotFound(func(ctx context.Context, res *router.Resolution) error {
		middleware.RecordNotFound()
		logger.Info("navigation unmatched", "path", res.Path())
		return nil
	})
	nav.SetFallback(func(ctx context.Context, res *router.Resolution, err error) {
		logger.Error("navigation failed", "path", res.Path(), "error", err)
	})
	nav.OnChange(func(snap router.Snapshot) {
		s.hub.broadcast(encodeSnapshot(snap))
	})
	s.nav = nav

	return s, nil
}

// register adds one declared route to the table, mapping registration
// failures to coded errors.
func (s *Server) register(rc config.RouteConfig) error {
	page := rc.Page
	opts := []router.RouteOption{}
	if rc.Name != "" {
		opts = append(opts, router.WithName(rc.Name))
	}
	if rc.ErrorPage != "" {
		errorPage := rc.ErrorPage
		opts = append(opts, router.WithErrorHandler(func(ctx context.Context, res *router.Resolution, err error) {
			s.logger.Error("page failed, rendering error page",
				"page", page,
				"error_page", errorPage,
				"path", res.Path(),
				"error", err)
		}))
	}

	err := s.table.Register(rc.Pattern, func(ctx context.Context, res *router.Resolution) error {
		s.logger.Debug("page resolved", "page", page, "path", res.Path())
		return nil
	}, opts...)
	if err == nil {
		return nil
	}

	var invalid *router.InvalidPatternError
	if stderrors.As(err, &invalid) {
		return errors.New("E001").
			WithDetail("Pattern " + rc.Pattern + ": " + invalid.Reason).
			Wrap(err)
	}
	var dup *router.DuplicateRouteError
	if stderrors.As(err, &dup) {
		return errors.New("E002").
			WithDetail("Pattern " + rc.Pattern + " conflicts with " + dup.Existing).
			Wrap(err)
	}
	return errors.FromError(err, "E001")
}

// Table returns the registered route table.
func (s *Server) Table() *router.Table {
	return s.table
}

// Navigator returns the navigation dispatcher.
func (s *Server) Navigator() *router.Navigator {
	return s.nav
}

// Handler returns the HTTP handler for the dev server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/api/resolve", s.handleResolve)
	r.Get("/api/routes", s.handleRoutes)
	r.Post("/api/navigate", s.handleNavigate)
	r.Get("/ws", s.handleWS)
	r.NotFound(s.handleApp)

	return r
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.DevAddress(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server starting", "address", s.cfg.DevAddress(), "routes", len(s.table.Routes()))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return errors.New("E041").Wrap(err)
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	s.hub.close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
