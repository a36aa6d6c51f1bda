package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/logging"
	"grimm.is/spagen/internal/metrics"
)

// ServerConfig holds HTTP server security configuration.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration // Slowloris prevention
	ReadTimeout       time.Duration // Body read limit
	WriteTimeout      time.Duration // Response timeout
	IdleTimeout       time.Duration // Keep-alive timeout
	ShutdownTimeout   time.Duration // Drain time on shutdown
	MaxHeaderBytes    int           // Header size limit
	MaxBodyBytes      int64         // Request body size limit
}

// DefaultServerConfig returns secure default server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB header limit
		MaxBodyBytes:      1 << 20, // 1MB body limit
	}
}

// Server handles API requests.
type Server struct {
	config    *ServerConfig
	logger    *logging.Logger
	collector *metrics.Collector
	registry  *metrics.Registry
	startTime time.Time
	router    chi.Router
}

// ServerOptions holds dependencies for the API server
type ServerOptions struct {
	Config    *ServerConfig
	Logger    *logging.Logger
	Collector *metrics.Collector
}

// NewServer creates a server; zero options get defaults.
func NewServer(opts ServerOptions) *Server {
	s := &Server{
		config:    opts.Config,
		logger:    opts.Logger,
		collector: opts.Collector,
		registry:  metrics.Get(),
		startTime: time.Now(),
	}
	if s.config == nil {
		s.config = DefaultServerConfig()
	}
	if s.logger == nil {
		s.logger = logging.WithComponent("api")
	}
	if s.collector == nil {
		s.collector = metrics.NewCollector(s.logger, 0)
	}
	s.initRoutes()
	return s
}

// initRoutes initializes the HTTP router
func (s *Server) initRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)
	r.Use(i18n.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/defaults", s.handleDefaults)
		api.Post("/render", s.handleRender)
		api.Get("/secret", s.handleSecret)
		api.Get("/stats", s.handleStats)
		api.Get("/ws", s.handleWS)
	})

	s.router = r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.collector.Snapshot())
}

// Serve runs the HTTP server on l until ctx is cancelled, then shuts it
// down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		MaxHeaderBytes:    s.config.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	collectorCtx, stopCollector := context.WithCancel(ctx)
	defer stopCollector()
	go s.collector.Run(collectorCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", l.Addr().String())
		errCh <- server.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("API server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}
