package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonny/zabbix-bot/internal/adapter/inbound/httpserver/middleware"
	"github.com/jonny/zabbix-bot/pkg/health"
)

// Config holds status server configuration.
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MetricsToken    string
}

// Server exposes liveness, readiness and metrics over HTTP with graceful shutdown.
type Server struct {
	cfg     Config
	checker *health.Checker
	metrics http.Handler
	logger  *slog.Logger
}

// NewServer creates a new Server. metrics may be nil.
func NewServer(cfg Config, checker *health.Checker, metrics http.Handler, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		checker: checker,
		metrics: metrics,
		logger:  logger.With("component", "httpserver"),
	}
}

// Routes builds and returns an http.Handler with all middleware applied.
// Route layout:
//
//	GET /healthz  - liveness
//	GET /readyz   - readiness (registered health checks)
//	GET /metrics  - Prometheus exposition
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", s.checker.LivenessHandler())
	mux.Handle("GET /readyz", s.checker.ReadinessHandler())
	if s.metrics != nil {
		mux.Handle("GET /metrics", middleware.BearerAuth(s.cfg.MetricsToken)(s.metrics))
	}

	// outermost first: Logging -> SecurityHeaders -> mux
	var h http.Handler = mux
	h = middleware.SecurityHeaders(h)
	h = middleware.NewLoggingMiddleware(s.logger)(h)
	return h
}

// Start starts the HTTP server and blocks until ctx is cancelled, then performs
// a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Routes(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("status server listening", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("status server shutdown: %w", err)
		}
		s.logger.Info("status server stopped")
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("status server: %w", err)
	}
}
