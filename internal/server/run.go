package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/iwvelando/inflation-forecast/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server runs the calculator web UI and API.
type Server struct {
	cfg        *Config
	logger     *zap.Logger
	httpServer *http.Server
}

// New builds a Server from its runtime config and the calculator settings.
func New(logger *zap.Logger, cfg *Config, settings *config.Configuration, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    cfg.Address,
			Handler: NewHandler(logger, settings, cfg.BodySizeBytes(), version),
		},
	}
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on the configured address and serves until ctx is cancelled,
// then gives in-flight requests up to the shutdown timeout to finish.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server",
			zap.String("op", "server.Serve"),
			zap.String("address", ln.Addr().String()),
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutdown initiated", zap.String("op", "server.Serve"))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeoutDuration())
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful shutdown failed",
				zap.String("op", "server.Serve"),
				zap.Error(err),
			)
			return s.httpServer.Close()
		}
		return nil
	})

	return g.Wait()
}
