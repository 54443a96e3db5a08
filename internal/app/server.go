package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aman11srivastava/shopping-cart/internal/config"
	"github.com/aman11srivastava/shopping-cart/internal/fixture"
	handler "github.com/aman11srivastava/shopping-cart/internal/handler/http"
	"github.com/aman11srivastava/shopping-cart/pkg/health"
	"github.com/aman11srivastava/shopping-cart/pkg/tracing"
)

// CatalogServerName identifies the catalog stub server in logs, metrics and traces.
const CatalogServerName = "catalog-server"

// CatalogServer serves the embedded fixture catalog over HTTP.
type CatalogServer struct {
	cfg            *config.Config
	logger         *slog.Logger
	handler        http.Handler
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewCatalogServer creates the catalog server with all dependencies wired.
func NewCatalogServer(cfg *config.Config, logger *slog.Logger) (*CatalogServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := fixture.Products()
	if err != nil {
		return nil, fmt.Errorf("load fixture catalog: %w", err)
	}
	logger.Info("fixture catalog loaded", slog.Int("products", len(products)))

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(CatalogServerName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	catalogHandler := handler.NewCatalogHandler(products, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("fixture", func(context.Context) error {
		if catalogHandler.Count() == 0 {
			return errors.New("fixture catalog is empty")
		}
		return nil
	})

	router := handler.NewRouter(CatalogServerName, catalogHandler, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.StubHTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &CatalogServer{
		cfg:            cfg,
		logger:         logger,
		handler:        router,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Handler returns the server's HTTP handler.
func (s *CatalogServer) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (s *CatalogServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", s.httpServer.Addr),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = s.Shutdown()
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops all components.
func (s *CatalogServer) Shutdown() error {
	s.logger.Info("shutting down catalog server...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := s.tracerShutdown(shutdownCtx); err != nil {
		s.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	s.logger.Info("catalog server shutdown complete")
	return nil
}
