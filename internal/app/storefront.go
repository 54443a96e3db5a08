// Package app wires configuration, clients and servers into the two runnable
// programs: the terminal storefront and the catalog stub server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/aman11srivastava/shopping-cart/internal/cartstore"
	"github.com/aman11srivastava/shopping-cart/internal/catalog"
	"github.com/aman11srivastava/shopping-cart/internal/config"
	handler "github.com/aman11srivastava/shopping-cart/internal/handler/http"
	redisrepo "github.com/aman11srivastava/shopping-cart/internal/repository/redis"
	"github.com/aman11srivastava/shopping-cart/internal/ui"
	"github.com/aman11srivastava/shopping-cart/pkg/database"
	apperrors "github.com/aman11srivastava/shopping-cart/pkg/errors"
	"github.com/aman11srivastava/shopping-cart/pkg/health"
	"github.com/aman11srivastava/shopping-cart/pkg/httpclient"
	"github.com/aman11srivastava/shopping-cart/pkg/logger"
	"github.com/aman11srivastava/shopping-cart/pkg/tracing"
)

// StorefrontName identifies the terminal storefront in logs, metrics and traces.
const StorefrontName = "shopping-cart"

// Storefront wires the catalog client and the cart store behind the terminal UI.
type Storefront struct {
	cfg            *config.Config
	logger         *slog.Logger
	store          *cartstore.Store
	fetcher        catalog.Fetcher
	breaker        *httpclient.CircuitBreakerClient
	rdb            *redis.Client
	adminServer    *http.Server
	tracerShutdown func(context.Context) error
}

// NewStorefront creates the storefront with all dependencies wired.
func NewStorefront(cfg *config.Config, logger *slog.Logger) (*Storefront, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(StorefrontName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Catalog client: retries inside a circuit breaker.
	breaker := httpclient.NewCircuitBreakerClient(httpclient.New(cfg.HTTPClient()), cfg.CircuitBreaker(), logger)
	var fetcher catalog.Fetcher = catalog.NewHTTPFetcher(breaker, cfg.CatalogURL, logger)

	// Optional Redis catalog cache.
	var rdb *redis.Client
	if cfg.CacheEnabled() {
		rdb, err = database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			_ = tracerShutdown(ctx)
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		database.SetSlowCommandLogging(cfg.RedisSlowCmd, logger)
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, rdb, StorefrontName); err != nil {
			logger.Warn("redis pool metrics not registered", slog.String("error", err.Error()))
		}
		fetcher = catalog.NewCachedFetcher(fetcher, redisrepo.NewCatalogCache(rdb, cfg.CatalogCacheTTL), logger)
	}

	store := cartstore.New(cartstore.WithLogger(logger))

	s := &Storefront{
		cfg:            cfg,
		logger:         logger,
		store:          store,
		fetcher:        fetcher,
		breaker:        breaker,
		rdb:            rdb,
		tracerShutdown: tracerShutdown,
	}

	if cfg.AdminAddr != "" {
		s.adminServer = &http.Server{
			Addr:         cfg.AdminAddr,
			Handler:      handler.NewAdminRouter(s.healthHandler(), logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	}

	return s, nil
}

// healthHandler reports the catalog breaker and, when configured, Redis.
func (s *Storefront) healthHandler() *health.Handler {
	h := health.NewHandler()
	h.Register("catalog", func(context.Context) error {
		if s.breaker.State() == gobreaker.StateOpen {
			return fmt.Errorf("catalog circuit breaker is open: %w", apperrors.ErrUnavailable)
		}
		return nil
	})
	if s.rdb != nil {
		h.Register("redis", func(ctx context.Context) error {
			return s.rdb.Ping(ctx).Err()
		})
	}
	return h
}

// Store returns the session's cart store.
func (s *Storefront) Store() *cartstore.Store {
	return s.store
}

// Fetcher returns the catalog fetcher, cache included when configured.
func (s *Storefront) Fetcher() catalog.Fetcher {
	return s.fetcher
}

// Model builds the terminal UI model. The session ID travels in ctx so
// catalog requests carry it.
func (s *Storefront) Model(ctx context.Context) ui.Model {
	ctx = logger.WithSessionID(ctx, s.store.SessionID())
	return ui.New(ctx, s.store, s.fetcher)
}

// Run starts the admin listener, if any, and runs the terminal UI until the
// user quits or the context is canceled.
func (s *Storefront) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	errCh := make(chan error, 1)

	if s.adminServer != nil {
		// Bind before the UI takes over the terminal so a busy port is reported.
		ln, err := net.Listen("tcp", s.adminServer.Addr)
		if err != nil {
			_ = s.Shutdown()
			return fmt.Errorf("admin server: %w", err)
		}
		s.logger.Info("starting admin server", slog.String("addr", ln.Addr().String()))
		go func() {
			if err := s.adminServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("admin server: %w", err)
			}
		}()
	}

	s.logger.Info("starting storefront", slog.String("catalog_url", s.cfg.CatalogURL))

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, runErr := tea.NewProgram(s.Model(ctx), opts...).Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		s.logger.Info("shutdown signal received")
		runErr = nil
	}

	select {
	case err := <-errCh:
		s.logger.Error("admin server failed", slog.String("error", err.Error()))
	default:
	}

	if err := s.Shutdown(); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("run terminal UI: %w", runErr)
	}
	return nil
}

// Shutdown gracefully stops all components.
func (s *Storefront) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("admin server shutdown error", slog.String("error", err.Error()))
		}
	}

	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			s.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := s.tracerShutdown(shutdownCtx); err != nil {
		s.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	s.logger.Info("storefront stopped",
		slog.Int("cart_line_items", len(s.store.Cart())),
		slog.Int("cart_total_items", s.store.TotalItems()),
	)
	return nil
}
