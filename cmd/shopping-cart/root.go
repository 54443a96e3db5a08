package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aman11srivastava/shopping-cart/internal/app"
	"github.com/aman11srivastava/shopping-cart/internal/config"
	"github.com/aman11srivastava/shopping-cart/pkg/logger"
)

type rootOptions struct {
	catalogURL string
	logLevel   string
}

// overrides maps flags to the environment variables they replace. Unset
// flags are empty and leave the environment in charge.
func (o *rootOptions) overrides() map[string]string {
	return map[string]string{
		"CATALOG_URL": o.catalogURL,
		"LOG_LEVEL":   o.logLevel,
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "shopping-cart",
		Short: "Terminal storefront with a session shopping cart",
		Long: `shopping-cart fetches a product catalog and lets you add and remove
products from a cart held for the session.

Run without arguments to start the storefront. Configuration comes from the
environment (CATALOG_URL, LOG_FILE, REDIS_ADDR, ADMIN_ADDR, ...).`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStorefront(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.catalogURL, "catalog-url", "", "catalog endpoint (overrides CATALOG_URL)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	cmd.AddCommand(newCatalogServerCmd(opts))
	return cmd
}

func newCatalogServerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog-server",
		Short: "Serve the bundled product catalog over HTTP",
		Long: `catalog-server serves a fixed product catalog in the same JSON shape as
the public catalog API, for offline use and tests. Point the storefront at it
with --catalog-url http://localhost:8090/products.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalogServer(cmd.Context(), opts)
		},
	}
}

func runStorefront(parent context.Context, opts *rootOptions) error {
	cfg, err := config.LoadWithOverrides(opts.overrides())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal UI owns stdout.
	log, closeLog, err := logger.NewFile(app.StorefrontName, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = closeLog() }()

	log.Info("starting storefront",
		slog.String("environment", cfg.Environment),
		slog.String("catalog_url", cfg.CatalogURL),
		slog.Bool("cache", cfg.CacheEnabled()),
	)

	storefront, err := app.NewStorefront(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize storefront: %w", err)
	}

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return storefront.Run(ctx)
}

func runCatalogServer(parent context.Context, opts *rootOptions) error {
	cfg, err := config.LoadWithOverrides(opts.overrides())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(app.CatalogServerName, cfg.LogLevel)
	log.Info("starting catalog server",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.StubHTTPPort),
	)

	server, err := app.NewCatalogServer(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize catalog server: %w", err)
	}

	// Create a context that is canceled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("run catalog server: %w", err)
	}

	log.Info("catalog server stopped")
	return nil
}
