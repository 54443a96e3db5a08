// Package catalog retrieves the product catalog the storefront renders.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
	"github.com/aman11srivastava/shopping-cart/pkg/httpclient"
	"github.com/aman11srivastava/shopping-cart/pkg/logger"
	"github.com/aman11srivastava/shopping-cart/pkg/middleware"
	"github.com/aman11srivastava/shopping-cart/pkg/tracing"
	"github.com/aman11srivastava/shopping-cart/pkg/validator"
)

// maxCatalogBody bounds the size of a catalog payload.
const maxCatalogBody = 10 << 20

// Fetcher retrieves the full product catalog.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

// HTTPFetcher reads the catalog from a JSON HTTP endpoint returning an array
// of products.
type HTTPFetcher struct {
	client *httpclient.CircuitBreakerClient
	url    string
	logger *slog.Logger
}

// NewHTTPFetcher creates a fetcher for the catalog at url.
func NewHTTPFetcher(client *httpclient.CircuitBreakerClient, url string, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: client,
		url:    url,
		logger: logger,
	}
}

// FetchProducts requests the catalog, retrying transient failures, and
// validates every product. Failures are returned as *FetchError.
func (f *HTTPFetcher) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracing.Tracer("github.com/aman11srivastava/shopping-cart/internal/catalog").
		Start(ctx, "catalog.FetchProducts")
	defer span.End()

	start := time.Now()
	products, err := f.fetch(ctx)

	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	fetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	l := logger.WithContext(ctx, f.logger)
	if err != nil {
		l.WarnContext(ctx, "catalog fetch failed",
			slog.String("url", f.url),
			slog.String("kind", outcome),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	l.InfoContext(ctx, "catalog fetched",
		slog.String("url", f.url),
		slog.Int("products", len(products)),
		slog.Duration("duration", time.Since(start)),
	)
	return products, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.HeaderCorrelationID, uuid.New().String())
	if sessionID := logger.SessionIDFromContext(ctx); sessionID != "" {
		req.Header.Set(middleware.HeaderSessionID, sessionID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			return nil, &FetchError{Kind: KindStatus, Status: statusErr.StatusCode, Err: err}
		}
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeProducts(io.LimitReader(resp.Body, maxCatalogBody))
}

// decodeProducts parses and validates a catalog payload. Product IDs must be
// unique because the cart keys line items by ID.
func decodeProducts(r io.Reader) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, &FetchError{Kind: KindMalformed, Err: fmt.Errorf("decode catalog: %w", err)}
	}

	if err := validateProducts(products); err != nil {
		return nil, &FetchError{Kind: KindMalformed, Err: err}
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// validateProducts checks every product and rejects repeated IDs.
func validateProducts(products []domain.Product) error {
	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if err := validator.Validate(p); err != nil {
			return fmt.Errorf("product at index %d: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
