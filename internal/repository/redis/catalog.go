package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
	"github.com/aman11srivastava/shopping-cart/pkg/database"
	apperrors "github.com/aman11srivastava/shopping-cart/pkg/errors"
)

// CatalogKey is the redis key holding the cached catalog.
const CatalogKey = "catalog:products"

// CatalogCache implements repository.CatalogCache using Redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a new Redis-backed catalog cache.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cached catalog from Redis. A miss is reported as
// apperrors.ErrNotFound.
func (c *CatalogCache) Get(ctx context.Context) (products []domain.Product, err error) {
	ctx, end := database.TraceCommand(ctx, "GET", CatalogKey)
	defer func() {
		// A miss is not a failed command.
		if errors.Is(err, apperrors.ErrNotFound) {
			end(nil)
			return
		}
		end(err)
	}()

	data, err := c.client.Get(ctx, CatalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("catalog", CatalogKey)
		}
		return nil, fmt.Errorf("redis get catalog: %w", err)
	}

	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	return products, nil
}

// Save stores the catalog in Redis with the configured TTL.
func (c *CatalogCache) Save(ctx context.Context, products []domain.Product) (err error) {
	ctx, end := database.TraceCommand(ctx, "SET", CatalogKey)
	defer func() { end(err) }()

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if err := c.client.Set(ctx, CatalogKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set catalog: %w", err)
	}

	return nil
}
