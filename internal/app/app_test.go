package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman11srivastava/shopping-cart/internal/catalog"
	"github.com/aman11srivastava/shopping-cart/internal/config"
	redisrepo "github.com/aman11srivastava/shopping-cart/internal/repository/redis"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()
	base := map[string]string{
		"CATALOG_MAX_RETRIES":    "0",
		"CATALOG_RETRY_WAIT_MIN": "1ms",
		"CATALOG_RETRY_WAIT_MAX": "1ms",
		"CATALOG_TIMEOUT":        "2s",
	}
	for k, v := range overrides {
		base[k] = v
	}
	cfg, err := config.LoadWithOverrides(base)
	require.NoError(t, err)
	return cfg
}

func startCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, err := NewCatalogServer(testConfig(t, nil), testLogger())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestCatalogServer_Routes(t *testing.T) {
	ts := startCatalogServer(t)

	for _, path := range []string{"/products", "/products/7", "/products/categories", "/health/ready", "/metrics"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestStorefront_FetchAndShop(t *testing.T) {
	ts := startCatalogServer(t)

	sf, err := NewStorefront(testConfig(t, map[string]string{"CATALOG_URL": ts.URL + "/products"}), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sf.Shutdown() })

	q := catalog.Run(context.Background(), sf.Fetcher())
	require.Equal(t, catalog.StatusSuccess, q.Status, "fetch error: %v", q.Err)
	require.NotEmpty(t, q.Products)

	var ring = -1
	for i, p := range q.Products {
		if p.ID == 7 {
			ring = i
		}
	}
	require.GreaterOrEqual(t, ring, 0)

	ctx := context.Background()
	store := sf.Store()
	store.AddToCart(ctx, q.Products[ring])
	store.AddToCart(ctx, q.Products[ring])
	require.Len(t, store.Cart(), 1)
	assert.Equal(t, 2, store.Cart()[0].Amount)

	store.RemoveFromCart(ctx, 7)
	assert.Equal(t, 1, store.TotalItems())
	store.RemoveFromCart(ctx, 7)
	assert.Empty(t, store.Cart())
}

func TestStorefront_CatalogDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	sf, err := NewStorefront(testConfig(t, map[string]string{"CATALOG_URL": ts.URL}), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sf.Shutdown() })

	q := catalog.Run(context.Background(), sf.Fetcher())
	assert.Equal(t, catalog.StatusError, q.Status)
	assert.Equal(t, catalog.KindStatus, catalog.KindOf(q.Err))
}

func TestStorefront_RedisCache(t *testing.T) {
	ts := startCatalogServer(t)
	mr := miniredis.RunT(t)

	sf, err := NewStorefront(testConfig(t, map[string]string{
		"CATALOG_URL": ts.URL + "/products",
		"REDIS_ADDR":  mr.Addr(),
	}), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sf.Shutdown() })

	_, ok := sf.Fetcher().(*catalog.CachedFetcher)
	require.True(t, ok)

	products, err := sf.Fetcher().FetchProducts(context.Background())
	require.NoError(t, err)
	assert.True(t, mr.Exists(redisrepo.CatalogKey))

	// Served from the cache once the upstream is gone.
	ts.Close()
	cached, err := sf.Fetcher().FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, cached)
}

func TestStorefront_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewStorefront(testConfig(t, map[string]string{"REDIS_ADDR": addr}), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestStorefront_RunStopsOnContextCancel(t *testing.T) {
	ts := startCatalogServer(t)

	sf, err := NewStorefront(testConfig(t, map[string]string{"CATALOG_URL": ts.URL + "/products"}), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err = sf.Run(ctx,
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	assert.NoError(t, err)
}

func TestStorefront_RunFailsWhenAdminAddrInUse(t *testing.T) {
	ts := startCatalogServer(t)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	sf, err := NewStorefront(testConfig(t, map[string]string{
		"CATALOG_URL": ts.URL + "/products",
		"ADMIN_ADDR":  busy.Addr().String(),
	}), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = sf.Run(ctx,
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin server")
}
