package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
	"github.com/aman11srivastava/shopping-cart/pkg/httpclient"
	"github.com/aman11srivastava/shopping-cart/pkg/logger"
	"github.com/aman11srivastava/shopping-cart/pkg/middleware"
)

const twoProducts = `[
	{"id":1,"title":"Backpack","price":109.95,"description":"Fits 15 inch laptops","category":"men's clothing","image":"https://img.example/1.jpg"},
	{"id":7,"title":"Ring","price":9.99,"description":"White gold plated","category":"jewelery","image":"https://img.example/7.jpg"}
]`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFetcher(t *testing.T, url string, retries int) *HTTPFetcher {
	t.Helper()
	client := httpclient.New(httpclient.Config{
		Timeout:         2 * time.Second,
		MaxRetries:      retries,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    5 * time.Millisecond,
		MaxConnsPerHost: 2,
	})
	cb := httpclient.NewCircuitBreakerClient(client, httpclient.CircuitBreakerConfig{
		Name:         t.Name(),
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}, testLogger())
	return NewHTTPFetcher(cb, url, testLogger())
}

func TestHTTPFetcher_Success(t *testing.T) {
	var gotCorrelation, gotSession string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCorrelation = r.Header.Get(middleware.HeaderCorrelationID)
		gotSession = r.Header.Get(middleware.HeaderSessionID)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoProducts))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, 0)
	ctx := logger.WithSessionID(context.Background(), "sess-1")

	products, err := f.FetchProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, domain.Product{
		ID:          7,
		Title:       "Ring",
		Price:       9.99,
		Description: "White gold plated",
		Category:    "jewelery",
		Image:       "https://img.example/7.jpg",
	}, products[1])
	assert.NotEmpty(t, gotCorrelation)
	assert.Equal(t, "sess-1", gotSession)
}

func TestHTTPFetcher_EmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	products, err := newTestFetcher(t, server.URL, 0).FetchProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"no catalog"}}`))
	}))
	defer server.Close()

	_, err := newTestFetcher(t, server.URL, 0).FetchProducts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindStatus, fe.Kind)
	assert.Equal(t, http.StatusNotFound, fe.Status)
}

func TestHTTPFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(twoProducts))
	}))
	defer server.Close()

	products, err := newTestFetcher(t, server.URL, 3).FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPFetcher_ServerErrorAfterRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestFetcher(t, server.URL, 2).FetchProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindStatus, KindOf(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPFetcher_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFetcher(t, url, 0).FetchProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestHTTPFetcher_OpenBreakerIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, 0)
	for i := 0; i < 2; i++ {
		_, err := f.FetchProducts(context.Background())
		require.Equal(t, KindStatus, KindOf(err))
	}

	_, err := f.FetchProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.ErrorIs(t, err, httpclient.ErrCircuitOpen)
}

func TestHTTPFetcher_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "object instead of array", body: `{"id":1}`},
		{name: "missing title", body: `[{"id":1,"price":1}]`},
		{name: "zero id", body: `[{"id":0,"title":"x","price":1}]`},
		{name: "negative price", body: `[{"id":1,"title":"x","price":-1}]`},
		{name: "duplicate ids", body: `[{"id":1,"title":"a","price":1},{"id":1,"title":"b","price":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestFetcher(t, server.URL, 0).FetchProducts(context.Background())
			require.Error(t, err)
			assert.Equal(t, KindMalformed, KindOf(err))
			assert.ErrorIs(t, err, ErrFetch)
		})
	}
}

func TestFetchError_Error(t *testing.T) {
	err := &FetchError{Kind: KindStatus, Status: 500, Err: errors.New("boom")}
	assert.Equal(t, "catalog fetch failed (status 500): boom", err.Error())

	err = &FetchError{Kind: KindNetwork, Err: errors.New("refused")}
	assert.Equal(t, "catalog fetch failed (network): refused", err.Error())
	assert.Equal(t, Kind(""), KindOf(errors.New("other")))
}
