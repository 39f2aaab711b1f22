package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMiddleware(t *testing.T) {
	cache, err := NewCache(2)
	require.NoError(t, err, "Failed to initialize cache")

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, "response-%s-%d", r.URL.Path, calls)
	}))

	// cache miss
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/materials", nil))
	assert.Equal(t, "response-/materials-1", rec.Body.String())

	// cache hit: handler not called again
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/materials", nil))
	assert.Equal(t, "response-/materials-1", rec.Body.String())
	assert.Equal(t, 1, calls)

	// different path - cache miss
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "response-/health-2", rec.Body.String())

	// A third entry evicts the least recently used one.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulations/abc", nil))
	assert.Equal(t, 3, calls)

	_, ok := cache.entries.Get(cacheKey(httptest.NewRequest(http.MethodGet, "/materials", nil)))
	assert.False(t, ok, "Expected first request to be evicted from cache")
}

func TestCacheMiddlewareSkipsPost(t *testing.T) {
	cache, err := NewCache(2)
	require.NoError(t, err)

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulations", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Equal(t, 2, calls, "POST requests must not be cached")
}

func TestCacheMiddlewareSkipsErrors(t *testing.T) {
	cache, err := NewCache(2)
	require.NoError(t, err)

	calls := 0
	handler := cache.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "not found", http.StatusNotFound)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulations/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Equal(t, 2, calls, "error responses must not be cached")
}
