package middleware

// This in-memory cache is used for simplicity purpose. It can be replaced with Redis.
// golang-lru automatically evicts the least recently accessed items, ensuring efficient memory usage.

import (
	"bytes"
	"fmt"
	"net/http"

	lru "github.com/hashicorp/golang-lru"
)

type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

// responseBuffer records the full response so it can be replayed on a hit.
type responseBuffer struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: http.Header{}, status: http.StatusOK}
}

func (b *responseBuffer) Header() http.Header { return b.header }

func (b *responseBuffer) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *responseBuffer) WriteHeader(status int) { b.status = status }

// Cache is an LRU response cache for idempotent GET endpoints.
type Cache struct {
	entries *lru.Cache
}

// NewCache sets up an in-memory LRU cache of the given size.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Middleware serves cached 200 responses for repeated GETs and records
// misses. Non-GET requests pass straight through.
func (c *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)
		if entry, ok := c.entries.Get(key); ok {
			replay(w, entry.(*cachedResponse))
			return
		}

		buffer := newResponseBuffer()
		next.ServeHTTP(buffer, r)

		entry := &cachedResponse{
			status: buffer.status,
			header: buffer.header.Clone(),
			body:   buffer.body.Bytes(),
		}
		if entry.status == http.StatusOK {
			c.entries.Add(key, entry)
		}
		replay(w, entry)
	})
}

func replay(w http.ResponseWriter, entry *cachedResponse) {
	for name, values := range entry.header {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	w.WriteHeader(entry.status)
	w.Write(entry.body)
}

// cacheKey generates a cache key based on the request path and query.
func cacheKey(r *http.Request) string {
	return fmt.Sprintf("%s:%s?%s", r.Method, r.URL.Path, r.URL.RawQuery)
}
