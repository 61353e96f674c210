// Package requestcache provides a key-value cache whose lifetime is exactly
// one inbound request.
//
// Middleware installs a fresh Cache into the request context; anything
// resolved during the request is memoized there and discarded when the
// request ends. Namespaced sub-caches are created lazily, so unrelated
// callers never observe each other's keys.
//
// When no cache is installed (background jobs, tests without middleware),
// lookups simply miss and writes are dropped — resolution still works, it
// just isn't memoized.
package requestcache

import (
	"context"
	"net/http"
	"sync"
)

type cacheKey struct{}

// Cache is a per-request overlay of lazily created namespaced sub-caches.
type Cache struct {
	mu         sync.Mutex
	namespaces map[string]*Namespace
}

// New creates an empty request cache. Outside tests, prefer Middleware.
func New() *Cache {
	return &Cache{namespaces: make(map[string]*Namespace)}
}

// Namespace returns the sub-cache for the given key, creating it if needed.
func (c *Cache) Namespace(key string) *Namespace {
	c.mu.Lock()
	defer c.mu.Unlock()
	ns, ok := c.namespaces[key]
	if !ok {
		ns = &Namespace{values: make(map[string]bool)}
		c.namespaces[key] = ns
	}
	return ns
}

// Namespace is one sub-cache of resolved boolean values.
type Namespace struct {
	mu     sync.Mutex
	values map[string]bool
}

// Get returns the cached value for key and whether it was present.
// A nil receiver (no request cache installed) always misses.
func (n *Namespace) Get(key string) (value, ok bool) {
	if n == nil {
		return false, false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	value, ok = n.values[key]
	return value, ok
}

// Set pins the value for key for the remainder of the request.
// A nil receiver drops the write.
func (n *Namespace) Set(key string, value bool) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.values[key] = value
}

// From extracts the request cache from ctx, or nil if none is installed.
func From(ctx context.Context) *Cache {
	if c, ok := ctx.Value(cacheKey{}).(*Cache); ok {
		return c
	}
	return nil
}

// Namespaced returns the namespaced sub-cache from the context's request
// cache. Returns nil (a valid, always-missing Namespace receiver) when no
// cache is installed.
func Namespaced(ctx context.Context, namespace string) *Namespace {
	c := From(ctx)
	if c == nil {
		return nil
	}
	return c.Namespace(namespace)
}

// WithCache injects a cache into a context. Used by Middleware and by tests
// that exercise memoization without an HTTP request.
func WithCache(ctx context.Context, c *Cache) context.Context {
	return context.WithValue(ctx, cacheKey{}, c)
}

// Middleware installs a fresh request cache at the start of each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithCache(r.Context(), New())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
