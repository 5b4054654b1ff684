package sessioncache

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache holds short-lived per-user state such as routing decisions for
// the current conversational turn. Entries are always scoped by user id
// and expire after a bounded idle period — nothing here is shared across
// users or survives past the TTL.
type Cache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func (c *Cache) Get(userId string, kind string, key string) (any, bool) {
	return c.cache.Get(cacheKey(userId, kind, key))
}

func (c *Cache) Set(userId string, kind string, key string, value any) {
	c.cache.SetWithTTL(cacheKey(userId, kind, key), value, 1, c.ttl)
}

func (c *Cache) Del(userId string, kind string, key string) {
	c.cache.Del(cacheKey(userId, kind, key))
}

// Clear drops every entry, for session teardown in tests and demos.
func (c *Cache) Clear() {
	c.cache.Clear()
}

// Wait blocks until pending writes are visible. Ristretto applies sets
// asynchronously; tests need this.
func (c *Cache) Wait() {
	c.cache.Wait()
}

func cacheKey(userId string, kind string, key string) string {
	return strings.Join([]string{userId, kind, key}, "\x00")
}

func NewCache(opts ...Option) *Cache {
	options := NewOptions(opts...)

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: options.MaxEntries * 10,
		MaxCost:     options.MaxEntries,
		BufferItems: 64,
	})
	if err != nil {
		detail := "failed to initialize session cache"
		slog.Error(detail, "error", err)
		panic(detail)
	}

	return &Cache{
		cache: cache,
		ttl:   options.TTL,
	}
}
