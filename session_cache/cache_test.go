package sessioncache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheIsScopedByUser(t *testing.T) {
	c := NewCache()

	c.Set("u1", "route", "my salary", "work")
	c.Wait()

	value, ok := c.Get("u1", "route", "my salary")
	require.True(t, ok)
	assert.Equal(t, "work", value)

	// same kind and key, different user
	_, ok = c.Get("u2", "route", "my salary")
	assert.False(t, ok)
}

func TestCacheDel(t *testing.T) {
	c := NewCache()

	c.Set("u1", "route", "query", "general")
	c.Wait()

	c.Del("u1", "route", "query")
	c.Wait()

	_, ok := c.Get("u1", "route", "query")
	assert.False(t, ok)
}

func TestCacheTTL(t *testing.T) {
	c := NewCache(WithTTL(20 * time.Millisecond))

	c.Set("u1", "route", "query", "general")
	c.Wait()

	assert.Eventually(t, func() bool {
		_, ok := c.Get("u1", "route", "query")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
