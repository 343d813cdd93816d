package resolution

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	tenant := &Tenant{ID: uuid.New(), Slug: "acme", Status: StatusApproved}

	t.Run("stores and retrieves entries", func(t *testing.T) {
		t.Parallel()

		c := newMemoryCache(time.Minute, 10, time.Now)
		c.Set(context.Background(), "slug:acme", Entry{Tenant: tenant})

		entry, ok := c.Get(context.Background(), "slug:acme")
		require.True(t, ok)
		require.NotNil(t, entry.Tenant)
		assert.Equal(t, "acme", entry.Tenant.Slug)
	})

	t.Run("distinguishes negative entries from misses", func(t *testing.T) {
		t.Parallel()

		c := newMemoryCache(time.Minute, 10, time.Now)
		c.Set(context.Background(), "slug:ghost", Entry{})

		entry, ok := c.Get(context.Background(), "slug:ghost")
		assert.True(t, ok)
		assert.True(t, entry.Negative())

		_, ok = c.Get(context.Background(), "slug:never-seen")
		assert.False(t, ok)
	})

	t.Run("expires entries lazily on read", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		clock := func() time.Time { return now }
		c := newMemoryCache(5*time.Minute, 10, func() time.Time { return clock() })

		c.Set(context.Background(), "slug:acme", Entry{Tenant: tenant})

		_, ok := c.Get(context.Background(), "slug:acme")
		assert.True(t, ok)

		// Within the TTL window the entry is still served.
		clock = func() time.Time { return now.Add(4 * time.Minute) }
		_, ok = c.Get(context.Background(), "slug:acme")
		assert.True(t, ok)

		// Past the TTL it reads as a miss but stays in the map until
		// the next Set overwrites it.
		clock = func() time.Time { return now.Add(6 * time.Minute) }
		_, ok = c.Get(context.Background(), "slug:acme")
		assert.False(t, ok)
		assert.Len(t, c.items, 1)

		c.Set(context.Background(), "slug:acme", Entry{Tenant: tenant})
		_, ok = c.Get(context.Background(), "slug:acme")
		assert.True(t, ok)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		t.Parallel()

		c := newMemoryCache(time.Minute, 10, time.Now)
		c.Set(context.Background(), "slug:acme", Entry{Tenant: tenant})
		c.Invalidate(context.Background(), "slug:acme")

		_, ok := c.Get(context.Background(), "slug:acme")
		assert.False(t, ok)
	})

	t.Run("evicts oldest insertion when full", func(t *testing.T) {
		t.Parallel()

		c := newMemoryCache(time.Minute, 2, time.Now)
		c.Set(context.Background(), "a", Entry{})
		c.Set(context.Background(), "b", Entry{})
		c.Set(context.Background(), "c", Entry{})

		_, ok := c.Get(context.Background(), "a")
		assert.False(t, ok)
		_, ok = c.Get(context.Background(), "b")
		assert.True(t, ok)
		_, ok = c.Get(context.Background(), "c")
		assert.True(t, ok)
	})

	t.Run("concurrent access does not corrupt the map", func(t *testing.T) {
		t.Parallel()

		c := newMemoryCache(time.Minute, 100, time.Now)
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(2)
			key := "slug:" + string(rune('a'+i%26))
			go func() {
				defer wg.Done()
				c.Set(context.Background(), key, Entry{Tenant: tenant})
			}()
			go func() {
				defer wg.Done()
				c.Get(context.Background(), key)
			}()
		}
		wg.Wait()
	})
}
