package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/chapterly"
	"github.com/fwojciec/chapterly/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newCache(ttl time.Duration, capacity int) (*memory.Cache, *clock) {
	clk := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := memory.NewCache(ttl, capacity)
	c.Now = clk.Now
	return c, clk
}

func chapter(n int) *chapterly.Document {
	return &chapterly.Document{
		Title:      fmt.Sprintf("Chapter %d", n),
		Content:    fmt.Sprintf("<p>text %d</p>", n),
		CurrentURL: fmt.Sprintf("https://example.com/c/%d", n),
	}
}

func TestCache_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		c, _ := newCache(time.Minute, 10)
		doc := chapter(1)
		require.NoError(t, c.Store(context.Background(), doc))

		got, err := c.Lookup(context.Background(), doc.CurrentURL)

		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()

		c, _ := newCache(time.Minute, 10)
		doc := chapter(1)
		require.NoError(t, c.Store(context.Background(), doc))
		doc.Title = "changed after store"

		got, err := c.Lookup(context.Background(), doc.CurrentURL)
		require.NoError(t, err)
		got.Content = "changed after lookup"

		again, err := c.Lookup(context.Background(), doc.CurrentURL)
		require.NoError(t, err)
		assert.Equal(t, "Chapter 1", again.Title)
		assert.Equal(t, "<p>text 1</p>", again.Content)
	})

	t.Run("miss is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		c, _ := newCache(time.Minute, 10)

		_, err := c.Lookup(context.Background(), "https://example.com/none")

		require.Error(t, err)
		assert.Equal(t, chapterly.ENOTFOUND, chapterly.ErrorCode(err))
	})

	t.Run("expires after ttl", func(t *testing.T) {
		t.Parallel()

		c, clk := newCache(30*time.Minute, 10)
		doc := chapter(1)
		require.NoError(t, c.Store(context.Background(), doc))

		clk.Advance(30*time.Minute - time.Second)
		_, err := c.Lookup(context.Background(), doc.CurrentURL)
		require.NoError(t, err)

		clk.Advance(time.Second)
		_, err = c.Lookup(context.Background(), doc.CurrentURL)
		require.Error(t, err)
		assert.Equal(t, chapterly.ENOTFOUND, chapterly.ErrorCode(err))
		assert.Equal(t, 0, c.Len(), "expired entry should be removed")
	})
}

func TestCache_Store(t *testing.T) {
	t.Parallel()

	t.Run("evicts oldest insertion at capacity", func(t *testing.T) {
		t.Parallel()

		c, _ := newCache(time.Minute, 2)
		ctx := context.Background()
		require.NoError(t, c.Store(ctx, chapter(1)))
		require.NoError(t, c.Store(ctx, chapter(2)))

		// Reading does not refresh position
		_, err := c.Lookup(ctx, chapter(1).CurrentURL)
		require.NoError(t, err)

		require.NoError(t, c.Store(ctx, chapter(3)))

		assert.Equal(t, 2, c.Len())
		_, err = c.Lookup(ctx, chapter(1).CurrentURL)
		assert.Equal(t, chapterly.ENOTFOUND, chapterly.ErrorCode(err))
		_, err = c.Lookup(ctx, chapter(2).CurrentURL)
		assert.NoError(t, err)
		_, err = c.Lookup(ctx, chapter(3).CurrentURL)
		assert.NoError(t, err)
	})

	t.Run("restoring a key moves it to newest", func(t *testing.T) {
		t.Parallel()

		c, _ := newCache(time.Minute, 2)
		ctx := context.Background()
		require.NoError(t, c.Store(ctx, chapter(1)))
		require.NoError(t, c.Store(ctx, chapter(2)))
		require.NoError(t, c.Store(ctx, chapter(1)))
		require.NoError(t, c.Store(ctx, chapter(3)))

		_, err := c.Lookup(ctx, chapter(2).CurrentURL)
		assert.Equal(t, chapterly.ENOTFOUND, chapterly.ErrorCode(err))
		_, err = c.Lookup(ctx, chapter(1).CurrentURL)
		assert.NoError(t, err)
	})

	t.Run("restoring resets ttl", func(t *testing.T) {
		t.Parallel()

		c, clk := newCache(time.Minute, 10)
		ctx := context.Background()
		require.NoError(t, c.Store(ctx, chapter(1)))
		clk.Advance(50 * time.Second)
		require.NoError(t, c.Store(ctx, chapter(1)))
		clk.Advance(50 * time.Second)

		_, err := c.Lookup(ctx, chapter(1).CurrentURL)
		assert.NoError(t, err)
	})

	t.Run("requires current URL", func(t *testing.T) {
		t.Parallel()

		c, _ := newCache(time.Minute, 10)

		err := c.Store(context.Background(), &chapterly.Document{Content: "<p>x</p>"})

		require.Error(t, err)
		assert.Equal(t, chapterly.EINVALID, chapterly.ErrorCode(err))
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		c, _ := newCache(0, 0)
		ctx := context.Background()
		for i := range chapterly.DefaultCacheCapacity + 5 {
			require.NoError(t, c.Store(ctx, chapter(i)))
		}

		assert.Equal(t, chapterly.DefaultCacheCapacity, c.Len())
	})
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c, _ := newCache(time.Minute, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Store(ctx, chapter(i))
			_, _ = c.Lookup(ctx, chapter(i%10).CurrentURL)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}
