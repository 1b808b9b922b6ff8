// Package memory provides an in-process chapterly.DocumentCache.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/fwojciec/chapterly"
)

// Ensure Cache implements chapterly.DocumentCache at compile time.
var _ chapterly.DocumentCache = (*Cache)(nil)

// Cache is a bounded, expiring document cache. Entries are evicted in
// insertion order once the cache is full; storing an existing URL again
// counts as a new insertion.
// Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	order    *list.List // of *entry, oldest at front
	entries  map[string]*list.Element

	// Now returns the current time. Replaceable for tests.
	Now func() time.Time
}

type entry struct {
	doc        chapterly.Document
	insertedAt time.Time
}

// NewCache creates a cache. Non-positive values use chapterly.DefaultCacheTTL
// and chapterly.DefaultCacheCapacity.
func NewCache(ttl time.Duration, capacity int) *Cache {
	if ttl <= 0 {
		ttl = chapterly.DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = chapterly.DefaultCacheCapacity
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
		Now:      time.Now,
	}
}

// Lookup returns a copy of the cached document for url.
func (c *Cache) Lookup(ctx context.Context, url string) (*chapterly.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[url]
	if !ok {
		return nil, chapterly.Errorf(chapterly.ENOTFOUND, "no cached document for %s", url)
	}

	e := elem.Value.(*entry)
	if c.Now().Sub(e.insertedAt) >= c.ttl {
		c.remove(elem)
		return nil, chapterly.Errorf(chapterly.ENOTFOUND, "cached document for %s expired", url)
	}

	doc := e.doc
	return &doc, nil
}

// Store caches a copy of doc under doc.CurrentURL.
func (c *Cache) Store(ctx context.Context, doc *chapterly.Document) error {
	if doc == nil || doc.CurrentURL == "" {
		return chapterly.Errorf(chapterly.EINVALID, "document current URL required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[doc.CurrentURL]; ok {
		c.remove(elem)
	}
	for c.order.Len() >= c.capacity {
		c.remove(c.order.Front())
	}

	c.entries[doc.CurrentURL] = c.order.PushBack(&entry{
		doc:        *doc,
		insertedAt: c.Now(),
	})
	return nil
}

// Len returns the number of entries, including expired ones not yet
// removed.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) remove(elem *list.Element) {
	e := c.order.Remove(elem).(*entry)
	delete(c.entries, e.doc.CurrentURL)
}
