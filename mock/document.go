package mock

import (
	"context"

	"github.com/fwojciec/chapterly"
)

var _ chapterly.Reader = (*Reader)(nil)

// Reader is a mock implementation of chapterly.Reader.
type Reader struct {
	ReadFn func(ctx context.Context, rawURL string) (*chapterly.Document, error)
}

func (r *Reader) Read(ctx context.Context, rawURL string) (*chapterly.Document, error) {
	return r.ReadFn(ctx, rawURL)
}

var _ chapterly.DocumentCache = (*DocumentCache)(nil)

// DocumentCache is a mock implementation of chapterly.DocumentCache.
type DocumentCache struct {
	LookupFn func(ctx context.Context, url string) (*chapterly.Document, error)
	StoreFn  func(ctx context.Context, doc *chapterly.Document) error
}

func (c *DocumentCache) Lookup(ctx context.Context, url string) (*chapterly.Document, error) {
	return c.LookupFn(ctx, url)
}

func (c *DocumentCache) Store(ctx context.Context, doc *chapterly.Document) error {
	return c.StoreFn(ctx, doc)
}
