package mock

import (
	"context"

	"github.com/fwojciec/chapterly"
)

var _ chapterly.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of chapterly.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ chapterly.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of chapterly.PageSource.
type PageSource struct {
	FetchPageFn func(ctx context.Context, url string) (*chapterly.RawPage, error)
}

func (s *PageSource) FetchPage(ctx context.Context, url string) (*chapterly.RawPage, error) {
	return s.FetchPageFn(ctx, url)
}
