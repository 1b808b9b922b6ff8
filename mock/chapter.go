package mock

import "github.com/fwojciec/chapterly"

var _ chapterly.TitleResolver = (*TitleResolver)(nil)

// TitleResolver is a mock implementation of chapterly.TitleResolver.
type TitleResolver struct {
	ResolveTitleFn func(fragment string) (string, string, error)
}

func (r *TitleResolver) ResolveTitle(fragment string) (string, string, error) {
	return r.ResolveTitleFn(fragment)
}

var _ chapterly.NextLinkResolver = (*NextLinkResolver)(nil)

// NextLinkResolver is a mock implementation of chapterly.NextLinkResolver.
type NextLinkResolver struct {
	ResolveNextLinkFn func(html, baseURL string) (string, error)
}

func (r *NextLinkResolver) ResolveNextLink(html, baseURL string) (string, error) {
	return r.ResolveNextLinkFn(html, baseURL)
}
