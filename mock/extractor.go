package mock

import "github.com/fwojciec/chapterly"

var _ chapterly.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of chapterly.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*chapterly.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*chapterly.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
