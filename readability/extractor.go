// Package readability implements chapterly.Extractor with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/chapterly"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements chapterly.Extractor at compile time.
var _ chapterly.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scores the page and returns the best content container.
func (e *Extractor) Extract(rawHTML, pageURL string) (*chapterly.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, chapterly.Errorf(chapterly.EINVALID, "empty HTML input")
	}

	// A bad page URL only disables relative link resolution.
	u, _ := url.Parse(pageURL)

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "failed to parse content: %v", err)
	}

	content := strings.TrimSpace(article.Content)
	if content == "" {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "no readable content in %s", pageURL)
	}

	return &chapterly.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: content,
	}, nil
}
