// Package trafilatura implements chapterly.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/chapterly"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements chapterly.Extractor at compile time.
var _ chapterly.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs trafilatura with its fallback extractors enabled.
func (e *Extractor) Extract(rawHTML, pageURL string) (*chapterly.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, chapterly.Errorf(chapterly.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "failed to extract content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "no readable content in %s", pageURL)
	}

	content, err := renderChildren(result.ContentNode)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "no readable content in %s", pageURL)
	}

	return &chapterly.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: content,
	}, nil
}

// renderChildren renders the children of n, dropping trafilatura's
// wrapper element.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", chapterly.Errorf(chapterly.EINTERNAL, "failed to render content: %v", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
