package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chapterly"
)

// DefaultContentSelectors are tried in order; the first match with
// non-empty text is the chapter container.
var DefaultContentSelectors = []string{
	"#chapter-content",
	"#chr-content",
	".chapter-content",
	".chapter-c",
	".text-left",
	".reading-content",
	".entry-content",
	"#content",
	".content",
	"article",
}

// DefaultNoiseSelectors are removed from the chosen container.
var DefaultNoiseSelectors = []string{
	"script",
	"style",
	"noscript",
	"iframe",
	"ins",
	".ads",
	".ad",
	".adsbygoogle",
	"[class*='advert']",
	".sharedaddy",
}

// densityCandidates are scanned when no content selector matches.
const densityCandidates = "div, section, article, main"

// Ensure Extractor implements chapterly.Extractor at compile time.
var _ chapterly.Extractor = (*Extractor)(nil)

// Extractor finds chapter text with site selectors and falls back to the
// container with the most paragraphs.
type Extractor struct {
	contentSelectors []string
	noiseSelectors   []string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithContentSelectors replaces the content selector cascade.
func WithContentSelectors(selectors ...string) ExtractorOption {
	return func(e *Extractor) {
		e.contentSelectors = selectors
	}
}

// WithNoiseSelectors replaces the list of elements stripped from content.
func WithNoiseSelectors(selectors ...string) ExtractorOption {
	return func(e *Extractor) {
		e.noiseSelectors = selectors
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		contentSelectors: DefaultContentSelectors,
		noiseSelectors:   DefaultNoiseSelectors,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the inner HTML of the chapter container.
func (e *Extractor) Extract(html, pageURL string) (*chapterly.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, chapterly.Errorf(chapterly.EINVALID, "empty HTML input")
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	container := e.selectContainer(doc)
	if container == nil {
		container = densestContainer(doc)
	}
	if container == nil {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "no content found in %s", pageURL)
	}

	for _, sel := range e.noiseSelectors {
		container.Find(sel).Remove()
	}

	content, err := container.Html()
	if err != nil {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "failed to render content: %v", err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "no content found in %s", pageURL)
	}

	return &chapterly.ExtractResult{
		Title:       normalizeText(doc.Find("title").First().Text()),
		ContentHTML: content,
	}, nil
}

func (e *Extractor) selectContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range e.contentSelectors {
		var found *goquery.Selection
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.TrimSpace(s.Text()) == "" {
				return true
			}
			found = s
			return false
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// densestContainer returns the candidate with the most descendant
// paragraphs. Ties go to the first in document order.
func densestContainer(doc *goquery.Document) *goquery.Selection {
	var (
		best      *goquery.Selection
		bestCount int
	)
	doc.Find(densityCandidates).Each(func(_ int, s *goquery.Selection) {
		if n := s.Find("p").Length(); n > bestCount {
			best, bestCount = s, n
		}
	})
	return best
}
