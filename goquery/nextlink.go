package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chapterly"
)

// DefaultNextSelectors are the site-specific next-chapter selectors, tried
// in order before the keyword scan.
var DefaultNextSelectors = []string{
	"#next_chap",
	".btn-next",
	".next_page",
	`a[rel="next"]`,
	".next-chap",
	".nextchap",
	"a.next",
	".nav-next a",
}

// DefaultNextKeywords mark an anchor as a next-chapter link.
var DefaultNextKeywords = []string{
	"next",
	"lanjut",
	"berikutnya",
	"selanjutnya",
	">>",
	"»",
	"下一章",
	"下一页",
	"次へ",
	"다음",
}

// DefaultExcludeKeywords disqualify an anchor even if it has a next keyword.
var DefaultExcludeKeywords = []string{
	"comment",
	"daftar",
	"list",
	"prev",
	"back",
	"上一章",
}

// Ensure NextLinkResolver implements chapterly.NextLinkResolver at compile time.
var _ chapterly.NextLinkResolver = (*NextLinkResolver)(nil)

// NextLinkResolver finds the next chapter with a selector cascade and falls
// back to matching anchor text against keywords.
type NextLinkResolver struct {
	selectors []string
	keywords  []string
	excludes  []string
}

// NextLinkOption configures a NextLinkResolver.
type NextLinkOption func(*NextLinkResolver)

// WithNextSelectors replaces the selector cascade.
func WithNextSelectors(selectors ...string) NextLinkOption {
	return func(r *NextLinkResolver) {
		r.selectors = selectors
	}
}

// WithNextKeywords replaces the keyword lists. Keywords are matched against
// lower-cased anchor text.
func WithNextKeywords(keywords, excludes []string) NextLinkOption {
	return func(r *NextLinkResolver) {
		r.keywords = keywords
		r.excludes = excludes
	}
}

// NewNextLinkResolver creates a new NextLinkResolver.
func NewNextLinkResolver(opts ...NextLinkOption) *NextLinkResolver {
	r := &NextLinkResolver{
		selectors: DefaultNextSelectors,
		keywords:  DefaultNextKeywords,
		excludes:  DefaultExcludeKeywords,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveNextLink returns the absolute next-chapter URL or "" if none.
func (r *NextLinkResolver) ResolveNextLink(html, baseURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", chapterly.Errorf(chapterly.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return "", err
	}

	for _, sel := range r.selectors {
		if next := firstUsableLink(doc.Find(sel), base); next != "" {
			return next, nil
		}
	}

	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !r.isNextText(s.Text()) {
			return true
		}
		next = usableHref(s, base)
		return next == ""
	})
	return next, nil
}

func (r *NextLinkResolver) isNextText(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	for _, kw := range r.excludes {
		if strings.Contains(text, kw) {
			return false
		}
	}
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// firstUsableLink returns the first resolvable href among the matches.
// Non-anchor matches contribute their first descendant anchor.
func firstUsableLink(matches *goquery.Selection, base *url.URL) string {
	var next string
	matches.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !s.Is("a") {
			s = s.Find("a[href]").First()
		}
		next = usableHref(s, base)
		return next == ""
	})
	return next
}

func usableHref(s *goquery.Selection, base *url.URL) string {
	href, exists := s.Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return ""
	}
	if isNonHTTPLink(href) {
		return ""
	}
	return resolveURL(base, href)
}
