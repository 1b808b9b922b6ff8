package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chapterly"
)

var (
	latinHeading = regexp.MustCompile(`(?i)^(chapter|bab|ch\.?)\s*\d+`)
	cjkHeading   = regexp.MustCompile(`第\s*\d+\s*章`)
)

// headingCandidates are scanned in document order for a chapter heading.
const headingCandidates = "p, h1, h2, h3, h4"

// IsChapterHeading reports whether text looks like a chapter heading,
// e.g. "Chapter 12", "Bab 5", "Ch.3" or "第7章".
func IsChapterHeading(text string) bool {
	return latinHeading.MatchString(text) || cjkHeading.MatchString(text)
}

// Ensure TitleResolver implements chapterly.TitleResolver at compile time.
var _ chapterly.TitleResolver = (*TitleResolver)(nil)

// TitleResolver lifts the chapter heading out of extracted content.
type TitleResolver struct{}

// NewTitleResolver creates a new TitleResolver.
func NewTitleResolver() *TitleResolver {
	return &TitleResolver{}
}

// ResolveTitle returns the first chapter heading and the fragment without it.
func (r *TitleResolver) ResolveTitle(fragment string) (string, string, error) {
	doc, err := parseDocument(fragment)
	if err != nil {
		return "", "", err
	}

	var heading *goquery.Selection
	var title string
	doc.Find(headingCandidates).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalizeText(s.Text())
		if !IsChapterHeading(text) {
			return true
		}
		heading, title = s, text
		return false
	})
	if heading == nil {
		return "", fragment, nil
	}

	heading.Remove()
	content, err := fragmentHTML(doc)
	if err != nil {
		return "", "", err
	}
	return title, content, nil
}
