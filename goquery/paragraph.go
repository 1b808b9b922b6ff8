package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chapterly"
)

// Ensure ParagraphEditor implements chapterly.ParagraphEditor at compile time.
var _ chapterly.ParagraphEditor = (*ParagraphEditor)(nil)

// ParagraphEditor reads and replaces the text of <p> elements.
// A paragraph ID is the element's index among all <p> elements of the
// fragment, so IDs are stable across parses of the same fragment.
type ParagraphEditor struct{}

// NewParagraphEditor creates a new ParagraphEditor.
func NewParagraphEditor() *ParagraphEditor {
	return &ParagraphEditor{}
}

// Paragraphs returns the non-empty paragraphs of fragment.
func (e *ParagraphEditor) Paragraphs(fragment string) ([]chapterly.Paragraph, error) {
	doc, err := parseDocument(fragment)
	if err != nil {
		return nil, err
	}

	var paragraphs []chapterly.Paragraph
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if text == "" {
			return
		}
		paragraphs = append(paragraphs, chapterly.Paragraph{ID: i, Text: text})
	})
	return paragraphs, nil
}

// Rewrite replaces the text of each listed paragraph. Inline markup inside
// a rewritten paragraph is replaced by plain text.
func (e *ParagraphEditor) Rewrite(fragment string, paragraphs []chapterly.Paragraph) (string, error) {
	if len(paragraphs) == 0 {
		return fragment, nil
	}

	doc, err := parseDocument(fragment)
	if err != nil {
		return "", err
	}

	byID := make(map[int]string, len(paragraphs))
	for _, p := range paragraphs {
		byID[p.ID] = p.Text
	}

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		if text, ok := byID[i]; ok {
			s.SetText(text)
		}
	})
	return fragmentHTML(doc)
}
