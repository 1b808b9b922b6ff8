package chapterly

// DefaultTitle is used when neither the content nor the page has a title.
const DefaultTitle = "Untitled"

// TitleResolver finds the chapter heading inside extracted content.
type TitleResolver interface {
	// ResolveTitle returns the first chapter heading in fragment and a copy
	// of fragment with that heading removed. The input is not modified.
	// Returns an empty title and the unchanged fragment when nothing matches.
	ResolveTitle(fragment string) (title string, content string, err error)
}

// NextLinkResolver finds the "next chapter" link of a page.
type NextLinkResolver interface {
	// ResolveNextLink parses the full page HTML and returns the absolute URL
	// of the next chapter, resolved against baseURL.
	// Returns an empty string when the page has no next chapter.
	ResolveNextLink(html string, baseURL string) (string, error)
}

// Paragraph is a translatable unit of text.
// ID identifies the element that produced the text so that translated
// text can be written back to the same place.
type Paragraph struct {
	ID   int
	Text string
}

// ParagraphEditor reads paragraphs from an HTML fragment and writes
// replacement text back.
type ParagraphEditor interface {
	// Paragraphs returns the non-empty paragraphs of fragment in reading order.
	Paragraphs(fragment string) ([]Paragraph, error)

	// Rewrite returns a copy of fragment where the text of each paragraph
	// is replaced by the paragraph with the same ID. Paragraphs not listed
	// are left untouched.
	Rewrite(fragment string, paragraphs []Paragraph) (string, error)
}
