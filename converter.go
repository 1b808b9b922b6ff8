package chapterly

import "context"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}

// ChapterWriter persists a chapter outside of the cache, e.g. to disk.
type ChapterWriter interface {
	WriteChapter(ctx context.Context, doc *Document) error
}
