package mock

import (
	"context"

	"github.com/fwojciec/chapterly"
)

var _ chapterly.Converter = (*Converter)(nil)

// Converter is a mock implementation of chapterly.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ chapterly.ChapterWriter = (*ChapterWriter)(nil)

// ChapterWriter is a mock implementation of chapterly.ChapterWriter.
type ChapterWriter struct {
	WriteChapterFn func(ctx context.Context, doc *chapterly.Document) error
}

func (w *ChapterWriter) WriteChapter(ctx context.Context, doc *chapterly.Document) error {
	return w.WriteChapterFn(ctx, doc)
}
