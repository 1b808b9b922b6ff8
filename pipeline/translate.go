package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chapterly"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Translation defaults.
const (
	DefaultChunkSize   = 40
	DefaultConcurrency = 2
)

// Translator splits a chapter into chunks and translates them with bounded
// concurrency. A failed call never fails the chapter: the affected text
// keeps its original value.
type Translator struct {
	Backend chapterly.Translator

	// ChunkSize is the number of paragraphs per batch request.
	ChunkSize int

	// Concurrency is the maximum number of chunks in flight.
	Concurrency int

	// RetryDelays are the waits between attempts of one call.
	// Nil uses DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// Limiter, if set, paces every backend call.
	Limiter *rate.Limiter

	Logger *slog.Logger
}

// TranslateChapter translates the title and paragraphs concurrently.
// It returns the translated title, or the original on failure, and only
// the paragraphs whose chunk was translated, in input order with their
// IDs. Paragraphs of failed chunks are left out so callers keep the
// original elements untouched. The input slice is not modified.
func (t *Translator) TranslateChapter(ctx context.Context, title string, paragraphs []chapterly.Paragraph) (string, []chapterly.Paragraph) {
	out := make([]chapterly.Paragraph, len(paragraphs))
	copy(out, paragraphs)
	ok := make([]bool, len(paragraphs))

	translatedTitle := title

	var g errgroup.Group
	g.Go(func() error {
		translatedTitle = t.translateTitle(ctx, title)
		return nil
	})
	g.Go(func() error {
		t.translateParagraphs(ctx, out, ok)
		return nil
	})
	_ = g.Wait()

	translated := make([]chapterly.Paragraph, 0, len(out))
	for i, p := range out {
		if ok[i] {
			translated = append(translated, p)
		}
	}
	return translatedTitle, translated
}

func (t *Translator) translateTitle(ctx context.Context, title string) string {
	if title == "" {
		return title
	}

	translated, err := Retry(ctx, t.retryDelays(), func(ctx context.Context) (string, error) {
		if err := t.wait(ctx); err != nil {
			return "", err
		}
		return t.Backend.Translate(ctx, title)
	}, t.onRetry("title"))
	if err != nil || translated == "" {
		t.logger().Warn("title translation failed, keeping original", "err", err)
		return title
	}
	return translated
}

// translateParagraphs rewrites paragraphs in place and marks the ones
// translated in ok. Each chunk owns a disjoint range of both slices.
func (t *Translator) translateParagraphs(ctx context.Context, paragraphs []chapterly.Paragraph, ok []bool) {
	size := t.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	concurrency := t.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for start := 0; start < len(paragraphs); start += size {
		end := min(start+size, len(paragraphs))
		chunk := paragraphs[start:end]
		done := ok[start:end]
		index := start / size
		g.Go(func() error {
			if t.translateChunk(ctx, index, chunk) {
				for i := range done {
					done[i] = true
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

// translateChunk reports whether chunk was translated.
func (t *Translator) translateChunk(ctx context.Context, index int, chunk []chapterly.Paragraph) bool {
	texts := make([]string, len(chunk))
	for i, p := range chunk {
		texts[i] = p.Text
	}

	translated, err := Retry(ctx, t.retryDelays(), func(ctx context.Context) ([]string, error) {
		if err := t.wait(ctx); err != nil {
			return nil, err
		}
		return t.Backend.TranslateBatch(ctx, texts)
	}, t.onRetry("chunk"))
	if err == nil && len(translated) != len(chunk) {
		err = chapterly.Errorf(chapterly.EINTERNAL, "got %d translations for %d paragraphs", len(translated), len(chunk))
	}
	if err != nil {
		t.logger().Warn("chunk translation failed, keeping original",
			"chunk", index,
			"paragraphs", len(chunk),
			"err", err,
		)
		return false
	}

	for i := range chunk {
		chunk[i].Text = translated[i]
	}
	return true
}

func (t *Translator) wait(ctx context.Context) error {
	if t.Limiter == nil {
		return nil
	}
	return t.Limiter.Wait(ctx)
}

func (t *Translator) retryDelays() []time.Duration {
	if t.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return t.RetryDelays
}

func (t *Translator) onRetry(what string) RetryFunc {
	return func(attempt int, err error) {
		t.logger().Debug("retrying translation", "what", what, "attempt", attempt, "err", err)
	}
}

func (t *Translator) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}
