// Package pipeline turns a chapter URL into a translated document by
// chaining fetch strategies, content extraction, title and next-link
// resolution, and chunked translation.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/chapterly"
)

// Ensure Pipeline implements chapterly.Reader at compile time.
var _ chapterly.Reader = (*Pipeline)(nil)

// Pipeline reads chapters. Source, Extractor, Titles, NextLinks and
// Paragraphs are required. Translator and Cache are optional: without a
// Translator chapters are returned untranslated, without a Cache every
// read goes to the network.
type Pipeline struct {
	Source     chapterly.PageSource
	Extractor  chapterly.Extractor
	Titles     chapterly.TitleResolver
	NextLinks  chapterly.NextLinkResolver
	Paragraphs chapterly.ParagraphEditor
	Translator *Translator
	Cache      chapterly.DocumentCache

	// FetchLimiter, if set, paces network fetches per host. Cache hits
	// are not paced.
	FetchLimiter *HostLimiter

	// Placeholder is the title used when none can be found.
	// Empty uses chapterly.DefaultTitle.
	Placeholder string

	Logger *slog.Logger
}

// Read returns the document for rawURL, serving it from the cache when a
// fresh entry exists.
func (p *Pipeline) Read(ctx context.Context, rawURL string) (*chapterly.Document, error) {
	u, err := chapterly.ParseSourceURL(rawURL)
	if err != nil {
		return nil, err
	}
	key := u.String()

	if doc := p.lookup(ctx, key); doc != nil {
		return doc, nil
	}

	if p.FetchLimiter != nil {
		if err := p.FetchLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	page, err := p.Source.FetchPage(ctx, key)
	if err != nil {
		return nil, err
	}

	extracted, err := p.Extractor.Extract(page.HTML, key)
	if err != nil {
		// The page came from upstream, so any extractor failure is a
		// server-side extraction error, never the caller's input.
		if chapterly.ErrorCode(err) != chapterly.EEXTRACT {
			err = chapterly.WrapErrorf(err, chapterly.EEXTRACT, "extracting %s", key)
		}
		return nil, err
	}
	if extracted.ContentHTML == "" {
		return nil, chapterly.Errorf(chapterly.EEXTRACT, "no content found in %s", key)
	}

	title, content, err := p.Titles.ResolveTitle(extracted.ContentHTML)
	if err != nil {
		return nil, chapterly.WrapErrorf(err, chapterly.EEXTRACT, "resolving title")
	}
	if title == "" {
		title = extracted.Title
	}
	if title == "" {
		title = p.placeholder()
	}

	// Next-link resolution works on the raw page, not the extracted fragment
	nextURL, err := p.NextLinks.ResolveNextLink(page.HTML, key)
	if err != nil {
		p.logger().Warn("next link resolution failed", "url", key, "err", err)
		nextURL = ""
	}

	doc := &chapterly.Document{
		Title:      title,
		Content:    content,
		NextURL:    nextURL,
		CurrentURL: key,
	}

	if p.Translator != nil {
		if err := p.translate(ctx, doc); err != nil {
			return nil, err
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, chapterly.WrapErrorf(err, chapterly.EEXTRACT, "building document")
	}

	p.store(ctx, doc)

	return doc, nil
}

// translate replaces doc's title and the text of translated paragraphs.
// Paragraphs of failed chunks are not rewritten, so their markup survives.
func (p *Pipeline) translate(ctx context.Context, doc *chapterly.Document) error {
	paragraphs, err := p.Paragraphs.Paragraphs(doc.Content)
	if err != nil {
		return chapterly.WrapErrorf(err, chapterly.EEXTRACT, "collecting paragraphs")
	}

	title, translated := p.Translator.TranslateChapter(ctx, doc.Title, paragraphs)

	content, err := p.Paragraphs.Rewrite(doc.Content, translated)
	if err != nil {
		return chapterly.WrapErrorf(err, chapterly.EINTERNAL, "rewriting paragraphs")
	}

	doc.Title = title
	doc.Content = content
	doc.IsTranslated = true
	return nil
}

func (p *Pipeline) lookup(ctx context.Context, key string) *chapterly.Document {
	if p.Cache == nil {
		return nil
	}
	doc, err := p.Cache.Lookup(ctx, key)
	if err != nil {
		if chapterly.ErrorCode(err) != chapterly.ENOTFOUND {
			p.logger().Warn("cache lookup failed", "url", key, "err", err)
		}
		return nil
	}
	p.logger().Debug("cache hit", "url", key)
	return doc
}

func (p *Pipeline) store(ctx context.Context, doc *chapterly.Document) {
	if p.Cache == nil {
		return
	}
	if err := p.Cache.Store(ctx, doc); err != nil {
		p.logger().Warn("cache store failed", "url", doc.CurrentURL, "err", err)
	}
}

func (p *Pipeline) placeholder() string {
	if p.Placeholder == "" {
		return chapterly.DefaultTitle
	}
	return p.Placeholder
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
