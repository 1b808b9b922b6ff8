package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chapterly"
)

// Ensure LoggingTranslator implements chapterly.Translator.
var _ chapterly.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with debug logging.
type LoggingTranslator struct {
	next   chapterly.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next chapterly.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator and logs the call.
func (t *LoggingTranslator) Translate(ctx context.Context, text string) (out string, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("translate",
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, text)
}

// TranslateBatch delegates to the wrapped translator and logs the call.
func (t *LoggingTranslator) TranslateBatch(ctx context.Context, texts []string) (out []string, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("translate batch",
			"count", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.TranslateBatch(ctx, texts)
}
