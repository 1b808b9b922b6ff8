package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chapterly"
)

// Ensure LoggingReader implements chapterly.Reader.
var _ chapterly.Reader = (*LoggingReader)(nil)

// LoggingReader wraps a Reader and logs every chapter read.
type LoggingReader struct {
	next   chapterly.Reader
	logger *slog.Logger
}

// NewLoggingReader creates a new LoggingReader.
func NewLoggingReader(next chapterly.Reader, logger *slog.Logger) *LoggingReader {
	return &LoggingReader{next: next, logger: logger}
}

// Read delegates to the wrapped reader and logs the outcome.
func (r *LoggingReader) Read(ctx context.Context, rawURL string) (doc *chapterly.Document, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Error("read",
				"url", rawURL,
				"code", chapterly.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		r.logger.Info("read",
			"url", rawURL,
			"title", doc.Title,
			"next", doc.NextURL,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.Read(ctx, rawURL)
}
