// Package slog provides log/slog decorators for chapterly services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chapterly"
)

// Ensure LoggingFetcher implements chapterly.Fetcher.
var _ chapterly.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next     chapterly.Fetcher
	strategy string
	logger   *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher. The strategy name is
// attached to every log line.
func NewLoggingFetcher(next chapterly.Fetcher, strategy string, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, strategy: strategy, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"strategy", f.strategy,
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
