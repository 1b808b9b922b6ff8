package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/chapterly"
)

// Strategy is a named way of fetching a page.
type Strategy struct {
	Name    string
	Fetcher chapterly.Fetcher
}

// Ensure Chain implements chapterly.PageSource at compile time.
var _ chapterly.PageSource = (*Chain)(nil)

// Chain tries fetch strategies in order and returns the first success.
// Failures before the last strategy are logged and the next strategy is
// tried; the whole chain is never retried.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewChain creates a Chain over strategies, tried in the given order.
// A nil logger discards log output.
func NewChain(logger *slog.Logger, strategies ...Strategy) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chain{strategies: strategies, logger: logger}
}

// Strategies returns the names of the configured strategies in order.
func (c *Chain) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name
	}
	return names
}

// FetchPage returns the page from the first strategy that succeeds.
// Returns EFETCH wrapping the last failure when all strategies fail.
func (c *Chain) FetchPage(ctx context.Context, url string) (*chapterly.RawPage, error) {
	if len(c.strategies) == 0 {
		return nil, chapterly.Errorf(chapterly.EFETCH, "no fetch strategies configured")
	}

	var lastErr error
	for i, s := range c.strategies {
		html, err := s.Fetcher.Fetch(ctx, url)
		if err == nil {
			return &chapterly.RawPage{URL: url, HTML: html, Strategy: s.Name}, nil
		}
		lastErr = err

		// A cancelled caller abandons the chain
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if i < len(c.strategies)-1 {
			c.logger.Warn("fetch strategy failed",
				"strategy", s.Name,
				"next", c.strategies[i+1].Name,
				"url", url,
				"err", err,
			)
		}
	}

	return nil, chapterly.WrapErrorf(lastErr, chapterly.EFETCH, "all fetch strategies failed for %s", url)
}

// Close closes every strategy's fetcher.
func (c *Chain) Close() error {
	var errs []error
	for _, s := range c.strategies {
		if err := s.Fetcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
