// Package rod provides a headless-browser implementation of chapterly.Fetcher
// for pages that only render their content with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/chapterly"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultNavigationTimeout bounds navigation up to DOMContentLoaded.
const DefaultNavigationTimeout = 30 * time.Second

// DefaultSettleDelay is how long to wait after DOMContentLoaded for
// client-side rendering to finish.
const DefaultSettleDelay = 2 * time.Second

// Budgets for the steps around navigation. Together with the navigation
// timeout and settle delay they make up the default fetch deadline.
const (
	launchTimeout  = 30 * time.Second
	captureTimeout = 10 * time.Second
)

// Ensure Fetcher implements chapterly.Fetcher at compile time.
var _ chapterly.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using headless Chrome.
// Every Fetch launches its own isolated browser process and tears it down
// before returning, on success and failure alike.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	navigationTimeout time.Duration
	settleDelay       time.Duration
	fetchTimeout      time.Duration
	bin               string
	onLaunch          func(pid int)
	closed            atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithNavigationTimeout sets the timeout for navigation.
// Defaults to DefaultNavigationTimeout (30s) if not specified.
func WithNavigationTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.navigationTimeout = d
	}
}

// WithSettleDelay sets the delay between DOMContentLoaded and capturing HTML.
// Defaults to DefaultSettleDelay (2s) if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// WithFetchTimeout bounds a whole Fetch, from browser launch to HTML
// capture. Defaults to the navigation timeout plus the settle delay plus
// fixed launch and capture budgets.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithBrowserBin sets the path of the Chrome/Chromium binary.
func WithBrowserBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// WithLaunchHook registers fn to be called with the PID of every browser
// process the fetcher launches. It exists for verifying process cleanup.
func WithLaunchHook(fn func(pid int)) Option {
	return func(f *Fetcher) {
		f.onLaunch = fn
	}
}

// NewFetcher creates a new headless-browser Fetcher.
// No browser is started until Fetch is called.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		navigationTimeout: DefaultNavigationTimeout,
		settleDelay:       DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.fetchTimeout <= 0 {
		f.fetchTimeout = launchTimeout + f.navigationTimeout + f.settleDelay + captureTimeout
	}
	return f
}

// Fetch launches a browser, navigates to the URL, waits for the DOM to be
// ready plus the settle delay, and returns the rendered HTML. Every step,
// launch and capture included, runs under the fetch timeout.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", chapterly.Errorf(chapterly.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	// Check context before paying for a browser launch
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s, err := launch(ctx, f.bin)
	if err != nil {
		return "", err
	}
	defer s.close()

	if f.onLaunch != nil {
		f.onLaunch(s.pid())
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      chapterly.UserAgent,
		AcceptLanguage: "en-US,en;q=0.5",
	}); err != nil {
		return "", err
	}

	// Navigation is bounded separately from the settle delay
	navCtx, cancelNav := context.WithTimeout(ctx, f.navigationTimeout)
	defer cancelNav()
	navPage := page.Context(navCtx)

	wait := navPage.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := navPage.Navigate(url); err != nil {
		return "", err
	}
	wait()
	if err := navCtx.Err(); err != nil {
		return "", err
	}

	// Give client-side rendering a moment to finish
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(f.settleDelay):
	}

	captureCtx, cancelCapture := context.WithTimeout(ctx, captureTimeout)
	defer cancelCapture()
	return page.Context(captureCtx).HTML()
}

// Close marks the fetcher closed. Browsers are owned by individual Fetch
// calls, so there is nothing else to release. Close is safe to call
// multiple times.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return nil
}
