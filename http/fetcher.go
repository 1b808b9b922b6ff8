// Package http provides HTTP-based implementations of chapterly services:
// a direct page fetcher, a rendering-proxy fetcher, a translator backed by
// the Google Translate web endpoint, and the HTTP server that exposes the
// reading pipeline.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/chapterly"
)

// DefaultFetchTimeout is the default timeout for direct HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMinLength is the minimum body length, in bytes, for a direct
// response to count as a real page rather than an error or stub page.
const DefaultMinLength = 500

// maxBodySize caps how much of a response body is read.
const maxBodySize = 5 << 20

// DefaultChallengeMarkers are substrings of bot-challenge interstitials.
var DefaultChallengeMarkers = []string{
	"cf-browser-verification",
	"cf-challenge",
	"challenge-platform",
	"<title>Just a moment...</title>",
}

// Ensure Fetcher implements chapterly.Fetcher at compile time.
var _ chapterly.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML with a single plain GET request.
// It does not execute JavaScript. Responses that are too short or that
// look like a bot challenge are reported as errors so that a slower
// strategy can take over.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	minLength int
	markers   []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMinLength sets the minimum accepted body length in bytes.
func WithMinLength(n int) Option {
	return func(f *Fetcher) {
		f.minLength = n
	}
}

// WithChallengeMarkers replaces the list of bot-challenge markers.
func WithChallengeMarkers(markers ...string) Option {
	return func(f *Fetcher) {
		f.markers = markers
	}
}

// NewFetcher creates a new direct HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		minLength: DefaultMinLength,
		markers:   DefaultChallengeMarkers,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	html := string(body)

	if len(html) <= f.minLength {
		return "", fmt.Errorf("response too short for %s: %d bytes", url, len(html))
	}
	for _, marker := range f.markers {
		if strings.Contains(html, marker) {
			return "", fmt.Errorf("bot challenge detected for %s: %q", url, marker)
		}
	}

	return html, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", chapterly.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}
