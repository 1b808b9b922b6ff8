package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/chapterly"
)

// DefaultProxyEndpoint is the rendering proxy used when none is configured.
const DefaultProxyEndpoint = "https://app.scrapingbee.com/api/v1/"

// DefaultProxyTimeout bounds a single proxy render, which includes the
// time the proxy spends running the page's JavaScript.
const DefaultProxyTimeout = 60 * time.Second

// Ensure ProxyFetcher implements chapterly.Fetcher at compile time.
var _ chapterly.Fetcher = (*ProxyFetcher)(nil)

// ProxyFetcher delegates rendering to a third-party proxy service that
// fetches the page, executes its JavaScript, and returns the final HTML.
type ProxyFetcher struct {
	client   *http.Client
	endpoint string
	apiKey   string
	timeout  time.Duration
}

// ProxyOption configures a ProxyFetcher.
type ProxyOption func(*ProxyFetcher)

// WithProxyEndpoint sets the proxy API endpoint.
func WithProxyEndpoint(endpoint string) ProxyOption {
	return func(f *ProxyFetcher) {
		f.endpoint = endpoint
	}
}

// WithProxyTimeout sets the timeout for proxy requests.
func WithProxyTimeout(d time.Duration) ProxyOption {
	return func(f *ProxyFetcher) {
		f.timeout = d
	}
}

// NewProxyFetcher creates a ProxyFetcher authenticating with apiKey.
func NewProxyFetcher(apiKey string, opts ...ProxyOption) *ProxyFetcher {
	f := &ProxyFetcher{
		endpoint: DefaultProxyEndpoint,
		apiKey:   apiKey,
		timeout:  DefaultProxyTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch asks the proxy to render pageURL and returns the rendered HTML.
// Any non-2xx response or an empty body is an error.
func (f *ProxyFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if f.apiKey == "" {
		return "", chapterly.Errorf(chapterly.EINVALID, "proxy API key required")
	}

	endpoint, err := url.Parse(f.endpoint)
	if err != nil {
		return "", chapterly.Errorf(chapterly.EINVALID, "invalid proxy endpoint: %v", err)
	}
	q := endpoint.Query()
	q.Set("api_key", f.apiKey)
	q.Set("url", pageURL)
	q.Set("render_js", "true")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}

	// The request URL carries the API key, so errors report the page URL only.
	resp, err := f.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", fmt.Errorf("proxy request for %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("proxy returned HTTP %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(string(body)) == "" {
		return "", fmt.Errorf("proxy returned an empty page for %s", pageURL)
	}

	return string(body), nil
}

// Close is a no-op.
func (f *ProxyFetcher) Close() error {
	return nil
}
