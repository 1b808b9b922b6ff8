package chapterly

import "context"

// UserAgent is sent by fetchers that talk to sites directly so that sites
// serve their regular desktop page.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher retrieves HTML from URLs using a single strategy.
// Implementations range from plain HTTP requests to browser automation
// and third-party rendering services.
type Fetcher interface {
	// Fetch retrieves the HTML for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RawPage is the HTML obtained for a URL, tagged with the name of the
// fetch strategy that produced it.
type RawPage struct {
	URL      string
	HTML     string
	Strategy string
}

// PageSource produces a RawPage for a URL, choosing among fetch strategies.
// Returns EFETCH when every strategy failed.
type PageSource interface {
	FetchPage(ctx context.Context, url string) (*RawPage, error)
}
