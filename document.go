package chapterly

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Cache defaults.
const (
	DefaultCacheTTL      = 30 * time.Minute
	DefaultCacheCapacity = 100
)

// Document is a normalized, translated chapter.
// A Document is never modified after it has been created.
type Document struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	NextURL      string `json:"nextUrl"`
	CurrentURL   string `json:"currentUrl"`
	IsTranslated bool   `json:"isTranslated"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.CurrentURL == "" {
		return Errorf(EINVALID, "document current URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// HasNext reports whether the document links to a next chapter.
func (d *Document) HasNext() bool {
	return d.NextURL != ""
}

// ParseSourceURL validates a chapter URL. It must be absolute, use the
// http or https scheme, and name a host.
func ParseSourceURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(EINVALID, "url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "invalid url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "invalid url %q: missing host", raw)
	}
	return u, nil
}

// Reader turns a chapter URL into a translated Document.
type Reader interface {
	// Read returns the document for rawURL.
	// Returns EINVALID for malformed URLs, EFETCH when the page could not be
	// fetched, and EEXTRACT when no content could be found.
	Read(ctx context.Context, rawURL string) (*Document, error)
}

// DocumentCache stores documents keyed by their source URL.
// Entries expire after a TTL and the cache holds a bounded number of
// entries, evicting the oldest insertion first.
type DocumentCache interface {
	// Lookup returns a copy of the document cached for url.
	// Returns ENOTFOUND if there is no entry or the entry has expired.
	Lookup(ctx context.Context, url string) (*Document, error)

	// Store caches doc under doc.CurrentURL, replacing any existing entry.
	Store(ctx context.Context, doc *Document) error
}
