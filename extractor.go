package chapterly

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page-level title (e.g. the <title> element), if any.
	Title string

	// ContentHTML is the main content as an HTML fragment.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The pageURL is used to resolve relative links.
	// Returns EINVALID for empty input and EEXTRACT when no content
	// container could be found.
	Extract(html string, pageURL string) (*ExtractResult, error)
}
