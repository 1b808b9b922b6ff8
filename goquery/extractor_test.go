package goquery_test

import (
	"testing"

	"github.com/fwojciec/chapterly"
	"github.com/fwojciec/chapterly/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("uses first matching content selector", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Novel - Chapter 3</title></head><body>
<div id="content"><p>Generic content</p></div>
<div class="chapter-content"><p>First line.</p><p>Second line.</p></div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/novel/3")

		require.NoError(t, err)
		assert.Equal(t, "Novel - Chapter 3", result.Title)
		assert.Contains(t, result.ContentHTML, "First line.")
		assert.NotContains(t, result.ContentHTML, "Generic content")
	})

	t.Run("skips selector matches without text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div id="chapter-content">   </div>
<div class="entry-content"><p>Real text</p></div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/c/1")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Real text")
	})

	t.Run("falls back to container with most paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="sidebar"><p>Links</p></div>
<div class="story"><p>One</p><p>Two</p><p>Three</p></div>
<div class="footer"><p>Copyright</p><p>Terms</p></div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/c/1")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<p>One</p>")
		assert.NotContains(t, result.ContentHTML, "Copyright")
	})

	t.Run("strips noise nodes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="chr-content">
<p>Story text</p>
<script>track()</script>
<ins class="adsbygoogle"></ins>
<div class="advert-box">Buy now</div>
<div class="sharedaddy">Share</div>
</div></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/c/1")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Story text")
		assert.NotContains(t, result.ContentHTML, "track()")
		assert.NotContains(t, result.ContentHTML, "Buy now")
		assert.NotContains(t, result.ContentHTML, "Share")
	})

	t.Run("custom selectors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="txt"><p>Custom</p></div><article><p>Other</p></article></body></html>`

		ext := goquery.NewExtractor(goquery.WithContentSelectors(".txt"))
		result, err := ext.Extract(html, "https://example.com/c/1")

		require.NoError(t, err)
		assert.Equal(t, "<p>Custom</p>", result.ContentHTML)
	})

	t.Run("returns EEXTRACT without paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><span>nothing here</span></body></html>`

		_, err := goquery.NewExtractor().Extract(html, "https://example.com/c/1")

		require.Error(t, err)
		assert.Equal(t, chapterly.EEXTRACT, chapterly.ErrorCode(err))
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract("  ", "https://example.com/c/1")

		require.Error(t, err)
		assert.Equal(t, chapterly.EINVALID, chapterly.ErrorCode(err))
	})
}
