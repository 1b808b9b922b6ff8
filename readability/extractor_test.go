package readability_test

import (
	"testing"

	"github.com/fwojciec/chapterly"
	"github.com/fwojciec/chapterly/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapterPage = `<!DOCTYPE html>
<html>
<head><title>Chapter 3 - The Bridge | Example Novels</title></head>
<body>
<nav><a href="/">Home</a><a href="/novels">Novel List</a></nav>
<aside class="sidebar"><p>Popular this week</p></aside>
<article>
<h2>Chapter 3</h2>
<p>The rain had not stopped for three days, and the river swelled against the old stone bridge.</p>
<p>Mira pulled her cloak tighter and stepped onto the slick cobbles, counting each step under her breath.</p>
<p>On the far bank a lantern swung in the wind, and somebody was calling her name.</p>
</article>
<footer><p>Copyright Example Novels</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("keeps chapter paragraphs", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(chapterPage, "https://example.com/novel/3")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "stone bridge")
		assert.Contains(t, result.ContentHTML, "calling her name")
		assert.Contains(t, result.ContentHTML, "<p")
	})

	t.Run("drops page chrome", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(chapterPage, "https://example.com/novel/3")

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Novel List")
		assert.NotContains(t, result.ContentHTML, "Popular this week")
		assert.NotContains(t, result.ContentHTML, "Copyright Example Novels")
	})

	t.Run("returns page title", func(t *testing.T) {
		t.Parallel()

		result, err := readability.NewExtractor().Extract(chapterPage, "https://example.com/novel/3")

		require.NoError(t, err)
		assert.Contains(t, result.Title, "Chapter 3")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("", "https://example.com/novel/3")

		require.Error(t, err)
		assert.Equal(t, chapterly.EINVALID, chapterly.ErrorCode(err))
	})
}
