package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/chapterly"
	"github.com/fwojciec/chapterly/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("separates paragraphs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>The gate was open.</p><p>Nobody was waiting.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "The gate was open.\n\nNobody was waiting.", md)
	})

	t.Run("uses underscores for inner thoughts", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><em>Not again,</em> she thought.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "_Not again,_ she thought.", md)
	})

	t.Run("renders scene breaks", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Night fell.</p><hr><p>Morning came.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "* * *")
	})

	t.Run("keeps strikethrough", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><del>System error</del> Level up!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "~~System error~~")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ")

		require.Error(t, err)
		assert.Equal(t, chapterly.EINVALID, chapterly.ErrorCode(err))
	})
}
