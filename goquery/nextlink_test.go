package goquery_test

import (
	"testing"

	"github.com/fwojciec/chapterly/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextLinkResolver_ResolveNextLink(t *testing.T) {
	t.Parallel()

	const base = "https://example.com/novel/chapter-1"

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "id selector",
			html: `<a href="/novel/chapter-0">Prev</a><a id="next_chap" href="/novel/chapter-2">→</a>`,
			want: "https://example.com/novel/chapter-2",
		},
		{
			name: "rel next",
			html: `<a rel="next" href="chapter-2">2</a>`,
			want: "https://example.com/novel/chapter-2",
		},
		{
			name: "container selector uses descendant anchor",
			html: `<div class="nav-next"><a href="/novel/chapter-2">Chapter 2</a></div>`,
			want: "https://example.com/novel/chapter-2",
		},
		{
			name: "selector order wins over document order",
			html: `<a class="next" href="/b">b</a><a class="btn-next" href="/a">a</a>`,
			want: "https://example.com/a",
		},
		{
			name: "keyword fallback",
			html: `<a href="/novel">Index</a><a href="/novel/chapter-2">Next Chapter &gt;&gt;</a>`,
			want: "https://example.com/novel/chapter-2",
		},
		{
			name: "indonesian keyword",
			html: `<a href="/novel/chapter-2">Lanjut</a>`,
			want: "https://example.com/novel/chapter-2",
		},
		{
			name: "chinese keyword",
			html: `<a href="/novel/chapter-2">下一章</a>`,
			want: "https://example.com/novel/chapter-2",
		},
		{
			name: "excluded keyword skipped",
			html: `<a href="/novel/chapter-1#comments">Next (Comments)</a><a href="/novel/chapter-2">Next</a>`,
			want: "https://example.com/novel/chapter-2",
		},
		{
			name: "previous link is not next",
			html: `<a href="/novel/chapter-0">&lt;&lt; Prev | Next &gt;&gt;</a>`,
			want: "",
		},
		{
			name: "javascript href skipped",
			html: `<a id="next_chap" href="javascript:void(0)">Next</a>`,
			want: "",
		},
		{
			name: "fragment-only self link skipped",
			html: `<a href="#top">Next</a>`,
			want: "",
		},
		{
			name: "no next link",
			html: `<p>The end.</p>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := goquery.NewNextLinkResolver().ResolveNextLink(tt.html, base)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("custom keywords", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewNextLinkResolver(goquery.WithNextKeywords([]string{"suivant"}, nil))
		got, err := r.ResolveNextLink(`<a href="/n/2">Suivant</a>`, base)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/n/2", got)
	})
}
