package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fwojciec/chapterly"
	chttp "github.com/fwojciec/chapterly/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("sends key, target url and render flag", func(t *testing.T) {
		t.Parallel()

		queries := make(chan url.Values, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			queries <- r.URL.Query()
			_, _ = w.Write([]byte("<html><body>rendered</body></html>"))
		}))
		defer server.Close()

		fetcher := chttp.NewProxyFetcher("secret", chttp.WithProxyEndpoint(server.URL+"/api/v1/"))
		html, err := fetcher.Fetch(context.Background(), "https://novel.example/ch/1")

		require.NoError(t, err)
		assert.Equal(t, "<html><body>rendered</body></html>", html)
		q := <-queries
		assert.Equal(t, "secret", q.Get("api_key"))
		assert.Equal(t, "https://novel.example/ch/1", q.Get("url"))
		assert.Equal(t, "true", q.Get("render_js"))
	})

	t.Run("treats non-2xx as failure without leaking the key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		fetcher := chttp.NewProxyFetcher("secret", chttp.WithProxyEndpoint(server.URL))
		_, err := fetcher.Fetch(context.Background(), "https://novel.example/ch/1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.NotContains(t, err.Error(), "secret")
	})

	t.Run("requires an api key", func(t *testing.T) {
		t.Parallel()

		fetcher := chttp.NewProxyFetcher("")
		_, err := fetcher.Fetch(context.Background(), "https://novel.example/ch/1")

		require.Error(t, err)
		assert.Equal(t, chapterly.EINVALID, chapterly.ErrorCode(err))
	})

	t.Run("treats an empty body as failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("  \n"))
		}))
		defer server.Close()

		fetcher := chttp.NewProxyFetcher("secret", chttp.WithProxyEndpoint(server.URL))
		_, err := fetcher.Fetch(context.Background(), "https://novel.example/ch/1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty page")
	})
}
