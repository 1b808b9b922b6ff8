package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/chapterly"
	chttp "github.com/fwojciec/chapterly/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chapterPage returns an HTML page comfortably above the minimum length.
func chapterPage(body string) string {
	return "<html><body>" + body + strings.Repeat("<p>Angin berhembus pelan di lembah.</p>", 30) + "</body></html>"
}

// serve starts a server that answers every request with status and body.
func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns chapter page", func(t *testing.T) {
		t.Parallel()

		page := chapterPage("<h1>Bab 3</h1>")
		server := serve(t, http.StatusOK, page)

		html, err := chttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, page, html)
	})

	t.Run("sends desktop browser headers", func(t *testing.T) {
		t.Parallel()

		headers := make(chan http.Header, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers <- r.Header.Clone()
			_, _ = w.Write([]byte(chapterPage("")))
		}))
		defer server.Close()

		_, err := chttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		got := <-headers
		assert.Equal(t, chapterly.UserAgent, got.Get("User-Agent"))
		assert.Equal(t, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", got.Get("Accept"))
		assert.Equal(t, "en-US,en;q=0.5", got.Get("Accept-Language"))
	})

	t.Run("accepts short pages when minimum is lowered", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusOK, "<p>Bab 1</p>")

		html, err := chttp.NewFetcher(chttp.WithMinLength(0)).Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>Bab 1</p>", html)
	})

	t.Run("caps body size", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusOK, strings.Repeat("a", 6<<20))

		html, err := chttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Len(t, html, 5<<20)
	})
}

func TestFetcher_Fetch_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		opts    []chttp.Option
		wantErr string
	}{
		{
			name:    "short stub page",
			status:  http.StatusOK,
			body:    "<html><body>Loading...</body></html>",
			wantErr: "too short",
		},
		{
			name:    "body exactly at minimum",
			status:  http.StatusOK,
			body:    strings.Repeat("x", chttp.DefaultMinLength),
			wantErr: "too short",
		},
		{
			name:    "cloudflare verification",
			status:  http.StatusOK,
			body:    chapterPage(`<div id="cf-browser-verification">checking</div>`),
			wantErr: "bot challenge",
		},
		{
			name:    "challenge platform script",
			status:  http.StatusOK,
			body:    chapterPage(`<script src="/cdn-cgi/challenge-platform/h/b/orchestrate"></script>`),
			wantErr: "bot challenge",
		},
		{
			name:    "custom marker",
			status:  http.StatusOK,
			body:    chapterPage("please solve the captcha"),
			opts:    []chttp.Option{chttp.WithChallengeMarkers("captcha")},
			wantErr: "captcha",
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    chapterPage("403 Forbidden"),
			wantErr: "HTTP 403",
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			body:    chapterPage(""),
			wantErr: "HTTP 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := serve(t, tt.status, tt.body)

			_, err := chttp.NewFetcher(tt.opts...).Fetch(context.Background(), server.URL)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFetcher_Fetch_Deadlines(t *testing.T) {
	t.Parallel()

	slow := func(t *testing.T) *httptest.Server {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(200 * time.Millisecond):
			case <-r.Context().Done():
			}
			_, _ = w.Write([]byte(chapterPage("")))
		}))
		t.Cleanup(server.Close)
		return server
	}

	t.Run("times out", func(t *testing.T) {
		t.Parallel()

		server := slow(t)

		_, err := chttp.NewFetcher(chttp.WithTimeout(10*time.Millisecond)).Fetch(context.Background(), server.URL)

		require.Error(t, err)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		server := slow(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := chttp.NewFetcher().Fetch(ctx, server.URL)

		require.Error(t, err)
	})

	t.Run("fails for unknown host", func(t *testing.T) {
		t.Parallel()

		_, err := chttp.NewFetcher(chttp.WithTimeout(100*time.Millisecond)).Fetch(context.Background(), "http://novel.invalid/bab-1")

		require.Error(t, err)
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	assert.NoError(t, chttp.NewFetcher().Close())
}
