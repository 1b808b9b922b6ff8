package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/chapterly"
)

// DefaultTranslateEndpoint is the public Google Translate web endpoint.
const DefaultTranslateEndpoint = "https://translate.googleapis.com/translate_a/single"

// DefaultTranslateTimeout bounds a single translation request.
const DefaultTranslateTimeout = 15 * time.Second

// Ensure Translator implements chapterly.Translator at compile time.
var _ chapterly.Translator = (*Translator)(nil)

// Translator calls the Google Translate web endpoint. Source language is
// detected automatically.
type Translator struct {
	client   *http.Client
	endpoint string
	target   string
	timeout  time.Duration
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithTranslateEndpoint overrides the translation endpoint.
func WithTranslateEndpoint(endpoint string) TranslatorOption {
	return func(t *Translator) {
		t.endpoint = endpoint
	}
}

// WithTranslateTimeout sets the timeout for translation requests.
func WithTranslateTimeout(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.timeout = d
	}
}

// NewTranslator creates a Translator targeting the given language code.
// An empty target uses chapterly.DefaultTargetLanguage.
func NewTranslator(target string, opts ...TranslatorOption) *Translator {
	if target == "" {
		target = chapterly.DefaultTargetLanguage
	}
	t := &Translator{
		endpoint: DefaultTranslateEndpoint,
		target:   target,
		timeout:  DefaultTranslateTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.client = &http.Client{
		Timeout: t.timeout,
	}

	return t
}

// Translate translates a single string.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	out, err := t.translate(ctx, flatten(text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TranslateBatch sends texts as newline-separated lines of one request and
// splits the response back into lines.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	lines := make([]string, len(texts))
	for i, text := range texts {
		lines[i] = flatten(text)
	}

	out, err := t.translate(ctx, strings.Join(lines, "\n"))
	if err != nil {
		return nil, err
	}

	parts := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(parts) != len(texts) {
		return nil, fmt.Errorf("translation returned %d lines for %d paragraphs", len(parts), len(texts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func (t *Translator) translate(ctx context.Context, text string) (string, error) {
	endpoint, err := url.Parse(t.endpoint)
	if err != nil {
		return "", chapterly.Errorf(chapterly.EINVALID, "invalid translate endpoint: %v", err)
	}
	q := endpoint.Query()
	q.Set("client", "gtx")
	q.Set("dt", "t")
	endpoint.RawQuery = q.Encode()

	form := url.Values{}
	form.Set("sl", "auto")
	form.Set("tl", t.target)
	form.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")
	req.Header.Set("User-Agent", chapterly.UserAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("translate returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	return parseTranslation(body)
}

// parseTranslation joins the translated segments of a response shaped
// [[["translated","source",...],...],...].
func parseTranslation(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding translation: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("decoding translation: empty response")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decoding translation segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

// flatten replaces newlines so that one text maps to one line.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
