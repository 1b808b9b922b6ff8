// Package gemini implements chapterly.Translator with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/chapterly"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for translation.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single generateContent call. Batches of 40
// paragraphs take far longer than a single string, hence the headroom.
const DefaultTimeout = 60 * time.Second

// Ensure Translator implements chapterly.Translator at compile time.
var _ chapterly.Translator = (*Translator)(nil)

// Translator translates text with a Gemini model.
type Translator struct {
	client    *genai.Client
	model     string
	target    string
	counter   *TokenCounter
	maxTokens int
	timeout   time.Duration
}

// Option configures a Translator.
type Option func(*Translator)

// WithModel sets the Gemini model.
func WithModel(model string) Option {
	return func(t *Translator) {
		t.model = model
	}
}

// WithTimeout bounds each request to the model. Non-positive values use
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Translator) {
		t.timeout = d
	}
}

// WithTokenLimit splits batches whose prompt exceeds maxTokens as counted
// by counter.
func WithTokenLimit(counter *TokenCounter, maxTokens int) Option {
	return func(t *Translator) {
		t.counter = counter
		t.maxTokens = maxTokens
	}
}

// NewTranslator creates a Translator targeting the given language code.
// An empty target uses chapterly.DefaultTargetLanguage.
func NewTranslator(client *genai.Client, target string, opts ...Option) *Translator {
	if target == "" {
		target = chapterly.DefaultTargetLanguage
	}
	t := &Translator{
		client:  client,
		model:   DefaultModel,
		target:  target,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.timeout <= 0 {
		t.timeout = DefaultTimeout
	}
	return t
}

// Translate translates a single string.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	out, err := t.generate(ctx, BuildTextPrompt(t.target, text), BuildTextConfig())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TranslateBatch asks for a JSON array with one translation per input.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if len(texts) > 1 && t.counter != nil && t.maxTokens > 0 {
		n, err := t.counter.CountTokens(ctx, texts...)
		if err != nil {
			return nil, err
		}
		if n > t.maxTokens {
			mid := len(texts) / 2
			head, err := t.TranslateBatch(ctx, texts[:mid])
			if err != nil {
				return nil, err
			}
			tail, err := t.TranslateBatch(ctx, texts[mid:])
			if err != nil {
				return nil, err
			}
			return append(head, tail...), nil
		}
	}

	prompt, err := BuildBatchPrompt(t.target, texts)
	if err != nil {
		return nil, err
	}

	out, err := t.generate(ctx, prompt, BuildBatchConfig())
	if err != nil {
		return nil, err
	}

	var translated []string
	if err := json.Unmarshal([]byte(out), &translated); err != nil {
		return nil, fmt.Errorf("decoding gemini batch: %w", err)
	}
	if len(translated) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d translations for %d paragraphs", len(translated), len(texts))
	}
	return translated, nil
}

func (t *Translator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if t.client == nil {
		return "", chapterly.Errorf(chapterly.EINVALID, "gemini client required")
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", chapterly.Errorf(chapterly.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

const systemInstruction = "You are a literary translator for serialized web fiction. Translate faithfully and naturally. Keep character names unchanged. Output only the translation."

// BuildTextConfig returns the config for single-text requests.
func BuildTextConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildBatchConfig returns the config for batch requests, constraining the
// response to a JSON array of strings.
func BuildBatchConfig() *genai.GenerateContentConfig {
	config := BuildTextConfig()
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
	return config
}

// BuildTextPrompt builds the prompt for a single text.
func BuildTextPrompt(target, text string) string {
	return fmt.Sprintf("Translate into language %q:\n\n%s", target, text)
}

// BuildBatchPrompt builds the prompt for a batch of paragraphs.
func BuildBatchPrompt(target string, texts []string) (string, error) {
	payload, err := json.Marshal(texts)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate each string of this JSON array into language %q. ", target)
	fmt.Fprintf(&sb, "Reply with a JSON array of exactly %d strings in the same order.\n\n", len(texts))
	sb.Write(payload)
	return sb.String(), nil
}
