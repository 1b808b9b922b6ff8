package gemini

import (
	"context"

	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenCounter counts tokens using the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens of texts sent as one request.
func (tc *TokenCounter) CountTokens(ctx context.Context, texts ...string) (int, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		contents = append(contents, genai.NewContentFromText(text, "user"))
	}
	if len(contents) == 0 {
		return 0, nil
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
