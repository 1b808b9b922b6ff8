package chapterly

import "context"

// DefaultTargetLanguage is the language chapters are translated into.
const DefaultTargetLanguage = "id"

// Translator translates text into a fixed target language.
type Translator interface {
	// Translate translates a single string.
	Translate(ctx context.Context, text string) (string, error)

	// TranslateBatch translates texts in one request.
	// The result has the same length and order as texts.
	TranslateBatch(ctx context.Context, texts []string) ([]string, error)
}
