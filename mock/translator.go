package mock

import (
	"context"

	"github.com/fwojciec/chapterly"
)

var _ chapterly.Translator = (*Translator)(nil)

// Translator is a mock implementation of chapterly.Translator.
type Translator struct {
	TranslateFn      func(ctx context.Context, text string) (string, error)
	TranslateBatchFn func(ctx context.Context, texts []string) ([]string, error)
}

func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	return t.TranslateFn(ctx, text)
}

func (t *Translator) TranslateBatch(ctx context.Context, texts []string) ([]string, error) {
	return t.TranslateBatchFn(ctx, texts)
}
