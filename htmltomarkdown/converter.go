// Package htmltomarkdown renders chapter HTML as Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/fwojciec/chapterly"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Ensure Converter implements chapterly.Converter at compile time.
var _ chapterly.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Emphasis uses underscores and scene
// breaks render as "* * *", the conventions of most fiction sites.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithEmDelimiter("_"),
				commonmark.WithHorizontalRule("* * *"),
			),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a chapter fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", chapterly.Errorf(chapterly.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return blankLines.ReplaceAllString(strings.TrimSpace(result), "\n\n"), nil
}
