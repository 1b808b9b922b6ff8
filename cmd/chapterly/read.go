package main

import (
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/fwojciec/chapterly"
	"github.com/fwojciec/chapterly/fs"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	if c.Chapters < 1 {
		err := chapterly.Errorf(chapterly.EINVALID, "chapters must be at least 1")
		fmt.Fprintf(deps.Stderr, "error: %s\n", chapterly.ErrorMessage(err))
		return err
	}

	var writer chapterly.ChapterWriter
	if c.Out != "" {
		writer = fs.NewWriter(c.Out, deps.Converter)
	}

	seen := make(map[string]bool)
	next := c.URL
	for i := 0; i < c.Chapters && next != "" && !seen[next]; i++ {
		seen[next] = true

		doc, err := deps.Reader.Read(deps.Ctx, next)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chapterly.ErrorMessage(err))
			return err
		}

		if writer != nil {
			if err := writer.WriteChapter(deps.Ctx, doc); err != nil {
				fmt.Fprintf(deps.Stderr, "error: saving %s: %v\n", doc.CurrentURL, err)
				return err
			}
			fmt.Fprintf(deps.Stdout, "Saved %s (%s)\n", doc.Title, doc.CurrentURL)
		} else if err := c.print(deps.Stdout, deps.Converter, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chapterly.ErrorMessage(err))
			return err
		}

		next = doc.NextURL
	}
	return nil
}

func (c *ReadCmd) print(w io.Writer, conv chapterly.Converter, doc *chapterly.Document) error {
	switch c.Format {
	case "json":
		return json.NewEncoder(w).Encode(doc)
	case "markdown":
		markdown, err := conv.Convert(doc.Content)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "# %s\n\n%s\n\n", doc.Title, markdown)
		return err
	default:
		_, err := fmt.Fprintf(w, "<h1>%s</h1>\n%s\n", html.EscapeString(doc.Title), doc.Content)
		return err
	}
}
