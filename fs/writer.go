// Package fs saves chapters as markdown files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/chapterly"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// URLToPath converts a chapter URL to a relative file path under the
// URL's host.
// Example: https://example.com/novel/chapter-12 → example.com/novel/chapter-12.md
// Query strings are kept because many sites identify chapters by them:
// https://example.com/read.php?id=12 → example.com/read.php_id-12.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", chapterly.Errorf(chapterly.EINVALID, "url %q has no host", rawURL)
	}

	// Cleaning against the root keeps ".." segments inside the host directory
	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")

	// Root or trailing slash becomes index.md in that directory
	if p == "" || strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "index")
	}

	if u.RawQuery != "" {
		query := unsafeChars.ReplaceAllString(strings.ReplaceAll(u.RawQuery, "=", "-"), "_")
		p += "_" + strings.Trim(query, "_")
	}

	return filepath.Join(u.Host, filepath.FromSlash(p)) + ".md", nil
}

// FormatChapter formats a chapter with YAML frontmatter. Strings are
// double-quoted so titles containing colons stay valid YAML.
func FormatChapter(doc *chapterly.Document, markdown string, savedAt time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(strconv.Quote(doc.CurrentURL))
	b.WriteString("\ntitle: ")
	b.WriteString(strconv.Quote(doc.Title))
	if doc.HasNext() {
		b.WriteString("\nnext: ")
		b.WriteString(strconv.Quote(doc.NextURL))
	}
	b.WriteString("\ntranslated: ")
	b.WriteString(strconv.FormatBool(doc.IsTranslated))
	b.WriteString("\nsaved: ")
	b.WriteString(savedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString("# ")
	b.WriteString(doc.Title)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(markdown))
	b.WriteString("\n")
	return b.String()
}

// Ensure Writer implements chapterly.ChapterWriter at compile time.
var _ chapterly.ChapterWriter = (*Writer)(nil)

// Writer writes chapters as markdown files to a directory.
type Writer struct {
	baseDir   string
	converter chapterly.Converter

	// Now returns the current time. Replaceable for tests.
	Now func() time.Time
}

// NewWriter creates a new Writer that converts chapter HTML with conv and
// writes under baseDir.
func NewWriter(baseDir string, conv chapterly.Converter) *Writer {
	return &Writer{baseDir: baseDir, converter: conv, Now: time.Now}
}

// WriteChapter converts a chapter to markdown and writes it to disk.
// The file is written to a temporary name and renamed into place.
func (w *Writer) WriteChapter(ctx context.Context, doc *chapterly.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.CurrentURL)
	if err != nil {
		return err
	}

	markdown, err := w.converter.Convert(doc.Content)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	tmp := fullPath + ".tmp"
	content := FormatChapter(doc, markdown, w.Now())
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
