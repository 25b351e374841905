// Package writer persists validated records to disk: a structured JSON file,
// a human-readable Markdown document, and an HTML rendering of the Markdown.
package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"seoforge/internal/seo"
)

// ArticlePaths lists the files one article was written to.
type ArticlePaths struct {
	JSON     string
	Markdown string
	HTML     string
}

// Writer persists records under a base output directory.
type Writer struct {
	dir string
	md  goldmark.Markdown
}

// New creates a writer rooted at dir, creating it if needed.
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir, md: goldmark.New()}, nil
}

// Dir returns the base output directory.
func (w *Writer) Dir() string { return w.dir }

// WriteArticle writes article-<slug>.json, .md and .html for the record.
func (w *Writer) WriteArticle(topic string, record *seo.ArticleRecord) (*ArticlePaths, error) {
	slug := seo.Slugify(topic)
	paths := &ArticlePaths{
		JSON:     filepath.Join(w.dir, fmt.Sprintf("article-%s.json", slug)),
		Markdown: filepath.Join(w.dir, fmt.Sprintf("article-%s.md", slug)),
		HTML:     filepath.Join(w.dir, fmt.Sprintf("article-%s.html", slug)),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling article: %w", err)
	}
	if err := os.WriteFile(paths.JSON, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", paths.JSON, err)
	}

	markdown := RenderMarkdown(record)
	if err := os.WriteFile(paths.Markdown, []byte(markdown), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", paths.Markdown, err)
	}

	var html bytes.Buffer
	if err := w.md.Convert([]byte(markdown), &html); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	if err := os.WriteFile(paths.HTML, html.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", paths.HTML, err)
	}

	return paths, nil
}

// WriteKeywords writes keywords-<slug>.json for the record.
func (w *Writer) WriteKeywords(topic string, record *seo.KeywordRecord) (string, error) {
	slug := seo.Slugify(topic)
	path := filepath.Join(w.dir, fmt.Sprintf("keywords-%s.json", slug))

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling keywords: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// RenderMarkdown lays out an article as a Markdown document: title, meta
// lines, one H2 per section, then FAQ and SEO tip blocks when present.
func RenderMarkdown(record *seo.ArticleRecord) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", record.ArticleTitle))

	if record.MetaTitle != "" {
		sb.WriteString(fmt.Sprintf("**Meta Title:** %s\n\n", record.MetaTitle))
	}
	if record.MetaDescription != "" {
		sb.WriteString(fmt.Sprintf("**Meta Description:** %s\n\n", record.MetaDescription))
	}

	for _, section := range record.Sections {
		sb.WriteString(fmt.Sprintf("## %s\n%s\n\n", section.Heading, section.Content))
	}

	if len(record.FAQ) > 0 {
		sb.WriteString("## Frequently Asked Questions\n\n")
		for _, faq := range record.FAQ {
			sb.WriteString(fmt.Sprintf("**Q: %s**\n", faq.Question))
			sb.WriteString(fmt.Sprintf("A: %s\n\n", faq.Answer))
		}
	}

	if len(record.SEOTips) > 0 {
		sb.WriteString("## SEO Optimization Tips\n\n")
		for _, tip := range record.SEOTips {
			sb.WriteString(fmt.Sprintf("- %s\n", tip))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
