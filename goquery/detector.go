package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmstxt"
)

// Detector classifies file content as HTML, markdown, or plain text.
// It checks for structural HTML elements first, then markdown markers,
// since net/html will happily parse any text into a document.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

var _ llmstxt.ContentDetector = (*Detector)(nil)

// DetectKind analyzes content and returns its kind.
// Returns ContentUnknown only for empty input.
func (d *Detector) DetectKind(content string) llmstxt.ContentKind {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return llmstxt.ContentUnknown
	}

	if d.isHTML(trimmed) {
		return llmstxt.ContentHTML
	}
	if d.isMarkdown(trimmed) {
		return llmstxt.ContentMarkdown
	}
	return llmstxt.ContentText
}

// isHTML reports whether the content is an HTML document or fragment.
// A doctype or html/head/body tag is decisive; otherwise the content
// must parse into a document that contains block-level elements.
func (d *Detector) isHTML(content string) bool {
	lower := strings.ToLower(content)
	if strings.HasPrefix(lower, "<!doctype") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<head") {
		return true
	}

	// Fragments: require real block elements, not just angle brackets.
	// Markdown files routinely contain <br> or inline <code> snippets,
	// so a couple of matches is not enough on its own.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return false
	}
	blocks := doc.Find("p, div, article, section, table, ul, ol, h1, h2, h3, h4, h5, h6, blockquote, pre").Length()
	if blocks == 0 {
		return false
	}

	// Tag density: the source must actually be marked up, not prose
	// that happens to mention a <p> tag once.
	tags := strings.Count(content, "<")
	lines := strings.Count(content, "\n") + 1
	return blocks >= 3 || tags*4 >= lines
}

// markdownMarkers are line prefixes that indicate markdown structure.
var markdownMarkers = []string{"# ", "## ", "### ", "- ", "* ", "> ", "```", "~~~", "1. "}

// isMarkdown reports whether the content carries markdown structure.
func (d *Detector) isMarkdown(content string) bool {
	if strings.HasPrefix(content, "---\n") {
		return true // frontmatter
	}
	count := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		for _, marker := range markdownMarkers {
			if strings.HasPrefix(trimmed, marker) {
				count++
				break
			}
		}
		if strings.Contains(line, "](") {
			count++
		}
	}
	return count >= 2
}
