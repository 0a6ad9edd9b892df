package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/llmstxt"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements llmstxt.Extractor at compile time.
var _ llmstxt.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Compared to the selector-based extractor it handles pages with no
// semantic markup, at the cost of slower extraction.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*llmstxt.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "content extraction failed: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "failed to render content: %v", err)
		}
	}
	if strings.TrimSpace(contentHTML) == "" {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "no content found in HTML")
	}

	return &llmstxt.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
