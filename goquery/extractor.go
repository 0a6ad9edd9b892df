package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/llmstxt"
)

// boilerplateSelectors match elements that never belong to page content.
var boilerplateSelectors = []string{
	"nav",
	"header",
	"footer",
	"aside",
	"script",
	"style",
	"noscript",
	"template",
	"[role='navigation']",
	"[role='banner']",
	"[role='contentinfo']",
	".sidebar",
	".breadcrumbs",
	".edit-this-page",
	".pagination-nav",
	".table-of-contents",
}

// contentSelectors locate the main content region, in priority order.
// The first selector with a non-empty match wins.
var contentSelectors = []string{
	"main article",
	"main",
	"article",
	"[role='main']",
	"#content",
	".content",
	"body",
}

// Extractor extracts main content from HTML using CSS selectors.
// It removes boilerplate regions and picks the most specific content
// container, keeping the inner HTML structure intact for conversion.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

var _ llmstxt.Extractor = (*Extractor)(nil)

// Extract processes raw HTML and returns the main content with
// boilerplate removed. The title comes from og:title, falling back to
// the document title, falling back to the first h1.
func (e *Extractor) Extract(html string) (*llmstxt.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "failed to parse HTML: %v", err)
	}

	title := extractTitle(doc)

	for _, selector := range boilerplateSelectors {
		doc.Find(selector).Remove()
	}

	var content string
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		inner, err := sel.Html()
		if err != nil {
			return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "failed to render content: %v", err)
		}
		if strings.TrimSpace(inner) == "" {
			continue
		}
		content = inner
		break
	}

	if content == "" {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "no content found in HTML")
	}

	return &llmstxt.ExtractResult{
		Title:       title,
		ContentHTML: content,
	}, nil
}

// extractTitle pulls the page title from metadata before boilerplate
// removal, since og:title lives in head.
func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
