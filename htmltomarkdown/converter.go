// Package htmltomarkdown converts HTML documents and fragments to
// markdown. It is a recursive-descent transpiler over the tree
// produced by golang.org/x/net/html: a block/inline classifier buffers
// sibling runs, per-tag renderers handle blocks, lists, and tables,
// link destinations pass through a scheme allow-list, and a final
// normalizer cleans up blank lines without touching fenced code.
//
// Conversion is a pure, request-scoped computation: every call
// allocates its own state, so a single Converter is safe for
// concurrent use.
package htmltomarkdown

import (
	"strings"

	"github.com/fwojciec/llmstxt"
	"golang.org/x/net/html"
)

// Ensure Converter implements llmstxt.Converter at compile time.
var _ llmstxt.Converter = (*Converter)(nil)

// Converter converts HTML to Markdown.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert transforms HTML content into Markdown. Malformed markup is
// tolerated: the parser reconciles unclosed tags and the renderers
// degrade unknown elements to transparent pass-through. The only
// error surfaces are empty input and parser failures.
func (c *Converter) Convert(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", llmstxt.Errorf(llmstxt.EINVALID, "empty HTML input")
	}

	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", err
	}

	return normalize(renderBlocks(wrap(doc).Children())), nil
}
