package mock

import "github.com/fwojciec/llmstxt"

var _ llmstxt.ContentDetector = (*ContentDetector)(nil)

// ContentDetector is a mock implementation of llmstxt.ContentDetector.
type ContentDetector struct {
	DetectKindFn func(content string) llmstxt.ContentKind
}

func (d *ContentDetector) DetectKind(content string) llmstxt.ContentKind {
	return d.DetectKindFn(content)
}
