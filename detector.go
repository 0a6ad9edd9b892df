package llmstxt

// ContentKind classifies loaded file content.
type ContentKind string

// Content kinds recognized by detectors.
const (
	ContentUnknown  ContentKind = ""
	ContentHTML     ContentKind = "html"
	ContentMarkdown ContentKind = "markdown"
	ContentText     ContentKind = "text"
)

// ContentDetector decides whether loaded content is HTML that needs
// conversion, markdown that can pass through, or plain text.
type ContentDetector interface {
	// DetectKind analyzes content and returns its kind.
	// Returns ContentUnknown if no classification is confident.
	DetectKind(content string) ContentKind
}
