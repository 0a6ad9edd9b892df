package llmstxt

import (
	"context"
	"time"
)

// Document represents a converted documentation page.
type Document struct {
	ID          string    `json:"id"`
	SourcePath  string    `json:"sourcePath"`
	OutputPath  string    `json:"outputPath"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"` // Markdown
	ContentHash string    `json:"contentHash"`
	ConvertedAt time.Time `json:"convertedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourcePath == "" {
		return Errorf(EINVALID, "document source path required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentWriter persists converted documents.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentStore persists a converted tree with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type DocumentStore interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}

// ConversionRecord is a cached conversion result keyed by source path
// and content hash.
type ConversionRecord struct {
	ID          string    `json:"id"`
	SourcePath  string    `json:"sourcePath"`
	ContentHash string    `json:"contentHash"`
	Markdown    string    `json:"markdown"`
	Title       string    `json:"title"`
	ConvertedAt time.Time `json:"convertedAt"`
}

// ConversionCache avoids reconverting unchanged sources across bulk
// runs.
type ConversionCache interface {
	// Get retrieves a cached conversion for the source at the given
	// content hash. Returns ENOTFOUND if no matching entry exists.
	Get(ctx context.Context, sourcePath, contentHash string) (*ConversionRecord, error)

	// Put stores a conversion result, replacing any previous entry for
	// the same source path.
	Put(ctx context.Context, rec *ConversionRecord) error
}
