package mock

import (
	"context"

	"github.com/fwojciec/llmstxt"
)

var _ llmstxt.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of llmstxt.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *llmstxt.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *llmstxt.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}

var _ llmstxt.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of llmstxt.DocumentStore.
type DocumentStore struct {
	SaveFn   func(ctx context.Context, doc *llmstxt.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *DocumentStore) Save(ctx context.Context, doc *llmstxt.Document) error {
	return s.SaveFn(ctx, doc)
}

func (s *DocumentStore) Commit() error {
	return s.CommitFn()
}

func (s *DocumentStore) Abort() error {
	return s.AbortFn()
}

var _ llmstxt.ConversionCache = (*ConversionCache)(nil)

// ConversionCache is a mock implementation of llmstxt.ConversionCache.
type ConversionCache struct {
	GetFn func(ctx context.Context, sourcePath, contentHash string) (*llmstxt.ConversionRecord, error)
	PutFn func(ctx context.Context, rec *llmstxt.ConversionRecord) error
}

func (c *ConversionCache) Get(ctx context.Context, sourcePath, contentHash string) (*llmstxt.ConversionRecord, error) {
	return c.GetFn(ctx, sourcePath, contentHash)
}

func (c *ConversionCache) Put(ctx context.Context, rec *llmstxt.ConversionRecord) error {
	return c.PutFn(ctx, rec)
}
