package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/llmstxt"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ llmstxt.ConversionCache = (*ConversionCache)(nil)

// ConversionCache implements llmstxt.ConversionCache using SQLite.
// Entries are keyed by (source_path, content_hash), so a changed
// source hashes to a new key and misses.
type ConversionCache struct {
	db *DB
}

// NewConversionCache creates a new ConversionCache.
func NewConversionCache(db *DB) *ConversionCache {
	return &ConversionCache{db: db}
}

// Get retrieves the cached conversion for the source at the given
// content hash. Returns ENOTFOUND if no matching entry exists.
func (c *ConversionCache) Get(ctx context.Context, sourcePath, contentHash string) (*llmstxt.ConversionRecord, error) {
	var rec llmstxt.ConversionRecord
	var convertedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, source_path, content_hash, markdown, title, converted_at
		FROM conversions
		WHERE source_path = ? AND content_hash = ?
	`, sourcePath, contentHash).Scan(&rec.ID, &rec.SourcePath, &rec.ContentHash,
		&rec.Markdown, &rec.Title, &convertedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "no cached conversion for %s", sourcePath)
	}
	if err != nil {
		return nil, err
	}

	rec.ConvertedAt, err = time.Parse(time.RFC3339, convertedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse converted_at: %w", err)
	}

	return &rec, nil
}

// Put stores a conversion result, replacing any previous entry for the
// same source path. Stale hashes for a path are removed so the table
// stays one row per source.
func (c *ConversionCache) Put(ctx context.Context, rec *llmstxt.ConversionRecord) error {
	if rec.SourcePath == "" {
		return llmstxt.Errorf(llmstxt.EINVALID, "conversion record source path required")
	}
	if rec.ContentHash == "" {
		return llmstxt.Errorf(llmstxt.EINVALID, "conversion record content hash required")
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now().UTC()
	}

	if _, err := c.db.ExecContext(ctx, `
		DELETE FROM conversions WHERE source_path = ?
	`, rec.SourcePath); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO conversions (id, source_path, content_hash, markdown, title, converted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourcePath, rec.ContentHash, rec.Markdown, rec.Title,
		rec.ConvertedAt.Format(time.RFC3339))

	return err
}
