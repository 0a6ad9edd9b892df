package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenDB opens an in-memory database and registers cleanup.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_OpenFileBased(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.db")
	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())

	// Reopening against the same file keeps the schema usable.
	db = sqlite.NewDB(path)
	require.NoError(t, db.Open())
	defer db.Close()

	cache := sqlite.NewConversionCache(db)
	require.NoError(t, cache.Put(context.Background(), &llmstxt.ConversionRecord{
		SourcePath:  "docs/a.html",
		ContentHash: "abc",
		Markdown:    "# A",
	}))
}

func TestConversionCache_GetPut(t *testing.T) {
	t.Parallel()

	t.Run("get after put round-trips the record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		cache := sqlite.NewConversionCache(db)
		ctx := context.Background()

		rec := &llmstxt.ConversionRecord{
			SourcePath:  "docs/guide.html",
			ContentHash: "deadbeef01234567",
			Markdown:    "# Guide\n\nbody",
			Title:       "Guide",
		}

		require.NoError(t, cache.Put(ctx, rec))
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.ConvertedAt.IsZero())

		got, err := cache.Get(ctx, "docs/guide.html", "deadbeef01234567")
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Markdown, got.Markdown)
		assert.Equal(t, rec.Title, got.Title)
		assert.Equal(t, rec.ConvertedAt.Format(time.RFC3339), got.ConvertedAt.Format(time.RFC3339))
	})

	t.Run("miss returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		cache := sqlite.NewConversionCache(db)

		_, err := cache.Get(context.Background(), "docs/missing.html", "hash")
		require.Error(t, err)
		assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))
	})

	t.Run("changed content hash misses", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		cache := sqlite.NewConversionCache(db)
		ctx := context.Background()

		require.NoError(t, cache.Put(ctx, &llmstxt.ConversionRecord{
			SourcePath:  "docs/guide.html",
			ContentHash: "hash-v1",
			Markdown:    "# v1",
		}))

		_, err := cache.Get(ctx, "docs/guide.html", "hash-v2")
		require.Error(t, err)
		assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))
	})

	t.Run("put replaces the previous entry for a source", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		cache := sqlite.NewConversionCache(db)
		ctx := context.Background()

		require.NoError(t, cache.Put(ctx, &llmstxt.ConversionRecord{
			SourcePath:  "docs/guide.html",
			ContentHash: "hash-v1",
			Markdown:    "# v1",
		}))
		require.NoError(t, cache.Put(ctx, &llmstxt.ConversionRecord{
			SourcePath:  "docs/guide.html",
			ContentHash: "hash-v2",
			Markdown:    "# v2",
		}))

		// Old hash is gone, new hash hits.
		_, err := cache.Get(ctx, "docs/guide.html", "hash-v1")
		assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))

		got, err := cache.Get(ctx, "docs/guide.html", "hash-v2")
		require.NoError(t, err)
		assert.Equal(t, "# v2", got.Markdown)
	})

	t.Run("put validates required fields", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		cache := sqlite.NewConversionCache(db)
		ctx := context.Background()

		err := cache.Put(ctx, &llmstxt.ConversionRecord{ContentHash: "h"})
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))

		err = cache.Put(ctx, &llmstxt.ConversionRecord{SourcePath: "p"})
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})
}
