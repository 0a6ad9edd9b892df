package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/bloom"
)

// DefaultConcurrency bounds the number of files converted in parallel.
const DefaultConcurrency = 8

// Walker converts a tree of documentation sources into markdown.
// It walks the input directory, classifies each file, runs HTML files
// through extraction and conversion, and saves results through the
// store. Unchanged sources are skipped via the conversion cache.
type Walker struct {
	Detector  llmstxt.ContentDetector
	Extractor llmstxt.Extractor // optional; nil converts raw HTML
	Converter llmstxt.Converter
	Cleaner   *llmstxt.Cleaner        // optional
	Cache     llmstxt.ConversionCache // optional
	Store     llmstxt.DocumentStore   // optional; nil collects only

	// Concurrency bounds parallel conversions. Zero means
	// DefaultConcurrency.
	Concurrency int

	// Exclude lists glob patterns matched against slash-separated
	// relative paths. Matching files and directories are skipped.
	Exclude []string
}

// Walk converts every documentation file under root and returns the
// resulting documents ordered by source path.
func (w *Walker) Walk(ctx context.Context, root string) ([]*llmstxt.Document, error) {
	if w.Detector == nil || w.Converter == nil {
		return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "walker requires a detector and a converter")
	}

	relPaths, err := w.collect(root)
	if err != nil {
		return nil, err
	}

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu   sync.Mutex
		docs []*llmstxt.Document
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, relPath := range relPaths {
		g.Go(func() error {
			doc, err := w.convertFile(ctx, root, relPath)
			if err != nil {
				return err
			}
			if doc == nil {
				return nil
			}
			if w.Store != nil {
				if err := w.Store.Save(ctx, doc); err != nil {
					return err
				}
			}
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].SourcePath < docs[j].SourcePath
	})
	return docs, nil
}

// collect walks the tree and returns the relative paths of candidate
// files in a single pass. Hidden directories, excluded patterns, and
// already-visited symlink targets are skipped. The bloom filter keeps
// the visited set small when symlinks fan out over large trees.
func (w *Walker) collect(root string) ([]string, error) {
	seen := bloom.NewFilter(100_000, 0.001)
	var relPaths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || w.excluded(rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || w.excluded(rel) {
			return nil
		}
		if !convertible(rel) {
			return nil
		}

		resolved, resErr := filepath.EvalSymlinks(path)
		if resErr != nil {
			resolved = path
		}
		if seen.Test(resolved) {
			return nil
		}
		seen.Add(resolved)

		relPaths = append(relPaths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return relPaths, nil
}

func (w *Walker) excluded(rel string) bool {
	for _, pattern := range w.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// convertible reports whether a file extension is worth loading.
func convertible(rel string) bool {
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".html", ".htm", ".xhtml", ".md", ".markdown", ".txt":
		return true
	default:
		return false
	}
}

// convertFile loads, classifies, and converts a single file. Returns
// (nil, nil) for files that should be silently skipped.
func (w *Walker) convertFile(ctx context.Context, root, relPath string) (*llmstxt.Document, error) {
	raw, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		return nil, err
	}
	content := string(raw)

	hash := ContentHash(content)
	if w.Cache != nil {
		if rec, err := w.Cache.Get(ctx, relPath, hash); err == nil {
			return &llmstxt.Document{
				ID:          rec.ID,
				SourcePath:  relPath,
				OutputPath:  SourceToPath(relPath),
				Title:       rec.Title,
				Content:     rec.Markdown,
				ContentHash: hash,
				ConvertedAt: rec.ConvertedAt,
			}, nil
		} else if llmstxt.ErrorCode(err) != llmstxt.ENOTFOUND {
			return nil, err
		}
	}

	var markdown, title string
	switch w.Detector.DetectKind(content) {
	case llmstxt.ContentHTML:
		markdown, title, err = w.convertHTML(content)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", relPath, err)
		}
	case llmstxt.ContentMarkdown:
		markdown = content
	default:
		return nil, nil
	}

	if w.Cleaner != nil {
		markdown = w.Cleaner.Clean(markdown)
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}

	if t := llmstxt.DocumentTitle(markdown); t != "" {
		title = t
	}
	if title == "" {
		title = relPath
	}

	doc := &llmstxt.Document{
		ID:          uuid.New().String(),
		SourcePath:  relPath,
		OutputPath:  SourceToPath(relPath),
		Title:       title,
		Content:     markdown,
		ContentHash: hash,
		ConvertedAt: time.Now().UTC(),
	}

	if w.Cache != nil {
		rec := &llmstxt.ConversionRecord{
			ID:          doc.ID,
			SourcePath:  doc.SourcePath,
			ContentHash: doc.ContentHash,
			Markdown:    doc.Content,
			Title:       doc.Title,
			ConvertedAt: doc.ConvertedAt,
		}
		if err := w.Cache.Put(ctx, rec); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// convertHTML runs a page through extraction (when configured) and
// conversion. Extraction failures fall back to converting the raw
// HTML, so pages the extractor cannot score still come through.
func (w *Walker) convertHTML(content string) (markdown, title string, err error) {
	toConvert := content
	if w.Extractor != nil {
		result, extractErr := w.Extractor.Extract(content)
		if extractErr == nil {
			toConvert = result.ContentHTML
			title = result.Title
		} else if llmstxt.ErrorCode(extractErr) == llmstxt.EINVALID {
			return "", "", extractErr
		}
	}

	markdown, err = w.Converter.Convert(toConvert)
	if err != nil {
		return "", "", err
	}
	return markdown, title, nil
}

// ContentHash returns the xxhash digest of content, hex encoded.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
