// Package fs provides filesystem input and output for bulk conversion.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/llmstxt"
)

// SourceToPath converts a source-relative HTML path to its markdown
// output path. Directories and index pages map to index.md.
// Example: docs/api/users.html → docs/api/users.md
func SourceToPath(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	relPath = strings.TrimPrefix(relPath, "/")

	if relPath == "" || relPath == "." {
		return "index.md"
	}
	if strings.HasSuffix(relPath, "/") {
		return relPath + "index.md"
	}

	ext := filepath.Ext(relPath)
	switch strings.ToLower(ext) {
	case ".html", ".htm", ".xhtml":
		return strings.TrimSuffix(relPath, ext) + ".md"
	case ".md", ".markdown":
		return strings.TrimSuffix(relPath, ext) + ".md"
	default:
		return relPath + ".md"
	}
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *llmstxt.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	if doc.SourceURL != "" {
		b.WriteString(doc.SourceURL)
	} else {
		b.WriteString(doc.SourcePath)
	}
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\nconverted: ")
	b.WriteString(doc.ConvertedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements llmstxt.DocumentWriter at compile time.
var _ llmstxt.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk as a markdown file at its
// output path, creating parent directories as needed.
func (w *Writer) CreateDocument(ctx context.Context, doc *llmstxt.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath := doc.OutputPath
	if relPath == "" {
		relPath = SourceToPath(doc.SourcePath)
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}

// Ensure Store implements llmstxt.DocumentStore at compile time.
var _ llmstxt.DocumentStore = (*Store)(nil)

// Store implements llmstxt.DocumentStore with atomic update semantics.
// Documents are saved to a temporary directory, then moved into place
// on Commit, so a failed run never leaves a half-written tree.
type Store struct {
	baseDir string
	name    string
}

// NewStore creates a new Store.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewStore(baseDir, name string) *Store {
	return &Store{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Store) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes a document into the temporary tree.
func (s *Store) Save(ctx context.Context, doc *llmstxt.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath := doc.OutputPath
	if relPath == "" {
		relPath = SourceToPath(doc.SourcePath)
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}

// SaveRaw writes arbitrary content (such as llms.txt) into the
// temporary tree at the given relative path.
func (s *Store) SaveRaw(relPath, content string) error {
	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the final directory with the temporary tree.
func (s *Store) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the temporary tree.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}
