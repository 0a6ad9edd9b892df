package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/llmstxt/cmd/llmstxt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	m := main.NewMain()
	err = m.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), err
}

func TestMain_NoCommand(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "convert")
	assert.Contains(t, stdout, "build")
	assert.Contains(t, stdout, "validate")
	assert.Contains(t, stdout, "compare")
}

func TestConvertCmd(t *testing.T) {
	t.Parallel()

	t.Run("converts a file to markdown on stdout", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<h1>Title</h1><p>Hello <strong>world</strong>.</p>"), 0644))

		stdout, _, err := runCLI(t, "convert", path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n\nHello **world**.\n", stdout)
	})

	t.Run("extract flag strips boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav>menu</nav><main><h1>Doc</h1><p>body</p></main></body></html>`
		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte(html), 0644))

		stdout, _, err := runCLI(t, "convert", "--extract", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "# Doc")
		assert.NotContains(t, stdout, "menu")
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := runCLI(t, "convert", "/nonexistent/page.html")
		require.Error(t, err)
		assert.Contains(t, stderr, "cannot read")
	})
}

func TestBuildCmd(t *testing.T) {
	t.Parallel()

	t.Run("converts a tree and writes llms.txt", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := filepath.Join(dir, "site")
		output := filepath.Join(dir, "out")
		require.NoError(t, os.MkdirAll(filepath.Join(input, "guide"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(input, "index.html"),
			[]byte("<h1>Home</h1><p>welcome</p>"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(input, "guide", "start.html"),
			[]byte("<h1>Getting Started</h1><p>install</p>"), 0644))

		configPath := filepath.Join(dir, "llms.yml")
		config := "title: My Docs\nsummary: Docs for my project\ninput: " + input + "\noutput: " + output + "\n"
		require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

		stdout, _, err := runCLI(t, "build", "--config", configPath)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Converted 2 documents")

		md, err := os.ReadFile(filepath.Join(output, "guide", "start.md"))
		require.NoError(t, err)
		assert.Contains(t, string(md), "# Getting Started")
		assert.Contains(t, string(md), "source: guide/start.html")

		manifest, err := os.ReadFile(filepath.Join(output, "llms.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(manifest), "# My Docs")
		assert.Contains(t, string(manifest), "> Docs for my project")
		assert.Contains(t, string(manifest), "[Getting Started](guide/start.md)")

		full, err := os.ReadFile(filepath.Join(output, "llms-full.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(full), "## Document: Getting Started")
		assert.Contains(t, string(full), "install")
	})

	t.Run("missing config fails", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "build", "--config", filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})

	t.Run("empty input tree fails without leaving output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := filepath.Join(dir, "site")
		output := filepath.Join(dir, "out")
		require.NoError(t, os.MkdirAll(input, 0755))

		configPath := filepath.Join(dir, "llms.yml")
		config := "title: T\ninput: " + input + "\noutput: " + output + "\n"
		require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

		_, _, err := runCLI(t, "build", "--config", configPath)
		require.Error(t, err)

		_, statErr := os.Stat(output)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestValidateCmd(t *testing.T) {
	t.Parallel()

	t.Run("valid manifest reports ok", func(t *testing.T) {
		t.Parallel()

		manifest := "# My Docs\n\n> Summary\n\n## Docs\n\n- [Intro](intro.md): getting started\n"
		path := filepath.Join(t.TempDir(), "llms.txt")
		require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))

		stdout, _, err := runCLI(t, "validate", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "ok (1 sections, 1 links)")
	})

	t.Run("missing H1 fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "llms.txt")
		require.NoError(t, os.WriteFile(path, []byte("just text\n"), 0644))

		_, stderr, err := runCLI(t, "validate", path)
		require.Error(t, err)
		assert.Contains(t, stderr, "missing H1")
	})
}

func TestCompareCmd(t *testing.T) {
	t.Parallel()

	t.Run("reports aggregate savings", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/sitemap.xml":
				_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset><url><loc>` + srv.URL + `/docs/a</loc></url></urlset>`))
			case "/docs/a":
				_, _ = w.Write([]byte("<html><body>aaaaaaaaaaaaaaaaaaaa</body></html>"))
			case "/docs/a.md":
				_, _ = w.Write([]byte("a"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		stdout, _, err := runCLI(t, "compare", srv.URL, "--rps", "1000")
		require.NoError(t, err)
		assert.Contains(t, stdout, "/docs/a")
		assert.Contains(t, stdout, "across 1 pages")
	})

	t.Run("invalid include pattern fails", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := runCLI(t, "compare", "https://example.com", "-I", "[")
		require.Error(t, err)
		assert.Contains(t, stderr, "invalid include pattern")
	})
}
