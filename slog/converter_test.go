package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/mock"
	llmsslog "github.com/fwojciec/llmstxt/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "# Title", nil
			},
		}

		c := llmsslog.NewLoggingConverter(inner, logger)
		markdown, err := c.Convert("<h1>Title</h1>")

		require.NoError(t, err)
		assert.Equal(t, "# Title", markdown)
		output := buf.String()
		assert.Contains(t, output, "conversion")
		assert.Contains(t, output, "html_bytes=14")
		assert.Contains(t, output, "markdown_bytes=7")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("parse failed")
			},
		}

		c := llmsslog.NewLoggingConverter(inner, logger)
		_, err := c.Convert("<h1>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"parse failed\"")
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs title and content size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*llmstxt.ExtractResult, error) {
				return &llmstxt.ExtractResult{Title: "Guide", ContentHTML: "<p>x</p>"}, nil
			},
		}

		e := llmsslog.NewLoggingExtractor(inner, logger)
		result, err := e.Extract("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "Guide", result.Title)
		output := buf.String()
		assert.Contains(t, output, "extraction")
		assert.Contains(t, output, "title=Guide")
		assert.Contains(t, output, "content_bytes=8")
	})
}
