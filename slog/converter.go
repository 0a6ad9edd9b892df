// Package slog provides logging decorators for llmstxt services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/llmstxt"
)

// Ensure LoggingConverter implements llmstxt.Converter.
var _ llmstxt.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with per-conversion logging.
type LoggingConverter struct {
	next   llmstxt.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next llmstxt.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the operation.
func (c *LoggingConverter) Convert(html string) (markdown string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("conversion",
			"html_bytes", len(html),
			"markdown_bytes", len(markdown),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}

// Ensure LoggingExtractor implements llmstxt.Extractor.
var _ llmstxt.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-page logging.
type LoggingExtractor struct {
	next   llmstxt.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next llmstxt.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (result *llmstxt.ExtractResult, err error) {
	defer func(begin time.Time) {
		title := ""
		contentBytes := 0
		if result != nil {
			title = result.Title
			contentBytes = len(result.ContentHTML)
		}
		e.logger.Info("extraction",
			"title", title,
			"content_bytes", contentBytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
