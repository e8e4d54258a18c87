package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesnap"
)

var (
	_ sitesnap.Extractor     = (*LoggingExtractor)(nil)
	_ sitesnap.LinkExtractor = (*LoggingLinkExtractor)(nil)
)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   sitesnap.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sitesnap.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the rendered size.
func (e *LoggingExtractor) Extract(html, baseURL string) (res *sitesnap.ExtractionResult, err error) {
	defer func(begin time.Time) {
		args := []any{"url", baseURL, "duration", time.Since(begin)}
		if res != nil {
			args = append(args, "title", res.Title, "chars", len(res.Text), "documents", len(res.ReferencedDocuments))
		}
		logResult(context.Background(), e.logger, "extract", err, args...)
	}(time.Now())
	return e.next.Extract(html, baseURL)
}

// LoggingLinkExtractor wraps a LinkExtractor with logging.
type LoggingLinkExtractor struct {
	next   sitesnap.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next sitesnap.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the link count.
func (e *LoggingLinkExtractor) ExtractLinks(html, baseURL string) (links []string, err error) {
	defer func(begin time.Time) {
		logResult(context.Background(), e.logger, "extract links", err,
			"url", baseURL,
			"count", len(links),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.ExtractLinks(html, baseURL)
}
