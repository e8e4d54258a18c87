package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesnap"
)

// Ensure LoggingStore implements sitesnap.ContentStore.
var _ sitesnap.ContentStore = (*LoggingStore)(nil)

// LoggingStore wraps a ContentStore with logging.
type LoggingStore struct {
	next   sitesnap.ContentStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next sitesnap.ContentStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the page.
func (s *LoggingStore) Save(ctx context.Context, page *sitesnap.Page) (err error) {
	defer func(begin time.Time) {
		logResult(ctx, s.logger, "save", err,
			"url", page.URL,
			"bytes", len(page.HTML)+len(page.Text),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Save(ctx, page)
}

// Commit delegates to the wrapped store.
func (s *LoggingStore) Commit() (err error) {
	defer func(begin time.Time) {
		logResult(context.Background(), s.logger, "commit", err, "duration", time.Since(begin))
	}(time.Now())
	return s.next.Commit()
}

// Abort delegates to the wrapped store.
func (s *LoggingStore) Abort() (err error) {
	defer func() {
		logResult(context.Background(), s.logger, "abort", err)
	}()
	return s.next.Abort()
}
