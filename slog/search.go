// Package slog provides logging decorators for pipeline interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragsearch"
)

// Ensure LoggingSearcher implements ragsearch.WebSearcher.
var _ ragsearch.WebSearcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a WebSearcher with operational logging.
type LoggingSearcher struct {
	next   ragsearch.WebSearcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next ragsearch.WebSearcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) (results []ragsearch.WebResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("web search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}
