package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragsearch"
)

// Ensure LoggingRetriever implements ragsearch.Retriever.
var _ ragsearch.Retriever = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a Retriever with operational logging.
type LoggingRetriever struct {
	next   ragsearch.Retriever
	logger *slog.Logger
}

// NewLoggingRetriever creates a new LoggingRetriever.
func NewLoggingRetriever(next ragsearch.Retriever, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{next: next, logger: logger}
}

// Retrieve delegates to the wrapped retriever and logs the operation.
func (r *LoggingRetriever) Retrieve(ctx context.Context, query string, topK int) (results []ragsearch.LocalResult, err error) {
	defer func(begin time.Time) {
		r.logger.Info("local retrieval",
			"query", query,
			"top_k", topK,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Retrieve(ctx, query, topK)
}
