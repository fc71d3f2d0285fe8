package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/ragsearch"
	"github.com/fwojciec/ragsearch/mock"
	ragslog "github.com/fwojciec/ragsearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRetriever_Retrieve(t *testing.T) {
	t.Parallel()

	t.Run("logs query, top_k, and count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Retriever{
			RetrieveFn: func(_ context.Context, _ string, _ int) ([]ragsearch.LocalResult, error) {
				return []ragsearch.LocalResult{{FilePath: "docs/guide.md"}}, nil
			},
		}

		retriever := ragslog.NewLoggingRetriever(inner, logger)
		results, err := retriever.Retrieve(context.Background(), "indexes", 3)

		require.NoError(t, err)
		assert.Len(t, results, 1)
		output := buf.String()
		assert.Contains(t, output, "local retrieval")
		assert.Contains(t, output, "query=indexes")
		assert.Contains(t, output, "top_k=3")
		assert.Contains(t, output, "count=1")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Retriever{
			RetrieveFn: func(_ context.Context, _ string, _ int) ([]ragsearch.LocalResult, error) {
				return nil, ragsearch.Errorf(ragsearch.EINTERNAL, "query failed")
			},
		}

		retriever := ragslog.NewLoggingRetriever(inner, logger)
		_, err := retriever.Retrieve(context.Background(), "q", 3)

		assert.Error(t, err)
		assert.Contains(t, buf.String(), "query failed")
	})
}
