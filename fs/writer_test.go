package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ragsearch"
	"github.com/fwojciec/ragsearch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	answer := ragsearch.Report{
		{Level: 1, Title: "Final Aggregated Answer", Content: ragsearch.Text("the answer")},
	}
	full := ragsearch.Report{
		{Level: 1, Title: "Aggregated Results for Query ID: q1"},
		{Level: 1, Title: "Final Aggregated Answer", Content: ragsearch.Text("the answer")},
	}

	t.Run("writes four files and returns the full markdown path", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		w := fs.NewWriter(base)

		path, err := w.Write(context.Background(), "q1", answer, full)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(base, "q1", "q1_output.md"), path)

		for _, name := range []string{
			"final_report.md",
			"final_report.adoc",
			"q1_output.md",
			"q1_output.adoc",
		} {
			_, err := os.Stat(filepath.Join(base, "q1", name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("writes rendered content in each dialect", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		w := fs.NewWriter(base)

		_, err := w.Write(context.Background(), "q1", answer, full)
		require.NoError(t, err)

		md, err := os.ReadFile(filepath.Join(base, "q1", "final_report.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Final Aggregated Answer\n\nthe answer\n\n", string(md))

		adoc, err := os.ReadFile(filepath.Join(base, "q1", "final_report.adoc"))
		require.NoError(t, err)
		assert.Equal(t, "= Final Aggregated Answer\n\nthe answer\n\n", string(adoc))
	})

	t.Run("overwrites existing reports", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		w := fs.NewWriter(base)
		ctx := context.Background()

		_, err := w.Write(ctx, "q1", answer, full)
		require.NoError(t, err)

		updated := ragsearch.Report{
			{Level: 1, Title: "Final Aggregated Answer", Content: ragsearch.Text("revised")},
		}
		_, err = w.Write(ctx, "q1", updated, full)
		require.NoError(t, err)

		md, err := os.ReadFile(filepath.Join(base, "q1", "final_report.md"))
		require.NoError(t, err)
		assert.Contains(t, string(md), "revised")
		assert.NotContains(t, string(md), "the answer")
	})

	t.Run("rejects empty query ID", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		_, err := w.Write(context.Background(), "", answer, full)

		require.Error(t, err)
		assert.Equal(t, ragsearch.EINVALID, ragsearch.ErrorCode(err))
	})

	t.Run("propagates filesystem failures", func(t *testing.T) {
		t.Parallel()

		// A regular file where the base directory should be makes MkdirAll fail.
		base := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(base, []byte("x"), 0644))

		w := fs.NewWriter(base)

		_, err := w.Write(context.Background(), "q1", answer, full)
		assert.Error(t, err)
	})
}
