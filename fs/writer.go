// Package fs provides file-based persistence for rendered reports.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/ragsearch"
)

// Report file names within the per-query output directory.
const (
	AnswerMarkdownFile = "final_report.md"
	AnswerAsciiDocFile = "final_report.adoc"
	fullMarkdownSuffix = "_output.md"
	fullAsciiDocSuffix = "_output.adoc"
)

// Ensure Writer implements ragsearch.ReportWriter at compile time.
var _ ragsearch.ReportWriter = (*Writer)(nil)

// Writer persists rendered reports under a base directory, one subdirectory
// per query. Existing files are overwritten; last write wins.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer. An empty baseDir falls back to the
// default results directory.
func NewWriter(baseDir string) *Writer {
	if baseDir == "" {
		baseDir = ragsearch.DefaultResultsBaseDir
	}
	return &Writer{baseDir: baseDir}
}

// Write renders both reports to Markdown and AsciiDoc and writes the four
// files to <baseDir>/<queryID>/. The directory is created as needed;
// re-creating an existing directory is not an error. Returns the path of
// the full Markdown report.
func (w *Writer) Write(ctx context.Context, queryID string, answer, full ragsearch.Report) (string, error) {
	if queryID == "" {
		return "", ragsearch.Errorf(ragsearch.EINVALID, "query ID required")
	}

	dir := filepath.Join(w.baseDir, queryID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	files := []struct {
		name    string
		content string
	}{
		{AnswerMarkdownFile, ragsearch.RenderMarkdown(answer)},
		{AnswerAsciiDocFile, ragsearch.RenderAsciiDoc(answer)},
		{queryID + fullMarkdownSuffix, ragsearch.RenderMarkdown(full)},
		{queryID + fullAsciiDocSuffix, ragsearch.RenderAsciiDoc(full)},
	}

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			return "", err
		}
	}

	return filepath.Join(dir, queryID+fullMarkdownSuffix), nil
}
