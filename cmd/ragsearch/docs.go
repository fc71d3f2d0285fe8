package main

import (
	"fmt"

	"github.com/fwojciec/ragsearch"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, ragsearch.DocumentFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragsearch.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents indexed. Use 'ragsearch index <dir>' to index a corpus.")
		return nil
	}

	if c.Full {
		for _, doc := range docs {
			fmt.Fprintf(deps.Stdout, "== %s", doc.FilePath)
			if doc.Page > 0 {
				fmt.Fprintf(deps.Stdout, " (page %d)", doc.Page)
			}
			fmt.Fprintf(deps.Stdout, "\n\n%s\n\n", doc.Content)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Indexed documents (%d total):\n\n", len(docs))
	for i, doc := range docs {
		fmt.Fprintf(deps.Stdout, "  %d. %s", i+1, doc.FilePath)
		if doc.Page > 0 {
			fmt.Fprintf(deps.Stdout, " (page %d)", doc.Page)
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
