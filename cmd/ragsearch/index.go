package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ragsearch"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	var indexed, skipped, failed int

	err := filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if deps.Ctx.Err() != nil {
			return deps.Ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" && ext != ".pdf" {
			return nil
		}

		existing, err := deps.Documents.FindDocuments(deps.Ctx, ragsearch.DocumentFilter{FilePath: &path})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			if !c.Reindex {
				skipped++
				return nil
			}
			if err := deps.Documents.DeleteDocumentsByFilePath(deps.Ctx, path); err != nil {
				return err
			}
		}

		n, err := c.indexFile(deps, path, ext)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "skipping %s: %s\n", path, ragsearch.ErrorMessage(err))
			return nil
		}
		indexed += n
		return nil
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents (%d files skipped, %d failed)\n", indexed, skipped, failed)
	return nil
}

// indexFile ingests one file, returning the number of documents created.
// PDFs produce one document per page.
func (c *IndexCmd) indexFile(deps *Dependencies, path, ext string) (int, error) {
	if ext == ".pdf" {
		pages, err := deps.PDF.ParseFile(path)
		if err != nil {
			return 0, err
		}
		for _, page := range pages {
			doc := &ragsearch.Document{
				FilePath: path,
				Page:     page.Page,
				Content:  page.Text,
			}
			if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
				return 0, err
			}
		}
		return len(pages), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return 0, ragsearch.Errorf(ragsearch.EINVALID, "file is empty")
	}

	doc := &ragsearch.Document{
		FilePath: path,
		Content:  text,
	}
	if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
		return 0, err
	}
	return 1, nil
}
