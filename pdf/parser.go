// Package pdf extracts text from PDF files for corpus indexing.
package pdf

import (
	"strings"

	"github.com/fwojciec/ragsearch"
	pdflib "github.com/ledongthuc/pdf"
)

// PageText is the extracted text of a single PDF page.
type PageText struct {
	Page int
	Text string
}

// Parser extracts per-page text from PDF files. Indexing one document per
// page lets retrieval results carry page numbers.
type Parser struct{}

// ParseFile extracts the text of every non-empty page in the file.
// Pages whose text cannot be decoded are skipped.
func (p *Parser) ParseFile(path string) ([]PageText, error) {
	if path == "" {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "path required")
	}

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "open pdf %q: %v", path, err)
	}
	defer f.Close()

	var pages []PageText
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, PageText{Page: i, Text: text})
	}

	return pages, nil
}
