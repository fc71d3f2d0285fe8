// Package readability extracts main content from downloaded web pages using
// the go-readability port of Mozilla's Readability.
package readability

import (
	"strings"

	"github.com/fwojciec/ragsearch"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements ragsearch.Extractor at compile time.
var _ ragsearch.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// It is an alternative to the trafilatura extractor, selectable through
// configuration.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*ragsearch.ExtractResult, error) {
	if rawHTML == "" {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &ragsearch.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
