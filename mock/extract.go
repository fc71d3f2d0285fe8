package mock

import (
	"context"

	"github.com/fwojciec/ragsearch"
)

var _ ragsearch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ragsearch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*ragsearch.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*ragsearch.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ ragsearch.Converter = (*Converter)(nil)

// Converter is a mock implementation of ragsearch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ ragsearch.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of ragsearch.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
