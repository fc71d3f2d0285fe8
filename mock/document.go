package mock

import (
	"context"

	"github.com/fwojciec/ragsearch"
)

var _ ragsearch.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of ragsearch.DocumentService.
type DocumentService struct {
	CreateDocumentFn            func(ctx context.Context, doc *ragsearch.Document) error
	FindDocumentByIDFn          func(ctx context.Context, id string) (*ragsearch.Document, error)
	FindDocumentsFn             func(ctx context.Context, filter ragsearch.DocumentFilter) ([]*ragsearch.Document, error)
	DeleteDocumentFn            func(ctx context.Context, id string) error
	DeleteDocumentsByFilePathFn func(ctx context.Context, filePath string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *ragsearch.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*ragsearch.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter ragsearch.DocumentFilter) ([]*ragsearch.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteDocumentsByFilePath(ctx context.Context, filePath string) error {
	return s.DeleteDocumentsByFilePathFn(ctx, filePath)
}
