package ragsearch

import (
	"context"
	"time"
)

// Document represents one indexed unit of the local corpus. Paginated
// sources (PDFs) produce one document per page so retrieval hits can point
// at the exact page; unpaginated sources use Page 0.
type Document struct {
	ID          string    `json:"id"`
	FilePath    string    `json:"filePath"`
	Page        int       `json:"page,omitempty"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	IndexedAt   time.Time `json:"indexedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.FilePath == "" {
		return Errorf(EINVALID, "document file path required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	if d.Page < 0 {
		return Errorf(EINVALID, "document page must not be negative")
	}
	return nil
}

// DocumentService represents a service for managing corpus documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentsByFilePath removes all documents indexed from a file.
	DeleteDocumentsByFilePath(ctx context.Context, filePath string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID       *string `json:"id"`
	FilePath *string `json:"filePath"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
