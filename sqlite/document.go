package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ragsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ragsearch.DocumentService = (*DocumentService)(nil)

// DocumentService implements ragsearch.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *ragsearch.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.IndexedAt = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, file_path, page, content, content_hash, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.FilePath, doc.Page, doc.Content, doc.ContentHash,
		doc.IndexedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*ragsearch.Document, error) {
	var doc ragsearch.Document
	var indexedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, file_path, page, content, content_hash, indexed_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.FilePath, &doc.Page, &doc.Content, &doc.ContentHash, &indexedAt)

	if err == sql.ErrNoRows {
		return nil, ragsearch.Errorf(ragsearch.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.IndexedAt, err = time.Parse(time.RFC3339, indexedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse indexed_at: %w", err)
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter, ordered by file
// path and page.
func (s *DocumentService) FindDocuments(ctx context.Context, filter ragsearch.DocumentFilter) ([]*ragsearch.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, file_path, page, content, content_hash, indexed_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.FilePath != nil {
		query.WriteString(" AND file_path = ?")
		args = append(args, *filter.FilePath)
	}

	query.WriteString(" ORDER BY file_path ASC, page ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*ragsearch.Document
	for rows.Next() {
		var doc ragsearch.Document
		var indexedAt string
		if err := rows.Scan(&doc.ID, &doc.FilePath, &doc.Page, &doc.Content, &doc.ContentHash, &indexedAt); err != nil {
			return nil, err
		}
		doc.IndexedAt, err = time.Parse(time.RFC3339, indexedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse indexed_at: %w", err)
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ragsearch.Errorf(ragsearch.ENOTFOUND, "document not found")
	}

	return nil
}

// DeleteDocumentsByFilePath removes all documents indexed from a file.
func (s *DocumentService) DeleteDocumentsByFilePath(ctx context.Context, filePath string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE file_path = ?", filePath)
	return err
}
