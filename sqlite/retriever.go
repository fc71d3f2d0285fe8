package sqlite

import (
	"context"
	"strings"
	"unicode"

	"github.com/fwojciec/ragsearch"
)

// Ensure Retriever implements ragsearch.Retriever at compile time.
var _ ragsearch.Retriever = (*Retriever)(nil)

// Retriever implements ragsearch.Retriever with SQLite FTS5 full-text
// search, ranked by bm25.
type Retriever struct {
	db *DB
}

// NewRetriever creates a new Retriever.
func NewRetriever(db *DB) *Retriever {
	return &Retriever{db: db}
}

// Retrieve returns the topK most relevant corpus documents for the query.
// Result snippets come from the FTS5 snippet function.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]ragsearch.LocalResult, error) {
	match := matchExpression(query)
	if match == "" {
		return nil, nil
	}
	if topK <= 0 {
		topK = ragsearch.DefaultTopK
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT d.file_path, d.page, snippet(documents_fts, 0, '', '', ' … ', 16)
		FROM documents_fts
		JOIN documents d ON d.rowid = documents_fts.rowid
		WHERE documents_fts MATCH ?
		ORDER BY bm25(documents_fts)
		LIMIT ?
	`, match, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ragsearch.LocalResult
	for rows.Next() {
		var res ragsearch.LocalResult
		if err := rows.Scan(&res.FilePath, &res.Page, &res.Snippet); err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// matchExpression converts a natural language query into an FTS5 match
// expression. Terms are quoted to neutralize FTS5 operator syntax and
// combined with OR so partial matches still rank.
func matchExpression(query string) string {
	terms := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(terms) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+term+`"`)
	}
	return strings.Join(quoted, " OR ")
}
