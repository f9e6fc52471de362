// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// DocID restricts results to one document.
	DocID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.DocID == ""
}

// QueryResult is one matching document with a context snippet.
type QueryResult struct {
	DocID   string  `json:"doc_id" yaml:"doc_id"`
	TxtPath string  `json:"txt_path" yaml:"txt_path"`
	PDFPath string  `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
	Snippet string  `json:"snippet" yaml:"snippet"`
	Rank    float64 `json:"rank" yaml:"rank"`
}

// snippetLen bounds the fallback snippet for non-FTS listings.
const snippetLen = 120

// Search queries the index. With a full-text query, results are ranked by
// relevance and carry an FTS5 snippet; without one, documents are listed by
// ID with the start of their content as the snippet.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT d.id, d.txt_path, d.pdf_path,
				snippet(documents_fts, 0, '[', ']', '...', 12),
				documents_fts.rank
			FROM documents_fts
			JOIN documents d ON d.rowid = documents_fts.rowid
			WHERE documents_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT d.id, d.txt_path, d.pdf_path, substr(d.content, 1, ?), 0 AS rank
			FROM documents d
			WHERE 1=1`)
		args = append(args, snippetLen)
	}

	if opts.DocID != "" {
		qb.WriteString(` AND d.id = ?`)
		args = append(args, opts.DocID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY documents_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY d.id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr      QueryResult
			pdfPath sql.NullString
		)
		if err := rows.Scan(&qr.DocID, &qr.TxtPath, &pdfPath, &qr.Snippet, &qr.Rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if pdfPath.Valid {
			qr.PDFPath = pdfPath.String
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
