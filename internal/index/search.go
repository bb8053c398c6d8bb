// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"
)

// QueryOptions holds parameters for index searches.
type QueryOptions struct {
	// Query matches a substring of the title (case-insensitive for ASCII).
	Query string

	// DatabaseID filters by source database.
	DatabaseID string

	// Year filters by publication year.
	Year string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.DatabaseID == "" && q.Year == ""
}

// Hit is one search result.
type Hit struct {
	ID              string `json:"id" yaml:"id"`
	DatabaseID      string `json:"dbid" yaml:"dbid"`
	AccessionNumber string `json:"an" yaml:"an"`
	Title           string `json:"title" yaml:"title"`
	Year            string `json:"year,omitempty" yaml:"year,omitempty"`
	PublicationType string `json:"pub_type,omitempty" yaml:"pub_type,omitempty"`
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Search lists stored records matching opts, ordered by title then key.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Hit, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, dbid, an, title, year, pub_type FROM records WHERE 1=1`)

	if opts.Query != "" {
		qb.WriteString(` AND title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}
	if opts.DatabaseID != "" {
		qb.WriteString(` AND dbid = ?`)
		args = append(args, opts.DatabaseID)
	}
	if opts.Year != "" {
		qb.WriteString(` AND year = ?`)
		args = append(args, opts.Year)
	}
	qb.WriteString(` ORDER BY title, id LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h                    Hit
			title, year, pubType sql.NullString
		)
		if err := rows.Scan(&h.ID, &h.DatabaseID, &h.AccessionNumber, &title, &year, &pubType); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		h.Title = title.String
		h.Year = year.String
		h.PublicationType = pubType.String
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Dump writes every stored attribute mapping to w as JSON Lines, ordered by
// key.
func (s *Store) Dump(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM records ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return n, fmt.Errorf("scanning row: %w", err)
		}
		if !json.Valid([]byte(doc)) {
			return n, fmt.Errorf("stored document %d is not valid JSON", n+1)
		}
		if _, err := io.WriteString(w, doc+"\n"); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}
