// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps normalized records in a local SQLite database keyed by
// their identity key, so that records fetched once can be looked up and
// searched again without another round trip to the discovery service.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/eds-records/internal/record"
	"github.com/pdiddy/eds-records/pkg/types"
)

const (
	defaultPath       = "eds-records.db"
	defaultMaxResults = 20
)

// ErrNotFound is returned when no record has the requested key.
var ErrNotFound = errors.New("record not found")

// Store manages the record index database.
type Store struct {
	db         *sql.DB
	maxResults int
	log        logrus.FieldLogger
}

// NewStore opens or creates the index database at cfg.Path and creates the
// schema if it does not exist. A nil log discards log output.
func NewStore(cfg types.IndexConfig, log logrus.FieldLogger) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating index directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, log: log.WithField("component", "index")}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			dbid TEXT NOT NULL,
			an TEXT NOT NULL,
			title TEXT,
			year TEXT,
			pub_type TEXT,
			doc TEXT NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_dbid ON records(dbid)`,
		`CREATE INDEX IF NOT EXISTS idx_records_year ON records(year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// PutSummary holds counts from one Put call.
type PutSummary struct {
	Inserted int
	Updated  int
}

// Put stores records under their identity keys, replacing earlier versions.
// All records are written in one transaction.
func (s *Store) Put(ctx context.Context, recs []*record.Record) (PutSummary, error) {
	var summary PutSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, r := range recs {
		attrs, err := r.AttrMap()
		if err != nil {
			return PutSummary{}, err
		}
		doc, err := json.Marshal(attrs)
		if err != nil {
			return PutSummary{}, fmt.Errorf("encoding %s: %w", r.ID, err)
		}

		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM records WHERE id = ?`, r.ID).Scan(&exists); err != nil {
			return PutSummary{}, fmt.Errorf("checking %s: %w", r.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (id, dbid, an, title, year, pub_type, doc, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				dbid = excluded.dbid, an = excluded.an, title = excluded.title,
				year = excluded.year, pub_type = excluded.pub_type,
				doc = excluded.doc, indexed_at = excluded.indexed_at`,
			r.ID, r.DatabaseID, r.AccessionNumber, r.Title, r.PublicationYear,
			r.PublicationType, string(doc), now,
		); err != nil {
			return PutSummary{}, fmt.Errorf("storing %s: %w", r.ID, err)
		}

		if exists > 0 {
			summary.Updated++
			s.log.WithField("id", r.ID).Debug("updated record")
		} else {
			summary.Inserted++
			s.log.WithField("id", r.ID).Debug("indexed record")
		}
	}

	if err := tx.Commit(); err != nil {
		return PutSummary{}, fmt.Errorf("committing: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"inserted": summary.Inserted,
		"updated":  summary.Updated,
	}).Info("index updated")
	return summary, nil
}

// Get returns the stored attribute mapping of a record.
func (s *Store) Get(ctx context.Context, id string) (map[string]any, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM records WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", id, err)
	}

	var attrs map[string]any
	if err := json.Unmarshal([]byte(doc), &attrs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", id, err)
	}
	return attrs, nil
}

// Delete removes a record. Deleting an unknown key returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
