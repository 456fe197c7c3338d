// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a local SQLite archive of associations fetched from
// the RNA API. Searches never read from it; it only records what was fetched.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rna/internal/export"
	"github.com/pdiddy/rna/pkg/types"
)

const defaultMaxResults = 50

// Store manages the archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive at cfg.Path, creating the parent
// directory and the schema as needed.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("archive path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS associations (
			id TEXT PRIMARY KEY,
			titre TEXT NOT NULL,
			date_creation TEXT,
			commune TEXT,
			departement TEXT,
			objet TEXT,
			first_seen TEXT NOT NULL,
			last_seen TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_associations_departement ON associations(departement)`,
		`CREATE TABLE IF NOT EXISTS searches (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			page INTEGER NOT NULL,
			per_page INTEGER NOT NULL,
			total_results INTEGER,
			total_pages INTEGER,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS search_hits (
			search_id INTEGER NOT NULL REFERENCES searches(rowid) ON DELETE CASCADE,
			association_id TEXT NOT NULL REFERENCES associations(id),
			position INTEGER NOT NULL,
			PRIMARY KEY (search_id, position)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from one ingest.
type IngestSummary struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// Total returns the number of records processed.
func (s IngestSummary) Total() int {
	return s.Inserted + s.Updated + s.Unchanged
}

// Ingest records a fetched page: the search itself, and every association
// on it. Associations are keyed by id, so ingesting the same page twice
// leaves one row per association.
func (s *Store) Ingest(ctx context.Context, qf export.QueryFile) (IngestSummary, error) {
	fetched := qf.Summary.Timestamp
	if fetched.IsZero() {
		fetched = time.Now()
	}
	seen := fetched.UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO searches (query, page, per_page, total_results, total_pages, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		qf.Query.Text, qf.Query.Page, qf.Query.PerPage,
		qf.Summary.TotalResults, qf.Summary.TotalPages, seen,
	)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("inserting search: %w", err)
	}
	searchID, err := res.LastInsertId()
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading search id: %w", err)
	}

	var summary IngestSummary
	for i, a := range qf.Results {
		if a.ID == "" {
			return IngestSummary{}, fmt.Errorf("result %d has no id", i)
		}

		var existing types.Association
		err := tx.QueryRowContext(ctx,
			`SELECT id, titre, date_creation, commune, departement, objet FROM associations WHERE id = ?`, a.ID,
		).Scan(&existing.ID, &existing.Titre, &existing.DateCreation, &existing.Commune, &existing.Departement, &existing.Objet)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx,
				`INSERT INTO associations (id, titre, date_creation, commune, departement, objet, first_seen, last_seen)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				a.ID, a.Titre, a.DateCreation, a.Commune, a.Departement, a.Objet, seen, seen,
			)
			if err != nil {
				return IngestSummary{}, fmt.Errorf("inserting association %s: %w", a.ID, err)
			}
			summary.Inserted++
		case err != nil:
			return IngestSummary{}, fmt.Errorf("looking up association %s: %w", a.ID, err)
		default:
			_, err = tx.ExecContext(ctx,
				`UPDATE associations SET titre=?, date_creation=?, commune=?, departement=?, objet=?, last_seen=?
				 WHERE id = ?`,
				a.Titre, a.DateCreation, a.Commune, a.Departement, a.Objet, seen, a.ID,
			)
			if err != nil {
				return IngestSummary{}, fmt.Errorf("updating association %s: %w", a.ID, err)
			}
			if existing == a {
				summary.Unchanged++
			} else {
				summary.Updated++
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO search_hits (search_id, association_id, position) VALUES (?, ?, ?)`,
			searchID, a.ID, i,
		); err != nil {
			return IngestSummary{}, fmt.Errorf("recording hit %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing ingest: %w", err)
	}
	return summary, nil
}

// ListOptions filters an archive listing.
type ListOptions struct {
	// Departement keeps only associations in this département.
	Departement string

	// Query keeps associations whose titre or objet contains it (case-insensitive).
	Query string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List returns archived associations ordered by id.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Association, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, titre, date_creation, commune, departement, objet FROM associations WHERE 1=1`)

	if opts.Departement != "" {
		qb.WriteString(` AND departement = ?`)
		args = append(args, opts.Departement)
	}
	if opts.Query != "" {
		qb.WriteString(` AND (lower(titre) LIKE ? OR lower(objet) LIKE ?)`)
		pattern := "%" + strings.ToLower(opts.Query) + "%"
		args = append(args, pattern, pattern)
	}
	qb.WriteString(` ORDER BY id LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var out []types.Association
	for rows.Next() {
		var (
			a                                 types.Association
			date, commune, departement, objet sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Titre, &date, &commune, &departement, &objet); err != nil {
			return nil, fmt.Errorf("scanning association: %w", err)
		}
		a.DateCreation = date.String
		a.Commune = commune.String
		a.Departement = departement.String
		a.Objet = objet.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// Count returns the number of archived associations and recorded searches.
func (s *Store) Count(ctx context.Context) (associations, searches int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM associations`).Scan(&associations); err != nil {
		return 0, 0, fmt.Errorf("counting associations: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM searches`).Scan(&searches); err != nil {
		return 0, 0, fmt.Errorf("counting searches: %w", err)
	}
	return associations, searches, nil
}
