// Package history is a small, optional store for recent lookups, outside
// the compiled-database core (which is a custom zip/binary container, not
// SQL): a caller wiring up an interactive frontend over pkg/search can use
// it to remember and re-surface a user's recent queries.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS recent_lookups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	mode INTEGER NOT NULL,
	hit_count INTEGER NOT NULL DEFAULT 1,
	looked_up_at DATETIME NOT NULL,
	UNIQUE(query, mode)
);
`

// InitDB creates the recent_lookups table if it doesn't already exist.
func InitDB(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}

// DBExecutor is satisfied by *sql.DB and *sql.Tx.
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// LookupRecord is one remembered query.
type LookupRecord struct {
	ID         int64
	Query      string
	Mode       int
	HitCount   int
	LookedUpAt time.Time
}

// RecordLookup upserts a (query, mode) pair: a first occurrence inserts a
// new row with hit_count 1, a repeat increments hit_count and refreshes
// looked_up_at.
func RecordLookup(db DBExecutor, query string, mode int) (int64, error) {
	if query == "" {
		return 0, fmt.Errorf("history: query must be non-empty")
	}

	var id int64
	err := db.QueryRow(
		`INSERT INTO recent_lookups (query, mode, hit_count, looked_up_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT(query, mode) DO UPDATE SET
		   hit_count = recent_lookups.hit_count + 1,
		   looked_up_at = excluded.looked_up_at
		 RETURNING id`,
		query, mode, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("history: recording lookup: %w", err)
	}
	return id, nil
}

// RecentLookups returns up to limit lookups, most recent first.
func RecentLookups(db DBExecutor, limit int) ([]LookupRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT id, query, mode, hit_count, looked_up_at
		 FROM recent_lookups ORDER BY looked_up_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LookupRecord
	for rows.Next() {
		var r LookupRecord
		if err := rows.Scan(&r.ID, &r.Query, &r.Mode, &r.HitCount, &r.LookedUpAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
