package database

import (
	"database/sql"
	"fmt"
	"log"
)

// column is one declared schema column with its SQLite type.
type column struct {
	name    string
	sqlType string
}

// schemaDeltas declares every column added after the base migration, per
// table. Columns are only ever added, never renamed or dropped, so older
// databases catch up by applying whichever entries they are missing.
var schemaDeltas = map[string][]column{
	"watched": {
		{"season", "INTEGER"},
		{"synopsis", "TEXT"},
		{"release_year", "INTEGER"},
		{"release_date", "TEXT"},
		{"runtime", "INTEGER"},
		{"genres", "TEXT"},
		{"tmdb_id", "INTEGER"},
		{"tmdb_rating", "REAL"},
		{"poster_url", "TEXT"},
		{"top_rank", "INTEGER"},
	},
	"want_to_watch": {
		{"season", "INTEGER"},
		{"synopsis", "TEXT"},
		{"release_year", "INTEGER"},
		{"runtime", "INTEGER"},
		{"genres", "TEXT"},
		{"tmdb_id", "INTEGER"},
		{"tmdb_rating", "REAL"},
		{"poster_url", "TEXT"},
	},
}

// EnsureSchema additively applies any declared columns the live schema is
// missing. Idempotent; runs on every startup after the base migrations.
func EnsureSchema(db *sql.DB) error {
	for table, cols := range schemaDeltas {
		existing, err := tableColumns(db, table)
		if err != nil {
			return fmt.Errorf("inspect table %s: %w", table, err)
		}
		for _, col := range cols {
			if existing[col.name] {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col.name, col.sqlType)
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("add column %s.%s: %w", table, col.name, err)
			}
			log.Printf("[database] added column %s.%s", table, col.name)
		}
	}
	return nil
}

// tableColumns returns the set of column names currently present on a table.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		existing[name] = true
	}
	return existing, rows.Err()
}
