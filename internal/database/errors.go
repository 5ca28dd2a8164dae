package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a lookup, update or delete touches no rows.
	ErrNotFound = errors.New("record not found")

	// ErrSlugExists is returned when a blog post slug collides with an
	// existing one. Surfaced to callers as a conflict, not a driver error.
	ErrSlugExists = errors.New("slug already exists")
)

// translateConstraint converts a SQLite unique-constraint violation into
// ErrSlugExists and leaves every other error untouched.
func translateConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrSlugExists
	}
	return err
}
