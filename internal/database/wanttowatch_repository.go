package database

import (
	"context"
	"database/sql"
	"fmt"

	"reeltrack/models"
)

const wantToWatchColumns = `id, title, image_url, launch_date, excitement, content_type, season,
	synopsis, release_year, runtime, genres, tmdb_id, tmdb_rating, poster_url`

// WantToWatchRepository persists want-to-watch items.
type WantToWatchRepository struct {
	db *sql.DB
}

// NewWantToWatchRepository creates a repository bound to the given connection.
func NewWantToWatchRepository(db *sql.DB) *WantToWatchRepository {
	return &WantToWatchRepository{db: db}
}

func scanWantToWatch(row interface{ Scan(...any) error }) (models.WantToWatchItem, error) {
	var item models.WantToWatchItem
	err := row.Scan(
		&item.ID, &item.Title, &item.ImageURL, &item.LaunchDate, &item.Excitement,
		&item.ContentType, &item.Season, &item.Synopsis, &item.ReleaseYear,
		&item.Runtime, &item.Genres, &item.TMDBID, &item.TMDBRating, &item.PosterURL,
	)
	return item, err
}

// List returns all want-to-watch items, most recent launch date first.
func (r *WantToWatchRepository) List(ctx context.Context) ([]models.WantToWatchItem, error) {
	query := fmt.Sprintf("SELECT %s FROM want_to_watch ORDER BY launch_date DESC", wantToWatchColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query want_to_watch: %w", err)
	}
	defer rows.Close()

	items := []models.WantToWatchItem{}
	for rows.Next() {
		item, err := scanWantToWatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan want_to_watch row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Insert stores a new want-to-watch item and assigns its id.
func (r *WantToWatchRepository) Insert(ctx context.Context, item *models.WantToWatchItem) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO want_to_watch (
			title, image_url, launch_date, excitement, content_type, season,
			synopsis, release_year, runtime, genres, tmdb_id, tmdb_rating, poster_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.ImageURL, item.LaunchDate, item.Excitement,
		item.ContentType, item.Season, item.Synopsis, item.ReleaseYear,
		item.Runtime, item.Genres, item.TMDBID, item.TMDBRating, item.PosterURL,
	)
	if err != nil {
		return fmt.Errorf("insert want_to_watch: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert want_to_watch id: %w", err)
	}
	item.ID = id
	return nil
}

// Update replaces the full record. Returns ErrNotFound when the id is unknown.
func (r *WantToWatchRepository) Update(ctx context.Context, item *models.WantToWatchItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE want_to_watch
		SET title = ?, image_url = ?, launch_date = ?, excitement = ?, content_type = ?, season = ?,
			synopsis = ?, release_year = ?, runtime = ?, genres = ?, tmdb_id = ?, tmdb_rating = ?, poster_url = ?
		WHERE id = ?`,
		item.Title, item.ImageURL, item.LaunchDate, item.Excitement,
		item.ContentType, item.Season, item.Synopsis, item.ReleaseYear,
		item.Runtime, item.Genres, item.TMDBID, item.TMDBRating, item.PosterURL,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update want_to_watch %d: %w", item.ID, err)
	}
	return requireRow(res)
}

// Delete removes a want-to-watch item by id.
func (r *WantToWatchRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM want_to_watch WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete want_to_watch %d: %w", id, err)
	}
	return requireRow(res)
}

// Stats returns the size and average excitement of the want-to-watch list.
func (r *WantToWatchRepository) Stats(ctx context.Context) (count int, avgExcitement float64, err error) {
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(AVG(excitement), 0) FROM want_to_watch",
	).Scan(&count, &avgExcitement)
	if err != nil {
		return 0, 0, fmt.Errorf("want_to_watch stats: %w", err)
	}
	return count, avgExcitement, nil
}
