package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reeltrack/models"
)

const watchedColumns = `id, title, comment, score, image_url, watch_date, content_type, season,
	synopsis, release_year, release_date, runtime, genres, tmdb_id, tmdb_rating, poster_url, top_rank`

// WatchedRepository persists watched items.
type WatchedRepository struct {
	db *sql.DB
}

// NewWatchedRepository creates a repository bound to the given connection.
func NewWatchedRepository(db *sql.DB) *WatchedRepository {
	return &WatchedRepository{db: db}
}

func scanWatched(row interface{ Scan(...any) error }) (models.WatchedItem, error) {
	var item models.WatchedItem
	err := row.Scan(
		&item.ID, &item.Title, &item.Comment, &item.Score, &item.ImageURL,
		&item.WatchDate, &item.ContentType, &item.Season, &item.Synopsis,
		&item.ReleaseYear, &item.ReleaseDate, &item.Runtime, &item.Genres,
		&item.TMDBID, &item.TMDBRating, &item.PosterURL, &item.TopRank,
	)
	return item, err
}

func (r *WatchedRepository) list(ctx context.Context, where, order string) ([]models.WatchedItem, error) {
	query := fmt.Sprintf("SELECT %s FROM watched WHERE %s ORDER BY %s", watchedColumns, where, order)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query watched: %w", err)
	}
	defer rows.Close()

	items := []models.WatchedItem{}
	for rows.Next() {
		item, err := scanWatched(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watched row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListUnranked returns the watched feed: items without a top rank, most
// recently watched first.
func (r *WatchedRepository) ListUnranked(ctx context.Context) ([]models.WatchedItem, error) {
	return r.list(ctx, "top_rank IS NULL", "watch_date DESC")
}

// ListRanked returns the curated top list ordered by rank.
func (r *WatchedRepository) ListRanked(ctx context.Context) ([]models.WatchedItem, error) {
	return r.list(ctx, "top_rank IS NOT NULL", "top_rank ASC")
}

// Get returns a single watched item or ErrNotFound.
func (r *WatchedRepository) Get(ctx context.Context, id int64) (*models.WatchedItem, error) {
	query := fmt.Sprintf("SELECT %s FROM watched WHERE id = ?", watchedColumns)
	item, err := scanWatched(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get watched %d: %w", id, err)
	}
	return &item, nil
}

// Exists reports whether a watched item with the given id is present.
func (r *WatchedRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM watched WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check watched %d: %w", id, err)
	}
	return true, nil
}

// Insert stores a new watched item and assigns its id.
func (r *WatchedRepository) Insert(ctx context.Context, item *models.WatchedItem) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO watched (
			title, comment, score, image_url, watch_date, content_type, season,
			synopsis, release_year, release_date, runtime, genres, tmdb_id, tmdb_rating, poster_url, top_rank
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Comment, item.Score, item.ImageURL, item.WatchDate,
		item.ContentType, item.Season, item.Synopsis, item.ReleaseYear,
		item.ReleaseDate, item.Runtime, item.Genres, item.TMDBID,
		item.TMDBRating, item.PosterURL, item.TopRank,
	)
	if err != nil {
		return fmt.Errorf("insert watched: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert watched id: %w", err)
	}
	item.ID = id
	return nil
}

// Update replaces the full record. Returns ErrNotFound when the id is unknown.
func (r *WatchedRepository) Update(ctx context.Context, item *models.WatchedItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE watched
		SET title = ?, comment = ?, score = ?, image_url = ?, watch_date = ?, content_type = ?, season = ?,
			synopsis = ?, release_year = ?, release_date = ?, runtime = ?, genres = ?, tmdb_id = ?,
			tmdb_rating = ?, poster_url = ?, top_rank = ?
		WHERE id = ?`,
		item.Title, item.Comment, item.Score, item.ImageURL, item.WatchDate,
		item.ContentType, item.Season, item.Synopsis, item.ReleaseYear,
		item.ReleaseDate, item.Runtime, item.Genres, item.TMDBID,
		item.TMDBRating, item.PosterURL, item.TopRank, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update watched %d: %w", item.ID, err)
	}
	return requireRow(res)
}

// Delete removes a watched item by id; blog posts referencing it are removed
// by the store's referential cascade.
func (r *WatchedRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM watched WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete watched %d: %w", id, err)
	}
	return requireRow(res)
}

// Stats returns the size and average score of the unranked watched feed.
func (r *WatchedRepository) Stats(ctx context.Context) (count int, avgScore float64, err error) {
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(AVG(score), 0) FROM watched WHERE top_rank IS NULL",
	).Scan(&count, &avgScore)
	if err != nil {
		return 0, 0, fmt.Errorf("watched stats: %w", err)
	}
	return count, avgScore, nil
}

// requireRow maps a zero-row result onto ErrNotFound.
func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
