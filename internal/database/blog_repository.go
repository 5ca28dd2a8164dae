package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"reeltrack/models"
)

// BlogRepository persists blog posts attached to watched items.
type BlogRepository struct {
	db *sql.DB
}

// NewBlogRepository creates a repository bound to the given connection.
func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// List returns all posts joined with display fields from the owning watched
// item, newest first.
func (r *BlogRepository) List(ctx context.Context) ([]models.BlogPostSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.watched_id, b.title, b.slug, b.body, b.created_at,
			w.poster_url, w.image_url, w.score, w.release_year, w.genres, w.tmdb_rating, w.content_type
		FROM blog_posts b
		JOIN watched w ON b.watched_id = w.id
		ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPostSummary{}
	for rows.Next() {
		var p models.BlogPostSummary
		if err := rows.Scan(
			&p.ID, &p.WatchedID, &p.Title, &p.Slug, &p.Body, &p.CreatedAt,
			&p.PosterURL, &p.ImageURL, &p.Score, &p.ReleaseYear, &p.Genres,
			&p.TMDBRating, &p.ContentType,
		); err != nil {
			return nil, fmt.Errorf("scan blog post row: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetBySlug returns a single post with the full metadata of its watched
// item, or ErrNotFound.
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPostDetail, error) {
	var p models.BlogPostDetail
	err := r.db.QueryRowContext(ctx, `
		SELECT b.id, b.watched_id, b.title, b.slug, b.body, b.created_at,
			w.title, w.image_url, w.score, w.watch_date, w.content_type, w.season,
			w.synopsis, w.release_year, w.runtime, w.genres, w.tmdb_rating, w.poster_url
		FROM blog_posts b
		JOIN watched w ON b.watched_id = w.id
		WHERE b.slug = ?`, slug,
	).Scan(
		&p.ID, &p.WatchedID, &p.Title, &p.Slug, &p.Body, &p.CreatedAt,
		&p.MovieTitle, &p.ImageURL, &p.Score, &p.WatchDate, &p.ContentType,
		&p.Season, &p.Synopsis, &p.ReleaseYear, &p.Runtime, &p.Genres,
		&p.TMDBRating, &p.PosterURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog post %q: %w", slug, err)
	}
	return &p, nil
}

// Insert stores a new post and assigns its id. A slug collision surfaces as
// ErrSlugExists.
func (r *BlogRepository) Insert(ctx context.Context, post *models.BlogPost) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO blog_posts (watched_id, title, slug, body, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		post.WatchedID, post.Title, post.Slug, post.Body, post.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("insert blog post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert blog post id: %w", err)
	}
	post.ID = id
	return nil
}

// Update replaces a post except for its creation timestamp, which is
// immutable once set. The stored timestamp is read back into the post.
func (r *BlogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE blog_posts
		SET watched_id = ?, title = ?, slug = ?, body = ?
		WHERE id = ?
		RETURNING created_at`,
		post.WatchedID, post.Title, post.Slug, post.Body, post.ID,
	).Scan(&post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		return fmt.Errorf("update blog post %d: %w", post.ID, err)
	}
	return nil
}

// Delete removes a post by id.
func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete blog post %d: %w", id, err)
	}
	return requireRow(res)
}

// SlugsByWatchedIDs maps each of the given watched item ids to its post slug
// in a single query. Ids without a post are simply absent from the result.
func (r *BlogRepository) SlugsByWatchedIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	slugs := make(map[int64]string)
	if len(ids) == 0 {
		return slugs, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf("SELECT watched_id, slug FROM blog_posts WHERE watched_id IN (%s)", placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query blog slugs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var watchedID int64
		var slug string
		if err := rows.Scan(&watchedID, &slug); err != nil {
			return nil, fmt.Errorf("scan blog slug row: %w", err)
		}
		slugs[watchedID] = slug
	}
	return slugs, rows.Err()
}
