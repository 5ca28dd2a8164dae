// Package blog manages write-ups attached to watched items: slug
// normalization and uniqueness, referential checks and the immutable
// creation timestamp.
package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reeltrack/internal/database"
	"reeltrack/models"
	"reeltrack/utils/slug"
)

var (
	// ErrInvalidSlug is returned when a slug normalizes to nothing.
	ErrInvalidSlug = errors.New("slug must contain at least one letter or number")

	// ErrWatchedNotFound is returned when a post references a watched item
	// that does not exist. It is a caller error on the post, not a 404.
	ErrWatchedNotFound = errors.New("watched item not found")
)

// Service is stateless between calls.
type Service struct {
	posts   *database.BlogRepository
	watched *database.WatchedRepository
}

// NewService wires the blog service to the store.
func NewService(db *database.DB) *Service {
	return &Service{
		posts:   db.Blog,
		watched: db.Watched,
	}
}

// List returns all posts with joined watched-item display fields.
func (s *Service) List(ctx context.Context) ([]models.BlogPostSummary, error) {
	return s.posts.List(ctx)
}

// GetBySlug returns a single post with full watched-item metadata.
func (s *Service) GetBySlug(ctx context.Context, rawSlug string) (*models.BlogPostDetail, error) {
	return s.posts.GetBySlug(ctx, rawSlug)
}

// Create normalizes the slug, verifies the referenced watched item exists
// and stores the post with a server-assigned creation timestamp. A slug
// collision surfaces as database.ErrSlugExists.
func (s *Service) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	post.Slug = slug.Normalize(post.Slug)
	if post.Slug == "" {
		return nil, ErrInvalidSlug
	}

	exists, err := s.watched.Exists(ctx, post.WatchedID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", ErrWatchedNotFound, post.WatchedID)
	}

	post.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update replaces a post under the given id. The creation timestamp is
// immutable and kept as stored, and the post may be re-pointed only at a
// watched item that exists.
func (s *Service) Update(ctx context.Context, id int64, post *models.BlogPost) (*models.BlogPost, error) {
	post.ID = id
	post.Slug = slug.Normalize(post.Slug)
	if post.Slug == "" {
		return nil, ErrInvalidSlug
	}

	exists, err := s.watched.Exists(ctx, post.WatchedID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", ErrWatchedNotFound, post.WatchedID)
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}
