// Package library orchestrates the watched and want-to-watch feeds: input
// validation, image ingestion and the season-normalization rule sit here,
// on top of the store repositories.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"reeltrack/internal/database"
	"reeltrack/models"
	"reeltrack/services/images"
)

var (
	// ErrImageRequired is returned when a create carries neither an image
	// URL nor an uploaded file, or an update clears the image URL.
	ErrImageRequired = errors.New("either an image url or an image file is required")

	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidScore      = errors.New("score must be between 0 and 10")
	ErrInvalidExcitement = errors.New("excitement must be between 1 and 10")
	ErrInvalidSeason     = errors.New("season must be at least 1")
)

// ImageInput carries the two mutually exclusive image sources for a create.
// The file takes precedence when both are present.
type ImageInput struct {
	URL      string
	File     io.Reader
	Filename string
}

// Service is stateless between calls; every operation is a single unit of
// work against the store. Concurrent updates to the same id are
// last-write-wins.
type Service struct {
	watched *database.WatchedRepository
	wanted  *database.WantToWatchRepository
	blog    *database.BlogRepository
	images  *images.Store
}

// NewService wires the library service to the store and the image store.
func NewService(db *database.DB, imageStore *images.Store) *Service {
	return &Service{
		watched: db.Watched,
		wanted:  db.WantToWatch,
		blog:    db.Blog,
		images:  imageStore,
	}
}

// ListWatched returns the unranked watched feed decorated with blog slugs.
func (s *Service) ListWatched(ctx context.Context) ([]models.WatchedItem, error) {
	items, err := s.watched.ListUnranked(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorateBlogSlugs(ctx, items)
}

// ListTop returns the curated top list decorated with blog slugs.
func (s *Service) ListTop(ctx context.Context) ([]models.WatchedItem, error) {
	items, err := s.watched.ListRanked(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorateBlogSlugs(ctx, items)
}

// decorateBlogSlugs attaches the slug of each item's write-up in one query.
func (s *Service) decorateBlogSlugs(ctx context.Context, items []models.WatchedItem) ([]models.WatchedItem, error) {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	slugs, err := s.blog.SlugsByWatchedIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("decorate blog slugs: %w", err)
	}
	for i := range items {
		if slug, ok := slugs[items[i].ID]; ok {
			items[i].BlogSlug = &slug
		}
	}
	return items, nil
}

// AddWatched validates and stores a new watched item, ingesting the image
// when one was uploaded.
func (s *Service) AddWatched(ctx context.Context, item *models.WatchedItem, img ImageInput) (*models.WatchedItem, error) {
	normalizeSeason(item.ContentType, &item.Season)
	if err := validateWatched(item); err != nil {
		return nil, err
	}
	if err := s.resolveImage(&item.ImageURL, &item.PosterURL, img); err != nil {
		return nil, err
	}
	if err := s.watched.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateWatched replaces the full record under the given id.
func (s *Service) UpdateWatched(ctx context.Context, id int64, item *models.WatchedItem) (*models.WatchedItem, error) {
	item.ID = id
	normalizeSeason(item.ContentType, &item.Season)
	if err := validateWatched(item); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.ImageURL) == "" {
		return nil, ErrImageRequired
	}
	if err := s.watched.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteWatched removes a watched item; its blog posts go with it via the
// store cascade.
func (s *Service) DeleteWatched(ctx context.Context, id int64) error {
	return s.watched.Delete(ctx, id)
}

// ListWanted returns the want-to-watch list.
func (s *Service) ListWanted(ctx context.Context) ([]models.WantToWatchItem, error) {
	return s.wanted.List(ctx)
}

// AddWanted validates and stores a new want-to-watch item.
func (s *Service) AddWanted(ctx context.Context, item *models.WantToWatchItem, img ImageInput) (*models.WantToWatchItem, error) {
	normalizeSeason(item.ContentType, &item.Season)
	if err := validateWanted(item); err != nil {
		return nil, err
	}
	if err := s.resolveImage(&item.ImageURL, &item.PosterURL, img); err != nil {
		return nil, err
	}
	if err := s.wanted.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateWanted replaces the full record under the given id.
func (s *Service) UpdateWanted(ctx context.Context, id int64, item *models.WantToWatchItem) (*models.WantToWatchItem, error) {
	item.ID = id
	normalizeSeason(item.ContentType, &item.Season)
	if err := validateWanted(item); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.ImageURL) == "" {
		return nil, ErrImageRequired
	}
	if err := s.wanted.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteWanted removes a want-to-watch item.
func (s *Service) DeleteWanted(ctx context.Context, id int64) error {
	return s.wanted.Delete(ctx, id)
}

// Stats aggregates both feeds for the dashboard. Averages are rounded to
// one decimal for display; consumers needing exact values must compute
// their own from the listings.
func (s *Service) Stats(ctx context.Context) (*models.StatsSummary, error) {
	watchedCount, avgScore, err := s.watched.Stats(ctx)
	if err != nil {
		return nil, err
	}
	plannedCount, avgExcitement, err := s.wanted.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &models.StatsSummary{
		WatchedCount:         watchedCount,
		PlannedCount:         plannedCount,
		WatchedAvgScore:      round1(avgScore),
		PlannedAvgExcitement: round1(avgExcitement),
	}, nil
}

// resolveImage enforces the image-required rule and fills in the image and
// poster URLs. An uploaded file wins over a URL; its stored location also
// becomes the poster unless one was explicitly given.
func (s *Service) resolveImage(imageURL *string, posterURL **string, img ImageInput) error {
	directURL := strings.TrimSpace(img.URL)
	if img.File == nil && directURL == "" {
		return ErrImageRequired
	}

	if img.File != nil {
		stored, err := s.images.SaveUpload(img.File, img.Filename)
		if err != nil {
			return err
		}
		*imageURL = stored
		if *posterURL == nil || **posterURL == "" {
			*posterURL = &stored
		}
		return nil
	}

	*imageURL = directURL
	if *posterURL == nil || **posterURL == "" {
		*posterURL = &directURL
	}
	return nil
}

// normalizeSeason forces season to nil whenever the content type is not a
// series, regardless of caller input. Applied before validation on both
// create and update.
func normalizeSeason(contentType string, season **int) {
	if contentType != models.ContentTypeSeries {
		*season = nil
	}
}

func validateWatched(item *models.WatchedItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ErrTitleRequired
	}
	if item.Score < 0 || item.Score > 10 {
		return ErrInvalidScore
	}
	if item.Season != nil && *item.Season < 1 {
		return ErrInvalidSeason
	}
	return nil
}

func validateWanted(item *models.WantToWatchItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ErrTitleRequired
	}
	if item.Excitement < 1 || item.Excitement > 10 {
		return ErrInvalidExcitement
	}
	if item.Season != nil && *item.Season < 1 {
		return ErrInvalidSeason
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
