package blog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"reeltrack/internal/database"
	"reeltrack/models"
	"reeltrack/services/blog"
)

func newTestService(t *testing.T) (*blog.Service, *database.DB) {
	t.Helper()
	db, err := database.NewDB(database.Config{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return blog.NewService(db), db
}

func insertWatched(t *testing.T, db *database.DB, title string) *models.WatchedItem {
	t.Helper()
	item := &models.WatchedItem{
		Title:       title,
		Score:       8,
		ImageURL:    "/static/images/x.jpg",
		WatchDate:   "2026-01-15",
		ContentType: models.ContentTypeMovie,
	}
	if err := db.Watched.Insert(context.Background(), item); err != nil {
		t.Fatalf("insert watched: %v", err)
	}
	return item
}

func TestCreateNormalizesSlugAndStampsCreatedAt(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	watched := insertWatched(t, db, "Heat")

	post := &models.BlogPost{
		WatchedID: watched.ID,
		Title:     "Heat, revisited",
		Slug:      "  Heat, Revisited!!  ",
		Body:      "Still the best diner scene.",
		CreatedAt: "2000-01-01T00:00:00Z",
	}
	saved, err := svc.Create(ctx, post)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if saved.Slug != "heat-revisited" {
		t.Fatalf("expected normalized slug, got %q", saved.Slug)
	}
	if saved.CreatedAt == "2000-01-01T00:00:00Z" {
		t.Fatalf("client-supplied created_at must be ignored")
	}
	stamp, err := time.Parse(time.RFC3339, saved.CreatedAt)
	if err != nil {
		t.Fatalf("created_at is not RFC3339: %q", saved.CreatedAt)
	}
	if time.Since(stamp) > time.Minute {
		t.Fatalf("created_at not server-assigned: %q", saved.CreatedAt)
	}
}

func TestCreateRejectsEmptySlug(t *testing.T) {
	svc, db := newTestService(t)
	watched := insertWatched(t, db, "Heat")

	post := &models.BlogPost{WatchedID: watched.ID, Title: "Heat", Slug: "!!!", Body: "..."}
	if _, err := svc.Create(context.Background(), post); !errors.Is(err, blog.ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestCreateRequiresExistingWatchedItem(t *testing.T) {
	svc, _ := newTestService(t)

	post := &models.BlogPost{WatchedID: 9999, Title: "Ghost", Slug: "ghost", Body: "..."}
	if _, err := svc.Create(context.Background(), post); !errors.Is(err, blog.ErrWatchedNotFound) {
		t.Fatalf("expected ErrWatchedNotFound, got %v", err)
	}
}

func TestCreateSlugConflict(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	watched := insertWatched(t, db, "Heat")

	first := &models.BlogPost{WatchedID: watched.ID, Title: "Heat", Slug: "heat", Body: "v1"}
	if _, err := svc.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Different raw slug, same normalized form.
	dup := &models.BlogPost{WatchedID: watched.ID, Title: "Heat again", Slug: "HEAT!", Body: "v2"}
	if _, err := svc.Create(ctx, dup); !errors.Is(err, database.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	posts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("conflicting create must not add a post, got %d", len(posts))
	}
}

func TestUpdateKeepsCreatedAtAndRenormalizesSlug(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	watched := insertWatched(t, db, "Heat")

	saved, err := svc.Create(ctx, &models.BlogPost{WatchedID: watched.ID, Title: "Heat", Slug: "heat", Body: "v1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	original := saved.CreatedAt

	edit := &models.BlogPost{
		WatchedID: watched.ID,
		Title:     "Heat, revisited",
		Slug:      "Heat Revisited",
		Body:      "v2",
		CreatedAt: "2030-01-01T00:00:00Z",
	}
	updated, err := svc.Update(ctx, saved.ID, edit)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != saved.ID {
		t.Fatalf("path id must win, got %d", updated.ID)
	}
	if updated.Slug != "heat-revisited" {
		t.Fatalf("expected renormalized slug, got %q", updated.Slug)
	}
	if updated.CreatedAt != original {
		t.Fatalf("created_at must be immutable: got %q, want %q", updated.CreatedAt, original)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc, db := newTestService(t)
	watched := insertWatched(t, db, "Heat")

	edit := &models.BlogPost{WatchedID: watched.ID, Title: "Ghost", Slug: "ghost", Body: "..."}
	if _, err := svc.Update(context.Background(), 9999, edit); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRequiresExistingWatchedItem(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	watched := insertWatched(t, db, "Heat")

	saved, err := svc.Create(ctx, &models.BlogPost{WatchedID: watched.ID, Title: "Heat", Slug: "heat", Body: "v1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-pointing the post at a missing watched item is a caller error, not
	// a raw constraint failure.
	edit := &models.BlogPost{WatchedID: 9999, Title: "Heat", Slug: "heat", Body: "v2"}
	if _, err := svc.Update(ctx, saved.ID, edit); !errors.Is(err, blog.ErrWatchedNotFound) {
		t.Fatalf("expected ErrWatchedNotFound, got %v", err)
	}

	// The stored post is untouched.
	detail, err := svc.GetBySlug(ctx, "heat")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if detail.Body != "v1" || detail.WatchedID != watched.ID {
		t.Fatalf("rejected update must not change the post, got %+v", detail)
	}
}

func TestListCarriesWatchedDisplayFields(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	watched := insertWatched(t, db, "Heat")
	if _, err := svc.Create(ctx, &models.BlogPost{WatchedID: watched.ID, Title: "Heat", Slug: "heat", Body: "..."}); err != nil {
		t.Fatalf("create: %v", err)
	}

	posts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected one post, got %d", len(posts))
	}
	if posts[0].Score != 8 || posts[0].ImageURL != "/static/images/x.jpg" {
		t.Fatalf("expected joined watched fields, got %+v", posts[0])
	}

	detail, err := svc.GetBySlug(ctx, "heat")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if detail.MovieTitle != "Heat" || detail.WatchDate != "2026-01-15" {
		t.Fatalf("expected joined detail fields, got %+v", detail)
	}

	if _, err := svc.GetBySlug(ctx, "missing"); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown slug, got %v", err)
	}
}

func TestDeleteRemovesPost(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	watched := insertWatched(t, db, "Heat")

	saved, err := svc.Create(ctx, &models.BlogPost{WatchedID: watched.ID, Title: "Heat", Slug: "heat", Body: "..."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
