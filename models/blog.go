package models

// BlogPost is a write-up attached to a watched item. CreatedAt is assigned
// by the server on creation and never changes afterwards.
type BlogPost struct {
	ID        int64  `json:"id"`
	WatchedID int64  `json:"watchedId"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// BlogPostSummary is a post joined with display fields from its watched
// item, as returned by the blog listing.
type BlogPostSummary struct {
	BlogPost
	PosterURL   *string  `json:"posterUrl,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Score       int      `json:"score"`
	ReleaseYear *int     `json:"releaseYear,omitempty"`
	Genres      *string  `json:"genres,omitempty"`
	TMDBRating  *float64 `json:"tmdbRating,omitempty"`
	ContentType string   `json:"contentType"`
}

// BlogPostDetail is a single post with the full metadata of its watched
// item, as returned by the per-slug lookup.
type BlogPostDetail struct {
	BlogPost
	MovieTitle  string   `json:"movieTitle"`
	ImageURL    string   `json:"imageUrl"`
	Score       int      `json:"score"`
	WatchDate   string   `json:"watchDate"`
	ContentType string   `json:"contentType"`
	Season      *int     `json:"season,omitempty"`
	Synopsis    *string  `json:"synopsis,omitempty"`
	ReleaseYear *int     `json:"releaseYear,omitempty"`
	Runtime     *int     `json:"runtime,omitempty"`
	Genres      *string  `json:"genres,omitempty"`
	TMDBRating  *float64 `json:"tmdbRating,omitempty"`
	PosterURL   *string  `json:"posterUrl,omitempty"`
}
