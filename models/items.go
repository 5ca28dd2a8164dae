package models

// Content type labels stored on library items. TMDB media kinds are mapped
// onto these labels by the metadata client.
const (
	ContentTypeMovie  = "Movie"
	ContentTypeSeries = "TV Series"
)

// WatchedItem is a movie or series the user has finished, with a score and
// an optional curated rank. A non-nil TopRank moves the item from the
// watched feed into the top list.
type WatchedItem struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Comment     string   `json:"comment"`
	Score       int      `json:"score"`
	ImageURL    string   `json:"imageUrl"`
	WatchDate   string   `json:"watchDate"`
	ContentType string   `json:"contentType"` // Movie | TV Series
	Season      *int     `json:"season,omitempty"`
	Synopsis    *string  `json:"synopsis,omitempty"`
	ReleaseYear *int     `json:"releaseYear,omitempty"`
	ReleaseDate *string  `json:"releaseDate,omitempty"`
	Runtime     *int     `json:"runtime,omitempty"`
	Genres      *string  `json:"genres,omitempty"`
	TMDBID      *int64   `json:"tmdbId,omitempty"`
	TMDBRating  *float64 `json:"tmdbRating,omitempty"`
	PosterURL   *string  `json:"posterUrl,omitempty"`
	TopRank     *int     `json:"topRank,omitempty"`

	// BlogSlug decorates listings with the slug of an associated write-up.
	// It is derived at read time and never persisted.
	BlogSlug *string `json:"blogSlug,omitempty"`
}

// WantToWatchItem is a title the user intends to see, carrying an
// excitement level and the anticipated launch date.
type WantToWatchItem struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl"`
	LaunchDate  string   `json:"launchDate"`
	Excitement  int      `json:"excitement"`
	ContentType string   `json:"contentType"`
	Season      *int     `json:"season,omitempty"`
	Synopsis    *string  `json:"synopsis,omitempty"`
	ReleaseYear *int     `json:"releaseYear,omitempty"`
	Runtime     *int     `json:"runtime,omitempty"`
	Genres      *string  `json:"genres,omitempty"`
	TMDBID      *int64   `json:"tmdbId,omitempty"`
	TMDBRating  *float64 `json:"tmdbRating,omitempty"`
	PosterURL   *string  `json:"posterUrl,omitempty"`
}

// StatsSummary aggregates the two feeds for the dashboard.
type StatsSummary struct {
	WatchedCount         int     `json:"watchedCount"`
	PlannedCount         int     `json:"plannedCount"`
	WatchedAvgScore      float64 `json:"watchedAvgScore"`
	PlannedAvgExcitement float64 `json:"plannedAvgExcitement"`
}
