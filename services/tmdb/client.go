// Package tmdb is the outbound client for The Movie Database. It normalizes
// search and detail responses into the application's own shape and hides the
// upstream's two credential forms behind a single constructor.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reeltrack/models"
)

const (
	defaultAPIBaseURL   = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	// v4 read access tokens are JWTs; anything else is treated as a v3 key
	// and sent as a query parameter instead of a bearer header.
	bearerPrefix = "eyJ"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("tmdb api key is not configured")

	// ErrUnsupportedMediaType is returned for detail lookups outside
	// movie/tv. It is a caller error and is never forwarded upstream.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrUpstream wraps any network error, timeout or non-2xx status from
	// TMDB. Calls are never retried.
	ErrUpstream = errors.New("tmdb request failed")
)

// SearchResult is one lightweight row from a multi search.
type SearchResult struct {
	ID          int64   `json:"id"`
	MediaType   string  `json:"mediaType"` // movie | tv
	Title       string  `json:"title"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	PosterURL   string  `json:"posterUrl,omitempty"`
	Rating      float64 `json:"rating"`
}

// Details is a normalized detail record ready to prefill a library item.
type Details struct {
	TMDBID      int64   `json:"tmdbId"`
	Title       string  `json:"title"`
	ContentType string  `json:"contentType"`
	Synopsis    string  `json:"synopsis,omitempty"`
	ReleaseYear *int    `json:"releaseYear,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Runtime     *int    `json:"runtime,omitempty"`
	Genres      string  `json:"genres,omitempty"`
	TMDBRating  float64 `json:"tmdbRating"`
	PosterURL   string  `json:"posterUrl,omitempty"`
}

// Client handles TMDB API interactions. The credential strategy is decided
// once at construction rather than re-detected per call.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	useBearer    bool
	apiBaseURL   string
	imageBaseURL string
}

// NewClient creates a TMDB client for the given API key. An empty key yields
// a client whose calls fail with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		useBearer:    strings.HasPrefix(apiKey, bearerPrefix),
		apiBaseURL:   defaultAPIBaseURL,
		imageBaseURL: defaultImageBaseURL,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	if params == nil {
		params = url.Values{}
	}
	if !c.useBearer {
		params.Set("api_key", c.apiKey)
	}

	requestURL := c.apiBaseURL + endpoint
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.useBearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s - %s", ErrUpstream, resp.Status, strings.TrimSpace(string(respBody)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return nil
}

// Search runs a multi search and keeps only movie/tv rows, optionally
// filtered to one media type. A blank query returns an empty slice without
// calling out.
func (c *Client) Search(ctx context.Context, query, mediaType string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []SearchResult{}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var payload struct {
		Results []struct {
			ID           int64   `json:"id"`
			MediaType    string  `json:"media_type"`
			Title        string  `json:"title"`
			Name         string  `json:"name"`
			ReleaseDate  string  `json:"release_date"`
			FirstAirDate string  `json:"first_air_date"`
			Overview     string  `json:"overview"`
			PosterPath   string  `json:"poster_path"`
			VoteAverage  float64 `json:"vote_average"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/search/multi", params, &payload); err != nil {
		return nil, err
	}

	results := []SearchResult{}
	for _, item := range payload.Results {
		if item.MediaType != "movie" && item.MediaType != "tv" {
			continue
		}
		if mediaType != "" && item.MediaType != mediaType {
			continue
		}

		title := item.Title
		if title == "" {
			title = item.Name
		}
		release := item.ReleaseDate
		if release == "" {
			release = item.FirstAirDate
		}

		results = append(results, SearchResult{
			ID:          item.ID,
			MediaType:   item.MediaType,
			Title:       title,
			ReleaseDate: release,
			Year:        yearOf(release),
			Overview:    item.Overview,
			PosterURL:   c.posterURL(item.PosterPath),
			Rating:      item.VoteAverage,
		})
	}

	log.Printf("[tmdb] search %q returned %d results", query, len(results))
	return results, nil
}

// Details fetches and normalizes a single movie or tv record.
func (c *Client) Details(ctx context.Context, mediaType string, id int64) (*Details, error) {
	if mediaType != "movie" && mediaType != "tv" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
	}

	var payload struct {
		ID             int64   `json:"id"`
		Title          string  `json:"title"`
		Name           string  `json:"name"`
		ReleaseDate    string  `json:"release_date"`
		FirstAirDate   string  `json:"first_air_date"`
		Overview       string  `json:"overview"`
		Runtime        *int    `json:"runtime"`
		EpisodeRunTime []int   `json:"episode_run_time"`
		VoteAverage    float64 `json:"vote_average"`
		PosterPath     string  `json:"poster_path"`
		Genres         []struct {
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), nil, &payload); err != nil {
		return nil, err
	}

	title := payload.Title
	if title == "" {
		title = payload.Name
	}
	release := payload.ReleaseDate
	if release == "" {
		release = payload.FirstAirDate
	}

	contentType := models.ContentTypeMovie
	runtime := payload.Runtime
	if mediaType == "tv" {
		contentType = models.ContentTypeSeries
		runtime = nil
		if len(payload.EpisodeRunTime) > 0 {
			runtime = &payload.EpisodeRunTime[0]
		}
	}

	genreNames := make([]string, 0, len(payload.Genres))
	for _, g := range payload.Genres {
		genreNames = append(genreNames, g.Name)
	}

	return &Details{
		TMDBID:      payload.ID,
		Title:       title,
		ContentType: contentType,
		Synopsis:    payload.Overview,
		ReleaseYear: yearOf(release),
		ReleaseDate: release,
		Runtime:     runtime,
		Genres:      strings.Join(genreNames, ", "),
		TMDBRating:  payload.VoteAverage,
		PosterURL:   c.posterURL(payload.PosterPath),
	}, nil
}

// posterURL derives a full poster URL from the upstream's relative path, or
// an empty string when no path was given.
func (c *Client) posterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + posterPath
}

// yearOf extracts the leading year from an ISO-like date string. Malformed
// or empty input yields nil, never an error.
func yearOf(date string) *int {
	if date == "" {
		return nil
	}
	year, err := strconv.Atoi(strings.SplitN(date, "-", 2)[0])
	if err != nil {
		return nil
	}
	return &year
}
