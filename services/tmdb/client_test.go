package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(apiKey string, handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(apiKey)
	c.apiBaseURL = srv.URL
	return c, srv
}

func TestSearchBlankQuerySkipsUpstream(t *testing.T) {
	called := false
	c, srv := testClient("key123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	results, err := c.Search(context.Background(), "   ", "")
	require.NoError(t, err)
	require.Empty(t, results)
	require.False(t, called, "blank query must not call upstream")
}

func TestSearchNormalizesResults(t *testing.T) {
	c, srv := testClient("key123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/multi", r.URL.Path)
		require.Equal(t, "heat", r.URL.Query().Get("query"))
		w.Write([]byte(`{"results":[
			{"id":1,"media_type":"movie","title":"Heat","release_date":"1995-12-15","overview":"Cops.","poster_path":"/heat.jpg","vote_average":8.3},
			{"id":2,"media_type":"tv","name":"Heat TV","first_air_date":"2004-01-10","vote_average":7.0},
			{"id":3,"media_type":"person","name":"Somebody"}
		]}`))
	}))
	defer srv.Close()

	results, err := c.Search(context.Background(), "heat", "")
	require.NoError(t, err)
	require.Len(t, results, 2, "person rows are dropped")

	movie := results[0]
	require.Equal(t, "Heat", movie.Title)
	require.NotNil(t, movie.Year)
	require.Equal(t, 1995, *movie.Year)
	require.Equal(t, defaultImageBaseURL+"/heat.jpg", movie.PosterURL)
	require.InDelta(t, 8.3, movie.Rating, 0.001)

	show := results[1]
	require.Equal(t, "Heat TV", show.Title, "name is the fallback title field")
	require.Equal(t, "2004-01-10", show.ReleaseDate)
	require.Empty(t, show.PosterURL, "missing poster path yields no URL")
}

func TestSearchMediaTypeFilter(t *testing.T) {
	c, srv := testClient("key123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"id":1,"media_type":"movie","title":"Heat"},
			{"id":2,"media_type":"tv","name":"Heat TV"}
		]}`))
	}))
	defer srv.Close()

	results, err := c.Search(context.Background(), "heat", "tv")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "tv", results[0].MediaType)
}

func TestDetailsMovieRuntimeAndGenres(t *testing.T) {
	c, srv := testClient("key123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"title":"Heat","release_date":"1995-12-15","runtime":120,"genres":[{"name":"Drama"}],"vote_average":8.3}`))
	}))
	defer srv.Close()

	details, err := c.Details(context.Background(), "movie", 42)
	require.NoError(t, err)
	require.Equal(t, "Movie", details.ContentType)
	require.NotNil(t, details.Runtime)
	require.Equal(t, 120, *details.Runtime)
	require.Equal(t, "Drama", details.Genres)
	require.NotNil(t, details.ReleaseYear)
	require.Equal(t, 1995, *details.ReleaseYear)
}

func TestDetailsSeriesEpisodeRuntime(t *testing.T) {
	c, srv := testClient("key123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tv/7", r.URL.Path)
		w.Write([]byte(`{"id":7,"name":"The Wire","first_air_date":"2002-06-02","episode_run_time":[45,42],"genres":[{"name":"Crime"},{"name":"Drama"}]}`))
	}))
	defer srv.Close()

	details, err := c.Details(context.Background(), "tv", 7)
	require.NoError(t, err)
	require.Equal(t, "TV Series", details.ContentType)
	require.Equal(t, "The Wire", details.Title)
	require.NotNil(t, details.Runtime)
	require.Equal(t, 45, *details.Runtime, "first episode runtime wins")
	require.Equal(t, "Crime, Drama", details.Genres)
}

func TestDetailsUnsupportedMediaType(t *testing.T) {
	c := NewClient("key123")
	_, err := c.Details(context.Background(), "book", 1)
	require.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestBearerTokenGoesIntoHeader(t *testing.T) {
	c, srv := testClient("eyJtoken", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer eyJtoken", r.Header.Get("Authorization"))
		require.Empty(t, r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := c.Search(context.Background(), "heat", "")
	require.NoError(t, err)
}

func TestPlainKeyGoesIntoQuery(t *testing.T) {
	c, srv := testClient("key123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		require.Equal(t, "key123", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := c.Search(context.Background(), "heat", "")
	require.NoError(t, err)
}

func TestUpstreamFailureIsWrapped(t *testing.T) {
	c, srv := testClient("key123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.Search(context.Background(), "heat", "")
	require.ErrorIs(t, err, ErrUpstream)
	require.Contains(t, err.Error(), "upstream broke")
}

func TestMissingKeyIsNotConfigured(t *testing.T) {
	c := NewClient("")
	_, err := c.Search(context.Background(), "heat", "")
	require.True(t, errors.Is(err, ErrNotConfigured))

	// The short-circuit still applies before the key check.
	results, err := c.Search(context.Background(), "", "")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestYearOfMalformedDates(t *testing.T) {
	require.Nil(t, yearOf(""))
	require.Nil(t, yearOf("not-a-year"))
	y := yearOf("2004-01-10")
	require.NotNil(t, y)
	require.Equal(t, 2004, *y)
}
