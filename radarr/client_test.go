package radarr

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/leereilly/Cinematerial/cinematerial"
)

// mockRadarrAPI implements RadarrAPI for testing
type mockRadarrAPI struct {
	movies   []*radarr.Movie
	tags     []*starr.Tag
	movieErr error
	tagsErr  error
	pingErr  error

	// Track calls for verification
	getMovieCalls int
	getTagsCalls  int
}

func (m *mockRadarrAPI) GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error) {
	m.getMovieCalls++
	return m.movies, m.movieErr
}

func (m *mockRadarrAPI) GetTagsContext(ctx context.Context) ([]*starr.Tag, error) {
	m.getTagsCalls++
	return m.tags, m.tagsErr
}

func (m *mockRadarrAPI) Ping() error {
	return m.pingErr
}

func testLibrary() *mockRadarrAPI {
	return &mockRadarrAPI{
		movies: []*radarr.Movie{
			{ID: 1, Title: "the Matrix", Year: 1999, ImdbID: "tt0133093", TmdbID: 603, HasFile: true, Tags: []int{1}},
			{ID: 2, Title: "Alien", Year: 1979, ImdbID: "tt0078748", TmdbID: 348, Tags: []int{2}},
			{ID: 3, Title: "Unreleased", Year: 2030, ImdbID: ""},
			{ID: 4, Title: "Broken", Year: 2001, ImdbID: "nm0000206"},
			nil,
		},
		tags: []*starr.Tag{
			{ID: 1, Label: "Keep"},
			{ID: 2, Label: "kids"},
		},
	}
}

func TestClient_LibraryMovies(t *testing.T) {
	tests := []struct {
		name       string
		opts       LibraryOptions
		wantTitles []string
	}{
		{
			name:       "all movies with IMDb IDs sorted by title",
			wantTitles: []string{"Alien", "the Matrix"},
		},
		{
			name:       "tag filter is case insensitive",
			opts:       LibraryOptions{Tag: "keep"},
			wantTitles: []string{"the Matrix"},
		},
		{
			name:       "only with file",
			opts:       LibraryOptions{OnlyWithFile: true},
			wantTitles: []string{"the Matrix"},
		},
		{
			name:       "unknown tag",
			opts:       LibraryOptions{Tag: "missing"},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClientWithAPI(testLibrary(), zerolog.Nop())

			movies, err := client.LibraryMovies(context.Background(), tt.opts)
			require.NoError(t, err)

			titles := make([]string, 0, len(movies))
			for _, m := range movies {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestClient_LibraryMovies_Fields(t *testing.T) {
	client := NewClientWithAPI(testLibrary(), zerolog.Nop())

	movies, err := client.LibraryMovies(context.Background(), LibraryOptions{Tag: "KEEP"})
	require.NoError(t, err)
	require.Len(t, movies, 1)

	m := movies[0]
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, 1999, m.Year)
	assert.Equal(t, int64(603), m.TMDBID)
	assert.Equal(t, "tt0133093", m.IMDBID)
	assert.Equal(t, 133093, m.MovieID)
	assert.True(t, m.HasFile)
	assert.Equal(t, []string{"Keep"}, m.Tags)
}

func TestClient_LibraryMovies_Errors(t *testing.T) {
	api := testLibrary()
	api.movieErr = errors.New("connection refused")
	_, err := NewClientWithAPI(api, zerolog.Nop()).LibraryMovies(context.Background(), LibraryOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get movies")
	assert.Equal(t, 0, api.getTagsCalls)

	api = testLibrary()
	api.tagsErr = errors.New("unauthorized")
	_, err = NewClientWithAPI(api, zerolog.Nop()).LibraryMovies(context.Background(), LibraryOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get tags")
}

func TestClient_LibraryMovies_Empty(t *testing.T) {
	api := &mockRadarrAPI{}
	movies, err := NewClientWithAPI(api, zerolog.Nop()).LibraryMovies(context.Background(), LibraryOptions{})
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.Equal(t, 1, api.getMovieCalls)
	assert.Equal(t, 0, api.getTagsCalls)
}

func TestClient_Ping(t *testing.T) {
	api := &mockRadarrAPI{pingErr: errors.New("down")}
	assert.EqualError(t, NewClientWithAPI(api, zerolog.Nop()).Ping(), "down")
}

func TestQueries(t *testing.T) {
	queries := Queries([]LibraryMovie{{MovieID: 133093}, {MovieID: 78748}}, 150)
	assert.Equal(t, []cinematerial.Query{
		{MovieID: 133093, Width: 150},
		{MovieID: 78748, Width: 150},
	}, queries)
}
