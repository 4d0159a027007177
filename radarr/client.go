package radarr

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/leereilly/Cinematerial/cinematerial"
)

// Client reads the movie library of a Radarr instance
type Client struct {
	api    RadarrAPI
	logger zerolog.Logger
}

// LibraryMovie is a Radarr movie that can be looked up on CineMaterial
type LibraryMovie struct {
	ID      int64
	Title   string
	Year    int
	TMDBID  int64
	IMDBID  string
	MovieID int
	HasFile bool
	Tags    []string
}

// LibraryOptions narrows the movies returned by LibraryMovies
type LibraryOptions struct {
	// Tag keeps only movies carrying this tag label (case-insensitive)
	Tag string
	// OnlyWithFile skips movies that have not been downloaded yet
	OnlyWithFile bool
}

// NewClient creates a new Radarr client and checks the connection
func NewClient(url, apiKey string, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, 30*time.Second)
	radarrClient := radarr.New(config)

	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(radarrClient, logger), nil
}

// NewClientWithAPI creates a client around an existing API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger,
	}
}

// Ping checks that Radarr is reachable
func (c *Client) Ping() error {
	return c.api.Ping()
}

// LibraryMovies returns the library movies that have a usable IMDb ID,
// sorted by title.
func (c *Client) LibraryMovies(ctx context.Context, opts LibraryOptions) ([]LibraryMovie, error) {
	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	tagNames := map[int]string{}
	if len(movies) > 0 {
		tags, err := c.api.GetTagsContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tags: %w", err)
		}
		for _, tag := range tags {
			tagNames[tag.ID] = tag.Label
		}
	}

	library := make([]LibraryMovie, 0, len(movies))
	var skipped int
	for _, movie := range movies {
		if movie == nil {
			continue
		}

		info := toLibraryMovie(movie, tagNames)
		if info.MovieID == 0 {
			skipped++
			c.logger.Debug().Str("title", movie.Title).Str("imdb_id", movie.ImdbID).
				Msg("Skipping movie without a valid IMDb ID")
			continue
		}
		if opts.OnlyWithFile && !info.HasFile {
			continue
		}
		if opts.Tag != "" && !slices.ContainsFunc(info.Tags, func(t string) bool {
			return strings.EqualFold(t, opts.Tag)
		}) {
			continue
		}
		library = append(library, info)
	}

	slices.SortStableFunc(library, func(a, b LibraryMovie) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})

	c.logger.Debug().Int("total", len(movies)).Int("selected", len(library)).Int("skipped", skipped).
		Msg("Retrieved movies from Radarr")
	return library, nil
}

// Queries turns library movies into CineMaterial lookups at the given width
func Queries(movies []LibraryMovie, width int) []cinematerial.Query {
	queries := make([]cinematerial.Query, len(movies))
	for i, m := range movies {
		queries[i] = cinematerial.Query{MovieID: m.MovieID, Width: width}
	}
	return queries
}

func toLibraryMovie(movie *radarr.Movie, tagNames map[int]string) LibraryMovie {
	info := LibraryMovie{
		ID:      movie.ID,
		Title:   movie.Title,
		Year:    movie.Year,
		TMDBID:  movie.TmdbID,
		IMDBID:  movie.ImdbID,
		HasFile: movie.HasFile,
		Tags:    make([]string, 0, len(movie.Tags)),
	}

	if id, err := cinematerial.ParseIMDbID(movie.ImdbID); err == nil {
		info.MovieID = id
	}

	for _, tagID := range movie.Tags {
		if name, ok := tagNames[tagID]; ok {
			info.Tags = append(info.Tags, name)
		}
	}

	return info
}
