package radarr

import (
	"context"

	"golift.io/starr"
	"golift.io/starr/radarr"
)

// RadarrAPI is the subset of the starr Radarr client used to read the library
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	GetTagsContext(ctx context.Context) ([]*starr.Tag, error)
	Ping() error
}
