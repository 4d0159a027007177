package cinematerial

import (
	"context"
)

// API defines the interface for CineMaterial operations
type API interface {
	// Search looks up the posters of a movie
	Search(ctx context.Context, q Query) (*Result, error)

	// RequestFor builds the signed request without sending it
	RequestFor(q Query) (*Request, error)
}

var _ API = (*Client)(nil)
