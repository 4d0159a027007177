package cinematerial

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Client is a CineMaterial API client. It holds only read-only configuration
// and is safe for concurrent use.
type Client struct {
	apiKey    string
	apiSecret string
	baseURL   string
	fetcher   Fetcher
	logger    zerolog.Logger
}

// Query selects a movie either by IMDb movie ID or by IMDb movie URL. Width
// defaults to DefaultImageWidth when zero.
type Query struct {
	MovieID int
	URL     string
	Width   int
}

// Label names the movie a query selects, for display
func (q Query) Label() string {
	if q.URL != "" {
		return q.URL
	}
	return FormatIMDbID(q.MovieID)
}

// NewClient creates a new CineMaterial client
func NewClient(apiKey, apiSecret string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &ArgumentError{Argument: "apiKey", Reason: "API key is required", Kind: ErrInvalidCredentials}
	}
	if apiSecret == "" {
		return nil, &ArgumentError{Argument: "apiSecret", Reason: "API secret is required", Kind: ErrInvalidCredentials}
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	fetcher := options.fetcher
	if fetcher == nil {
		httpClient := options.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: options.timeout}
		}
		fetcher = NewHTTPFetcher(httpClient, options.userAgent, logger)
	}

	return &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   options.baseURL,
		fetcher:   fetcher,
		logger:    logger,
	}, nil
}

// Search looks up the posters of the movie selected by q
func (c *Client) Search(ctx context.Context, q Query) (*Result, error) {
	req, err := c.RequestFor(q)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// SearchByID looks up the posters of an IMDb movie ID
func (c *Client) SearchByID(ctx context.Context, movieID, imageWidth int) (*Result, error) {
	req, err := c.RequestForID(movieID, imageWidth)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// SearchByURL looks up the posters of an IMDb movie URL
func (c *Client) SearchByURL(ctx context.Context, rawURL string, imageWidth int) (*Result, error) {
	req, err := c.RequestForURL(rawURL, imageWidth)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// RequestFor validates q and returns the signed request Search would send
func (c *Client) RequestFor(q Query) (*Request, error) {
	hasID := q.MovieID != 0
	hasURL := strings.TrimSpace(q.URL) != ""

	switch {
	case !hasID && !hasURL:
		return nil, nullInput("movieIdOrUrl", "either an IMDb movie ID or an IMDb movie URL must be specified")
	case hasID && hasURL:
		return nil, invalidFormat("movieIdOrUrl", nil, "specify an IMDb movie ID or an IMDb movie URL, not both")
	}

	width := q.Width
	if width == 0 {
		width = DefaultImageWidth
	}

	if hasURL {
		return c.RequestForURL(q.URL, width)
	}
	return c.RequestForID(q.MovieID, width)
}

// RequestForURL returns the signed request for an IMDb movie URL
func (c *Client) RequestForURL(rawURL string, imageWidth int) (*Request, error) {
	movieID, err := ExtractMovieID(rawURL)
	if err != nil {
		return nil, err
	}
	if err := checkImageWidth(imageWidth); err != nil {
		return nil, err
	}
	return c.RequestForID(movieID, imageWidth)
}

// RequestForID returns the signed request for an IMDb movie ID
func (c *Client) RequestForID(movieID, imageWidth int) (*Request, error) {
	if err := checkMovieID(movieID); err != nil {
		return nil, err
	}
	if err := checkImageWidth(imageWidth); err != nil {
		return nil, err
	}

	signature, err := DeriveSignature(movieID, c.apiSecret)
	if err != nil {
		return nil, err
	}
	return BuildRequest(c.baseURL, movieID, c.apiKey, signature, imageWidth)
}

func (c *Client) do(ctx context.Context, req *Request) (*Result, error) {
	c.logger.Debug().
		Str("imdb_id", req.IMDbID()).
		Int("width", req.ImageWidth).
		Msg("Searching CineMaterial")

	body, err := c.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := ParseResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("imdb_id", req.IMDbID()).
		Str("title", result.Title).
		Int("posters", len(result.Posters)).
		Msg("Parsed CineMaterial response")

	return result, nil
}
