package cinematerial

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Fetcher performs the network call for a signed request and returns the raw
// response body. Errors are handed back to the caller of Client.Search as is.
type Fetcher interface {
	Fetch(ctx context.Context, req *Request) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, req *Request) ([]byte, error)

// Fetch calls f(ctx, req)
func (f FetcherFunc) Fetch(ctx context.Context, req *Request) ([]byte, error) {
	return f(ctx, req)
}

// HTTPFetcher fetches requests over HTTP
type HTTPFetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewHTTPFetcher creates a fetcher backed by httpClient
func NewHTTPFetcher(httpClient *http.Client, userAgent string, logger zerolog.Logger) *HTTPFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPFetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Fetch performs a GET for req. Non-2xx replies are returned as *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, req *Request) ([]byte, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		httpReq.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	f.logger.Debug().
		Str("imdb_id", req.IMDbID()).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Received CineMaterial response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	return body, nil
}
