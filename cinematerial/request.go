package cinematerial

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"moul.io/http2curl"
)

const (
	// DefaultBaseURL is the poster lookup endpoint
	DefaultBaseURL = "http://api.cinematerial.com/1/request.json"

	// MinImageWidth is the smallest poster width the API serves
	MinImageWidth = 30
	// MaxImageWidth is the largest poster width the API serves
	MaxImageWidth = 300
	// DefaultImageWidth is used when a Query leaves Width unset. It mirrors the
	// current product default and may change.
	DefaultImageWidth = MaxImageWidth
)

// Request is a fully resolved, signed API request
type Request struct {
	BaseURL    string
	MovieID    int
	APIKey     string
	Signature  string
	ImageWidth int
}

// BuildRequest validates its inputs and assembles a signed request. It performs
// no network I/O.
func BuildRequest(baseURL string, movieID int, apiKey, signature string, imageWidth int) (*Request, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, nullInput("baseURL", "base URL is required")
	}
	if apiKey == "" {
		return nil, nullInput("apiKey", "API key is required")
	}
	if signature == "" {
		return nil, nullInput("signature", "signature is required")
	}
	if err := checkMovieID(movieID); err != nil {
		return nil, err
	}
	if err := checkImageWidth(imageWidth); err != nil {
		return nil, err
	}

	return &Request{
		BaseURL:    baseURL,
		MovieID:    movieID,
		APIKey:     apiKey,
		Signature:  signature,
		ImageWidth: imageWidth,
	}, nil
}

func checkImageWidth(width int) error {
	if width < MinImageWidth || width > MaxImageWidth {
		return outOfRange("imageWidth", width,
			fmt.Sprintf("must be within the [%d-%d] range", MinImageWidth, MaxImageWidth))
	}
	return nil
}

// IMDbID returns the movie reference as sent to the API
func (r *Request) IMDbID() string {
	return FormatIMDbID(r.MovieID)
}

// Params returns the query parameters of the request
func (r *Request) Params() url.Values {
	return url.Values{
		"imdb_id": {r.IMDbID()},
		"key":     {r.APIKey},
		"secret":  {r.Signature},
		"width":   {strconv.Itoa(r.ImageWidth)},
	}
}

// URL renders the request as
// <base>?imdb_id=tt<id>&key=<key>&secret=<signature>&width=<width>.
func (r *Request) URL() string {
	sep := "?"
	if strings.Contains(r.BaseURL, "?") {
		sep = "&"
	}
	// url.Values.Encode sorts keys, which happens to be the documented order.
	return r.BaseURL + sep + r.Params().Encode()
}

// String implements fmt.Stringer
func (r *Request) String() string {
	return r.URL()
}

// HTTPRequest builds the GET request sent by HTTPFetcher
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// CurlCommand renders the request as an equivalent curl command line
func (r *Request) CurlCommand() (string, error) {
	req, err := r.HTTPRequest(context.Background())
	if err != nil {
		return "", err
	}
	cmd, err := http2curl.GetCurlCommand(req)
	if err != nil {
		return "", fmt.Errorf("failed to render curl command: %w", err)
	}
	return cmd.String(), nil
}
