package cinematerial

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	t.Run("renders the endpoint template", func(t *testing.T) {
		req, err := BuildRequest(DefaultBaseURL, 133093, "my-key", "ttAbC./123xyz", 150)
		require.NoError(t, err)

		assert.Equal(t,
			"http://api.cinematerial.com/1/request.json?imdb_id=tt133093&key=my-key&secret=ttAbC.%2F123xyz&width=150",
			req.URL())
		assert.Equal(t, req.URL(), req.String())
		assert.Equal(t, "tt133093", req.IMDbID())
	})

	t.Run("renders the movie ID without zero padding", func(t *testing.T) {
		req, err := BuildRequest(DefaultBaseURL, 234567, "k", "s", 300)
		require.NoError(t, err)
		assert.Contains(t, req.URL(), "imdb_id=tt234567&")
		assert.NotContains(t, req.URL(), "tt0234567")
		assert.Equal(t, "tt234567", req.Params().Get("imdb_id"))
	})

	t.Run("escapes API key", func(t *testing.T) {
		req, err := BuildRequest(DefaultBaseURL, 1, "a&b=c", "ttsig", 30)
		require.NoError(t, err)
		assert.Contains(t, req.URL(), "key=a%26b%3Dc")
	})

	t.Run("appends to a base URL with a query", func(t *testing.T) {
		req, err := BuildRequest("http://localhost/request.json?debug=1", 1, "k", "s", 30)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(req.URL(), "http://localhost/request.json?debug=1&imdb_id=tt1&"))
	})

	tests := []struct {
		name    string
		baseURL string
		movieID int
		apiKey  string
		sig     string
		width   int
		wantErr error
	}{
		{name: "width lower bound", baseURL: DefaultBaseURL, movieID: 1, apiKey: "k", sig: "s", width: 30},
		{name: "width upper bound", baseURL: DefaultBaseURL, movieID: 1, apiKey: "k", sig: "s", width: 300},
		{name: "width below range", baseURL: DefaultBaseURL, movieID: 1, apiKey: "k", sig: "s", width: 29, wantErr: ErrOutOfRange},
		{name: "width above range", baseURL: DefaultBaseURL, movieID: 1, apiKey: "k", sig: "s", width: 301, wantErr: ErrOutOfRange},
		{name: "zero movie ID", baseURL: DefaultBaseURL, movieID: 0, apiKey: "k", sig: "s", width: 300, wantErr: ErrOutOfRange},
		{name: "missing key", baseURL: DefaultBaseURL, movieID: 1, sig: "s", width: 300, wantErr: ErrNullInput},
		{name: "missing signature", baseURL: DefaultBaseURL, movieID: 1, apiKey: "k", width: 300, wantErr: ErrNullInput},
		{name: "missing base URL", movieID: 1, apiKey: "k", sig: "s", width: 300, wantErr: ErrNullInput},
		{name: "null checks come first", baseURL: DefaultBaseURL, movieID: -1, width: 0, wantErr: ErrNullInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := BuildRequest(tt.baseURL, tt.movieID, tt.apiKey, tt.sig, tt.width)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, req.ImageWidth)
		})
	}
}

func TestRequest_HTTPRequest(t *testing.T) {
	req, err := BuildRequest(DefaultBaseURL, 133093, "key", "ttsig", 300)
	require.NoError(t, err)

	httpReq, err := req.HTTPRequest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, httpReq.Method)
	assert.Equal(t, "application/json", httpReq.Header.Get("Accept"))
	assert.Equal(t, "tt133093", httpReq.URL.Query().Get("imdb_id"))
	assert.Equal(t, "300", httpReq.URL.Query().Get("width"))
}

func TestRequest_CurlCommand(t *testing.T) {
	req, err := BuildRequest(DefaultBaseURL, 133093, "key", "ttsig", 300)
	require.NoError(t, err)

	cmd, err := req.CurlCommand()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cmd, "curl"))
	assert.Contains(t, cmd, req.URL())
}
