package cinematerial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validMovieURLs = []struct {
	url string
	id  int
}{
	{"http://www.imdb.com/title/tt1234567", 1234567},
	{"http://www.imdb.com/title/tt0234567", 234567},
	{"http://www.imdb.com/title/tt1234567/", 1234567},
	{"http://www.imdb.com/title/tt0234567/", 234567},
	{"http://www.imdb.com/title/tt1234567/reference", 1234567},
	{"http://www.imdb.com/title/tt0234567/reference", 234567},
	{"http://www.imdb.com/title/tt1375666/?ref_=nv_sr_1", 1375666},
	{"http://www.imdb.com/title/tt0234567/?ref_=nv_sr_1", 234567},
	{"https://m.imdb.com/title/tt0133093/", 133093},
	{"https://imdb.com/title/tt0133093", 133093},
	{"HTTP://WWW.IMDB.COM/title/tt0133093", 133093},
	{"http://www.imdb.com:80/title/tt0133093/#plot", 133093},
}

var nonMovieURLs = []string{
	"http://www.imdb.com/",
	"http://www.imdb.com/list/PQDCzc8WwVQ/",
	"http://www.imdb.com/search/title?genres=drama&title_type=feature&num_votes=5000,&sort=user_rating,desc",
	"http://www.imdb.com/search/title?release_date=1990,1999&title_type=feature&num_votes=5000,&sort=user_rating,desc",
	"http://www.imdb.com/chart/top/",
	"http://www.imdb.com/boxoffice/alltimegross?region=world-wide",
	"http://www.imdb.com/user/ur3342822/ratings",
	"http://www.google.com",
	"http://www.notimdb.com/title/tt1234567/",
	"http://www.imdb.com.example.org/title/tt1234567/",
	"http://example.org/www.imdb.com/title/tt1234567/",
	"http://example.org/?next=http://www.imdb.com/title/tt1234567/",
	"ftp://www.imdb.com/title/tt1234567/",
	"www.imdb.com/title/tt1234567/",
	"http://www.imdb.com/Title/tt1234567/",
	"http://www.imdb.com/title/TT1234567/",
}

var incompleteMovieURLs = []string{
	"http://www.imdb.com/title/tt123456/",
	"http://www.imdb.com/title/tt12345678/",
	"http://www.imdb.com/title/tt1234567x/",
	"http://www.imdb.com/title/tt1/",
	"http://www.imdb.com/title/tt/",
	"http://www.imdb.com/title/",
	"http://www.imdb.com/title",
}

func TestIsMovieURL(t *testing.T) {
	for _, tt := range validMovieURLs {
		t.Run(tt.url, func(t *testing.T) {
			assert.True(t, IsMovieURL(tt.url))
		})
	}

	for _, u := range append(append([]string{}, nonMovieURLs...), incompleteMovieURLs...) {
		t.Run(u, func(t *testing.T) {
			assert.False(t, IsMovieURL(u))
		})
	}

	t.Run("empty", func(t *testing.T) {
		assert.False(t, IsMovieURL(""))
	})
}

func TestExtractMovieID(t *testing.T) {
	for _, tt := range validMovieURLs {
		t.Run(tt.url, func(t *testing.T) {
			id, err := ExtractMovieID(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
		})
	}

	for _, u := range append(append([]string{}, nonMovieURLs...), incompleteMovieURLs...) {
		t.Run(u, func(t *testing.T) {
			_, err := ExtractMovieID(u)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}

	t.Run("empty URL", func(t *testing.T) {
		_, err := ExtractMovieID("")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNullInput)

		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "imdbMovieUrl", argErr.Argument)
	})

	t.Run("all zero ID", func(t *testing.T) {
		_, err := ExtractMovieID("http://www.imdb.com/title/tt0000000/")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestParseIMDbID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{input: "tt0133093", want: 133093},
		{input: "133093", want: 133093},
		{input: " tt10872600 ", want: 10872600},
		{input: "", wantErr: ErrNullInput},
		{input: "nm0000206", wantErr: ErrInvalidFormat},
		{input: "tt", wantErr: ErrInvalidFormat},
		{input: "-5", wantErr: ErrInvalidFormat},
		{input: "tt0000000", wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIMDbID(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIMDbID(t *testing.T) {
	assert.Equal(t, "tt133093", FormatIMDbID(133093))
	assert.Equal(t, "tt1234567", FormatIMDbID(1234567))
}
