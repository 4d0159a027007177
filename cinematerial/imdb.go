package cinematerial

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// movieURLRE is matched against the lower-cased host followed by the escaped
// path, so it is anchored on both the host and the path.
var movieURLRE = regexp.MustCompile(`^(?:[a-z0-9-]+\.)*imdb\.com/title/tt([0-9]{7})(?:/.*)?$`)

var imdbIDRE = regexp.MustCompile(`^(?:tt)?([0-9]{1,9})$`)

const imdbIDPrefix = "tt"

// IsMovieURL reports whether rawURL is an IMDb movie page URL such as
// http://www.imdb.com/title/tt0133093/.
func IsMovieURL(rawURL string) bool {
	_, ok := matchMovieURL(rawURL)
	return ok
}

// ExtractMovieID returns the numeric movie ID of an IMDb movie page URL.
// Leading zeros are dropped: tt0234567 yields 234567.
func ExtractMovieID(rawURL string) (int, error) {
	if strings.TrimSpace(rawURL) == "" {
		return 0, nullInput("imdbMovieUrl", "URL is required")
	}

	digits, ok := matchMovieURL(rawURL)
	if !ok {
		return 0, invalidFormat("imdbMovieUrl", rawURL, "not a valid IMDb movie URL")
	}

	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, invalidFormat("imdbMovieUrl", rawURL, "not a valid IMDb movie URL")
	}
	if id <= 0 {
		return 0, outOfRange("imdbMovieId", id, "must be greater than zero")
	}
	return id, nil
}

func matchMovieURL(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", false
	}

	m := movieURLRE.FindStringSubmatch(strings.ToLower(u.Hostname()) + u.EscapedPath())
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseIMDbID parses an IMDb title reference in either "tt0133093" or
// "133093" form.
func ParseIMDbID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nullInput("imdbMovieId", "IMDb ID is required")
	}

	m := imdbIDRE.FindStringSubmatch(s)
	if m == nil {
		return 0, invalidFormat("imdbMovieId", s, "not a valid IMDb ID")
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, invalidFormat("imdbMovieId", s, "not a valid IMDb ID")
	}
	if id <= 0 {
		return 0, outOfRange("imdbMovieId", id, "must be greater than zero")
	}
	return id, nil
}

// FormatIMDbID renders a movie ID the way the API and the signature expect it
func FormatIMDbID(id int) string {
	return imdbIDPrefix + strconv.Itoa(id)
}
