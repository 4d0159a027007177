package cinematerial

import (
	"encoding/json"
	"fmt"
)

// Result is the parsed reply of a poster lookup
type Result struct {
	IMDbID  string   `json:"imdb_id"`
	Title   string   `json:"title"`
	Year    int      `json:"year,omitempty"`
	URL     string   `json:"url,omitempty"`
	Posters []Poster `json:"posters"`
}

// Poster is one poster image of a movie
type Poster struct {
	ID       int    `json:"id,omitempty"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
	Country  string `json:"country,omitempty"`
}

// HasPosters reports whether the lookup returned any poster
func (r *Result) HasPosters() bool {
	return len(r.Posters) > 0
}

// Largest returns the poster with the biggest area, or nil
func (r *Result) Largest() *Poster {
	var best *Poster
	for i := range r.Posters {
		p := &r.Posters[i]
		if best == nil || p.Area() > best.Area() {
			best = p
		}
	}
	return best
}

// Area returns the pixel count of the poster
func (p Poster) Area() int {
	return p.Width * p.Height
}

// AspectRatio returns height divided by width, or 0 if the width is unknown
func (p Poster) AspectRatio() float64 {
	if p.Width == 0 {
		return 0
	}
	return float64(p.Height) / float64(p.Width)
}

// ParseResponse decodes a JSON reply. Unknown fields are ignored and missing
// ones keep their zero value; Posters is never nil on success.
func ParseResponse(data []byte) (*Result, error) {
	var result *Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedResponse)
	}

	if result.Posters == nil {
		result.Posters = []Poster{}
	}
	return result, nil
}
