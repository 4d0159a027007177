package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leereilly/Cinematerial/cinematerial"
)

// lookupInput is a movie selection as typed on the command line
type lookupInput struct {
	ID    string `validate:"required_without=URL,excluded_with=URL,omitempty,imdb_id"`
	URL   string `validate:"required_without=ID,omitempty,url,imdb_movie_url"`
	Width int    `validate:"omitempty,image_width"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("imdb_id", func(fl validator.FieldLevel) bool {
		_, err := cinematerial.ParseIMDbID(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("imdb_movie_url", func(fl validator.FieldLevel) bool {
		_, err := cinematerial.ExtractMovieID(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("image_width", func(fl validator.FieldLevel) bool {
		w := fl.Field().Int()
		return w >= cinematerial.MinImageWidth && w <= cinematerial.MaxImageWidth
	})
	return v
}

// parseLookupArg decides whether a positional argument is an IMDb URL or an ID
func parseLookupArg(arg string, width int) lookupInput {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, "://") || strings.Contains(strings.ToLower(arg), "imdb.com/") {
		return lookupInput{URL: arg, Width: width}
	}
	return lookupInput{ID: arg, Width: width}
}

// query validates in and converts it to a lookup query
func (in lookupInput) query() (cinematerial.Query, error) {
	if err := validate.Struct(in); err != nil {
		return cinematerial.Query{}, describeValidation(in, err)
	}

	q := cinematerial.Query{URL: in.URL, Width: in.Width}
	if in.ID != "" {
		id, err := cinematerial.ParseIMDbID(in.ID)
		if err != nil {
			return cinematerial.Query{}, err
		}
		q.MovieID = id
	}
	return q, nil
}

func describeValidation(in lookupInput, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required_without":
		return errors.New("an IMDb movie ID or an IMDb movie URL is required")
	case "excluded_with":
		return errors.New("give either an IMDb movie ID or an IMDb movie URL, not both")
	case "imdb_id":
		return fmt.Errorf("%q is not a valid IMDb movie ID", in.ID)
	case "url", "imdb_movie_url":
		return fmt.Errorf("%q is not an IMDb movie URL", in.URL)
	case "image_width":
		return fmt.Errorf("image width must be between %d and %d, got %d",
			cinematerial.MinImageWidth, cinematerial.MaxImageWidth, in.Width)
	}
	return fmt.Errorf("invalid %s: %s", strings.ToLower(fe.Field()), fe.Tag())
}

// readLookupLines reads one IMDb ID or URL per line. Blank lines and lines
// starting with # are skipped.
func readLookupLines(r io.Reader, width int) ([]cinematerial.Query, error) {
	var queries []cinematerial.Query

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q, err := parseLookupArg(line, width).query()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		queries = append(queries, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return queries, nil
}
