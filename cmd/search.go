package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leereilly/Cinematerial/cinematerial"
	"github.com/leereilly/Cinematerial/filter"
)

var (
	movieID    string
	movieURL   string
	imageWidth int
	showURLs   bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [imdb-id | imdb-url]",
	Short: "Look up the posters of a movie",
	Long: `Look up the posters of a movie on CineMaterial.

The movie can be given as an IMDb movie ID (tt0133093 or 133093) or as an
IMDb movie URL (http://www.imdb.com/title/tt0133093/), either positionally
or with --id / --url. Posters can be narrowed with --filter or --preset.`,
	Example: `  cinematerial search tt0133093
  cinematerial search http://www.imdb.com/title/tt0133093/ --width 150
  cinematerial search --id 133093 --filter 'Language == "en"' --json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&movieID, "id", "", "IMDb movie ID")
	searchCmd.Flags().StringVar(&movieURL, "url", "", "IMDb movie URL")
	searchCmd.Flags().IntVarP(&imageWidth, "width", "w", 0, "poster image width (30-300, default from config)")
	searchCmd.Flags().BoolVar(&showURLs, "urls", false, "show poster image URLs")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	addFilterFlags(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	q, err := lookupQuery(args)
	if err != nil {
		return err
	}

	f, err := posterFilter()
	if err != nil {
		return err
	}

	logger.Debug().Int("movie_id", q.MovieID).Str("url", q.URL).Int("width", q.Width).Msg("Looking up posters")

	result, err := client.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if err := filterResult(f, result); err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Print(cinematerial.NewConsoleFormatter().FormatResult(result, cinematerial.FormatOptions{ShowURLs: showURLs}))
	return nil
}

// lookupQuery builds the query from the positional argument or --id/--url
func lookupQuery(args []string) (cinematerial.Query, error) {
	width := imageWidth
	if width == 0 {
		width = cfg.Cinematerial.ImageWidth
	}

	in := lookupInput{ID: movieID, URL: movieURL, Width: width}
	if len(args) == 1 {
		if movieID != "" || movieURL != "" {
			return cinematerial.Query{}, fmt.Errorf("give the movie either as an argument or with --id/--url, not both")
		}
		in = parseLookupArg(args[0], width)
	}

	return in.query()
}

// filterResult drops the posters f rejects from result
func filterResult(f filter.Filter, result *cinematerial.Result) error {
	if f == nil || result == nil {
		return nil
	}

	kept, err := filter.Apply(f, result.Posters)
	if err != nil {
		return err
	}

	if dropped := len(result.Posters) - len(kept); dropped > 0 {
		logger.Debug().Str("imdb_id", result.IMDbID).Int("dropped", dropped).Msg("Filtered posters")
	}
	result.Posters = kept
	return nil
}
