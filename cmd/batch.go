package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leereilly/Cinematerial/cinematerial"
	"github.com/leereilly/Cinematerial/radarr"
)

var (
	inputFile    string
	fromRadarr   bool
	radarrTag    string
	withFileOnly bool
	concurrency  int
	dryRun       bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [imdb-id | imdb-url]...",
	Short: "Look up the posters of many movies at once",
	Long: `Look up the posters of several movies concurrently.

Movies come from the arguments, from a file with one IMDb ID or URL per line
(--file, "-" for stdin) or from the Radarr library (--from-radarr). Lookups
run with bounded concurrency and a failed lookup does not stop the others.`,
	Example: `  cinematerial batch tt0133093 tt0078748
  cinematerial batch --file movies.txt --concurrency 10
  cinematerial batch --from-radarr --tag 4k --preset english`,
	PreRunE: initializeApp,
	RunE:    runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&inputFile, "file", "", `read IMDb IDs or URLs from a file, one per line ("-" for stdin)`)
	batchCmd.Flags().BoolVar(&fromRadarr, "from-radarr", false, "look up every movie in the Radarr library")
	batchCmd.Flags().StringVar(&radarrTag, "tag", "", "with --from-radarr, only movies with this tag")
	batchCmd.Flags().BoolVar(&withFileOnly, "with-file", false, "with --from-radarr, only movies that have a file")
	batchCmd.Flags().IntVarP(&imageWidth, "width", "w", 0, "poster image width (30-300, default from config)")
	batchCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "number of concurrent lookups (default from config)")
	batchCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "list the movies that would be looked up")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the results as JSON")
	addFilterFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	width := imageWidth
	if width == 0 {
		width = cfg.Cinematerial.ImageWidth
	}

	limit := cfg.Batch.Concurrency
	if cmd.Flags().Changed("concurrency") {
		if concurrency < 1 || concurrency > cinematerial.MaxConcurrency {
			return fmt.Errorf("concurrency must be between 1 and %d, got %d", cinematerial.MaxConcurrency, concurrency)
		}
		limit = concurrency
	}

	queries, err := collectQueries(cmd, args, width)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("no movies to look up; pass IMDb IDs or URLs, --file or --from-radarr")
	}

	if dryRun {
		for _, q := range queries {
			fmt.Println(q.Label())
		}
		logger.Info().Int("movies", len(queries)).Msg("Dry run, no lookups sent")
		return nil
	}

	f, err := posterFilter()
	if err != nil {
		return err
	}

	logger.Info().Int("movies", len(queries)).Int("concurrency", limit).Msg("Looking up posters")

	batch := cinematerial.SearchMany(ctx, client, queries, limit)
	for _, o := range batch.Succeeded() {
		if err := filterResult(f, o.Result); err != nil {
			return err
		}
	}

	if jsonOutput {
		if err := writeBatchJSON(os.Stdout, batch); err != nil {
			return err
		}
	} else {
		fmt.Print(cinematerial.NewConsoleFormatter().FormatBatch(batch))
	}

	for _, o := range batch.Failed() {
		logger.Warn().Str("movie", o.Label).Err(o.Err).Msg("Lookup failed")
	}
	if failed := len(batch.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(batch.Outcomes))
	}
	return nil
}

// collectQueries gathers lookups from the arguments, --file and --from-radarr
func collectQueries(cmd *cobra.Command, args []string, width int) ([]cinematerial.Query, error) {
	var queries []cinematerial.Query

	for _, arg := range args {
		q, err := parseLookupArg(arg, width).query()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		queries = append(queries, q)
	}

	if inputFile != "" {
		var r io.Reader = cmd.InOrStdin()
		if inputFile != "-" {
			file, err := os.Open(inputFile)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", inputFile, err)
			}
			defer file.Close()
			r = file
		}

		fileQueries, err := readLookupLines(r, width)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", inputFile, err)
		}
		queries = append(queries, fileQueries...)
	}

	if fromRadarr {
		if radarrClient == nil {
			return nil, fmt.Errorf("radarr is not available; set radarr.enabled, radarr.url and radarr.api_key")
		}

		movies, err := radarrClient.LibraryMovies(cmd.Context(), radarr.LibraryOptions{
			Tag:          radarrTag,
			OnlyWithFile: withFileOnly,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Int("movies", len(movies)).Msg("Loaded movies from Radarr")
		queries = append(queries, radarr.Queries(movies, width)...)
	}

	return queries, nil
}

type batchOutcomeJSON struct {
	Movie  string               `json:"movie"`
	Result *cinematerial.Result `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func writeBatchJSON(w io.Writer, batch cinematerial.BatchResult) error {
	out := make([]batchOutcomeJSON, 0, len(batch.Outcomes))
	for _, o := range batch.Outcomes {
		entry := batchOutcomeJSON{Movie: o.Label, Result: o.Result}
		if o.Err != nil {
			entry.Error = strings.TrimSpace(o.Err.Error())
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
