package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leereilly/Cinematerial/cinematerial"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <url>...",
	Short: "Check whether URLs are IMDb movie URLs",
	Long: `Classify each URL as an IMDb movie URL or not and print the movie ID it
refers to. No configuration or network access is needed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var invalid int

	for _, arg := range args {
		line, ok := checkURL(arg)
		if !ok {
			invalid++
		}
		fmt.Fprintln(out, line)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d URLs are not IMDb movie URLs", invalid, len(args))
	}
	return nil
}

// checkURL returns the report line for rawURL and whether it names a movie
func checkURL(rawURL string) (string, bool) {
	id, err := cinematerial.ExtractMovieID(rawURL)
	if err != nil {
		reason := err.Error()
		var argErr *cinematerial.ArgumentError
		if errors.As(err, &argErr) {
			reason = argErr.Reason
		}
		return fmt.Sprintf("✗ %s (%s)", rawURL, reason), false
	}
	return fmt.Sprintf("✓ %s → %s", rawURL, cinematerial.FormatIMDbID(id)), true
}
