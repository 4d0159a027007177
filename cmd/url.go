package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var asCurl bool

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url [imdb-id | imdb-url]",
	Short: "Print the signed request URL without sending it",
	Long: `Build and print the signed CineMaterial request URL for a movie. Nothing is
sent to the API. With --curl the request is printed as a curl command.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.Flags().StringVar(&movieID, "id", "", "IMDb movie ID")
	urlCmd.Flags().StringVar(&movieURL, "url", "", "IMDb movie URL")
	urlCmd.Flags().IntVarP(&imageWidth, "width", "w", 0, "poster image width (30-300, default from config)")
	urlCmd.Flags().BoolVar(&asCurl, "curl", false, "print the request as a curl command")
}

func runURL(cmd *cobra.Command, args []string) error {
	q, err := lookupQuery(args)
	if err != nil {
		return err
	}

	req, err := client.RequestFor(q)
	if err != nil {
		return err
	}

	if asCurl {
		curl, err := req.CurlCommand()
		if err != nil {
			return fmt.Errorf("failed to render curl command: %w", err)
		}
		fmt.Println(curl)
		return nil
	}

	fmt.Println(req.URL())
	return nil
}
