// Package cinematerial provides a client for the CineMaterial poster API.
//
// CineMaterial serves movie posters keyed by IMDb title. Requests are signed:
// instead of the shared API secret, each request carries a DES crypt(3) hash
// of the IMDb reference and the secret, so the secret never leaves the caller.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := cinematerial.NewClient("api-key", "api-secret", logger,
//		cinematerial.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.Search(ctx, cinematerial.Query{
//		URL: "http://www.imdb.com/title/tt0133093/",
//	})
//
// A Query selects the movie either by numeric IMDb ID or by IMDb movie page
// URL; Width defaults to DefaultImageWidth. RequestFor returns the signed
// request without performing any network I/O.
//
// # Error Handling
//
// Validation errors are *ArgumentError values that match one of the error kinds
// with errors.Is:
//
//   - ErrNullInput: a required argument was missing
//   - ErrInvalidCredentials: empty API key or secret
//   - ErrInvalidFormat: a URL that is not an IMDb movie page URL
//   - ErrOutOfRange: a movie ID below one or an image width outside [30,300]
//   - ErrMalformedResponse: a reply that is not the expected JSON document
//
// Network errors are returned exactly as the Fetcher produced them. The default
// HTTPFetcher reports non-2xx replies as *StatusError. Nothing is retried.
package cinematerial
