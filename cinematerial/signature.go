package cinematerial

import (
	"github.com/leereilly/Cinematerial/unixcrypt"
)

// DeriveSignature computes the per-request secret sent in place of the API
// secret. The API verifies it with DES crypt(3) over "tt<id><secret>", salted
// with the first two characters of that string, so only its first eight
// characters are significant.
func DeriveSignature(movieID int, apiSecret string) (string, error) {
	if err := checkMovieID(movieID); err != nil {
		return "", err
	}

	data := FormatIMDbID(movieID) + apiSecret
	return unixcrypt.Crypt(data, data[:2]), nil
}

func checkMovieID(movieID int) error {
	if movieID <= 0 {
		return outOfRange("imdbMovieId", movieID, "must be greater than zero")
	}
	return nil
}
