package cinematerial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leereilly/Cinematerial/unixcrypt"
)

func TestDeriveSignature(t *testing.T) {
	t.Run("matches crypt over tt-prefixed id and secret", func(t *testing.T) {
		got, err := DeriveSignature(42, "secret")
		require.NoError(t, err)
		assert.Equal(t, unixcrypt.Crypt("tt42secret", "tt"), got)
		assert.Len(t, got, 13)
		assert.Equal(t, "tt", got[:2])
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := DeriveSignature(133093, "s3cr3t")
		require.NoError(t, err)
		second, err := DeriveSignature(133093, "s3cr3t")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("different movie IDs differ", func(t *testing.T) {
		seen := map[string]int{}
		for _, id := range []int{1, 2, 3, 42, 99, 1234} {
			sig, err := DeriveSignature(id, "s")
			require.NoError(t, err)
			if prev, ok := seen[sig]; ok {
				t.Fatalf("signature collision between %d and %d", prev, id)
			}
			seen[sig] = id
		}
	})

	t.Run("different secrets differ", func(t *testing.T) {
		a, err := DeriveSignature(1, "alpha")
		require.NoError(t, err)
		b, err := DeriveSignature(1, "bravo")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("only the first eight characters are significant", func(t *testing.T) {
		// "tt1234567" already fills the key, so the secret does not contribute.
		a, err := DeriveSignature(1234567, "alpha")
		require.NoError(t, err)
		b, err := DeriveSignature(1234567, "bravo")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("rejects non-positive IDs", func(t *testing.T) {
		for _, id := range []int{0, -1} {
			_, err := DeriveSignature(id, "secret")
			assert.ErrorIs(t, err, ErrOutOfRange)
		}
	})
}
