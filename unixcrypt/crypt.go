// Package unixcrypt implements the traditional DES-based crypt(3) hash used by
// Unix password files before modular crypt formats existed.
//
// Only the first eight bytes of the key are significant and only the low seven
// bits of each byte are used. The two-character salt perturbs the DES expansion
// table and is echoed as the first two characters of the 13-character result.
package unixcrypt

const (
	// alphabet is the crypt(3) base-64 alphabet used for salts and output.
	alphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	maxKeyLen = 8
	rounds    = 25
	hashLen   = 13
)

// Crypt returns the DES crypt(3) hash of key using the first two characters of
// salt. An empty salt is treated as "..", a single character is doubled.
func Crypt(key, salt string) string {
	s := normalizeSalt(salt)

	var c cipher
	c.setSalt(s)
	c.setKey(key)

	var block [64]byte
	for i := 0; i < rounds; i++ {
		c.encrypt(&block)
	}

	out := make([]byte, 0, hashLen)
	out = append(out, s[0], s[1])
	for i := 0; i < 11; i++ {
		var v byte
		for j := 0; j < 6; j++ {
			v <<= 1
			if n := 6*i + j; n < len(block) {
				v |= block[n]
			}
		}
		out = append(out, alphabet[v])
	}
	return string(out)
}

func normalizeSalt(salt string) [2]byte {
	switch len(salt) {
	case 0:
		return [2]byte{'.', '.'}
	case 1:
		return [2]byte{salt[0], salt[0]}
	default:
		return [2]byte{salt[0], salt[1]}
	}
}

// saltBits maps a salt character to its 6-bit value. Characters outside the
// alphabet are folded the same way the historical implementation folds them.
func saltBits(ch byte) int {
	v := int(ch)
	if v > 'Z' {
		v -= 6
	}
	if v > '9' {
		v -= 7
	}
	return (v - '.') & 0x3f
}

// cipher holds the salted expansion table and the key schedule.
type cipher struct {
	e  [48]byte
	ks [16][48]byte
}

func (c *cipher) setSalt(s [2]byte) {
	c.e = expansion
	for i := 0; i < 2; i++ {
		v := saltBits(s[i])
		for j := 0; j < 6; j++ {
			if (v>>j)&1 == 1 {
				k := 6*i + j
				c.e[k], c.e[k+24] = c.e[k+24], c.e[k]
			}
		}
	}
}

func (c *cipher) setKey(key string) {
	var bits [64]byte
	for n, i := 0, 0; n < len(key) && n < maxKeyLen; n++ {
		ch := key[n]
		if ch == 0 {
			break
		}
		for j := 0; j < 7; j++ {
			bits[i] = (ch >> (6 - j)) & 1
			i++
		}
		// parity bit
		i++
	}

	var cb, db [28]byte
	for i := 0; i < 28; i++ {
		cb[i] = bits[permutedChoice1C[i]-1]
		db[i] = bits[permutedChoice1D[i]-1]
	}

	for i := 0; i < 16; i++ {
		for k := 0; k < int(keyShifts[i]); k++ {
			rotateLeft(&cb)
			rotateLeft(&db)
		}
		for j := 0; j < 24; j++ {
			c.ks[i][j] = cb[permutedChoice2C[j]-1]
			c.ks[i][j+24] = db[permutedChoice2D[j]-28-1]
		}
	}
}

func rotateLeft(half *[28]byte) {
	first := half[0]
	copy(half[:27], half[1:])
	half[27] = first
}

// encrypt runs one DES encryption over block in place. Each byte of block
// holds a single bit.
func (c *cipher) encrypt(block *[64]byte) {
	var lr [64]byte
	for j := range lr {
		lr[j] = block[initialPermutation[j]-1]
	}
	l, r := lr[:32], lr[32:]

	var (
		prev [32]byte
		preS [48]byte
		f    [32]byte
	)
	for i := 0; i < 16; i++ {
		copy(prev[:], r)

		for j := 0; j < 48; j++ {
			preS[j] = r[c.e[j]-1] ^ c.ks[i][j]
		}

		for j := 0; j < 8; j++ {
			t := 6 * j
			idx := int(preS[t])<<5 | int(preS[t+5])<<4 |
				int(preS[t+1])<<3 | int(preS[t+2])<<2 |
				int(preS[t+3])<<1 | int(preS[t+4])
			k := sBoxes[j][idx]
			t = 4 * j
			f[t] = (k >> 3) & 1
			f[t+1] = (k >> 2) & 1
			f[t+2] = (k >> 1) & 1
			f[t+3] = k & 1
		}

		for j := 0; j < 32; j++ {
			r[j] = l[j] ^ f[permutation[j]-1]
		}
		copy(l, prev[:])
	}

	for j := 0; j < 32; j++ {
		l[j], r[j] = r[j], l[j]
	}
	for j := range block {
		block[j] = lr[finalPermutation[j]-1]
	}
}
