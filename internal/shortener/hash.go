package shortener

import (
	"fmt"
	"hash/crc32"
)

const hashLength = 8

// HashURL computes the CRC-32 (IEEE) checksum of the URL bytes and renders it
// as 8 uppercase hex digits, most significant byte first.
//
// Distinct URLs may collide; a collision conflates both targets under one hash.
func HashURL(rawURL string) Hash {
	return Hash(fmt.Sprintf("%08X", crc32.ChecksumIEEE([]byte(rawURL))))
}

// Valid reports whether h has the shape produced by HashURL.
func (h Hash) Valid() bool {
	if len(h) != hashLength {
		return false
	}

	for _, c := range h {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}
