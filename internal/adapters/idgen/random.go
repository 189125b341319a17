// Package idgen generates cache identifiers.
package idgen

import (
	"crypto/rand"
	"io"

	"go.trai.ch/intake/internal/core/domain"
)

// rejectAbove is the largest multiple of len(alphabet) that fits in a byte.
// Bytes at or above it are discarded so every character is equally likely.
const rejectAbove = 256 - 256%len(domain.CacheIDAlphabet)

// Random draws each identifier independently from a cryptographic source.
type Random struct {
	src    io.Reader
	length int
}

// NewRandom creates a Random generator producing identifiers of domain.CacheIDLength.
func NewRandom() *Random {
	return &Random{src: rand.Reader, length: domain.CacheIDLength}
}

// Next returns a fresh identifier.
// It panics if the random source fails, which crypto/rand never does on supported platforms.
func (r *Random) Next() string {
	out := make([]byte, 0, r.length)
	buf := make([]byte, r.length*2)
	for len(out) < r.length {
		if _, err := io.ReadFull(r.src, buf); err != nil {
			panic("idgen: random source failed: " + err.Error())
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, domain.CacheIDAlphabet[int(b)%len(domain.CacheIDAlphabet)])
			if len(out) == r.length {
				break
			}
		}
	}
	return string(out)
}
