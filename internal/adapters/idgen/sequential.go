package idgen

import (
	"strings"
	"sync"

	"go.trai.ch/intake/internal/core/domain"
)

// Sequential issues identifiers from a monotonic counter, encoded in base62
// and left-padded to domain.CacheIDLength.
type Sequential struct {
	mu   sync.Mutex
	next uint64
}

// NewSequential creates a Sequential generator starting at seed.
func NewSequential(seed uint64) *Sequential {
	return &Sequential{next: seed}
}

// Next returns the identifier for the current counter value and advances it.
func (s *Sequential) Next() string {
	s.mu.Lock()
	n := s.next
	s.next++
	s.mu.Unlock()
	return encode(n)
}

func encode(n uint64) string {
	base := uint64(len(domain.CacheIDAlphabet))
	var digits []byte
	for n > 0 {
		digits = append(digits, domain.CacheIDAlphabet[n%base])
		n /= base
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	if len(digits) >= domain.CacheIDLength {
		return string(digits)
	}
	return strings.Repeat(string(domain.CacheIDAlphabet[0]), domain.CacheIDLength-len(digits)) + string(digits)
}
