package idgen

import "io"

// NewRandomFrom creates a Random generator reading from src.
func NewRandomFrom(src io.Reader, length int) *Random {
	return &Random{src: src, length: length}
}
