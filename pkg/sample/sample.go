// Package sample draws uniform integers from a cryptographically secure
// random source.
package sample

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
)

// maxIterations bounds the rejection sampling loop, so that a broken random
// source surfaces as an error instead of a hang.
const maxIterations = 255

var (
	ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)
	ErrInvalidBound  = errors.New("sample: bound is negative")
)

// UniformInt returns an integer drawn uniformly from the inclusive interval
// [0, max].
//
// The bound is inclusive at both ends: max = 0 is valid and always yields 0.
// Sampling masks to the bit length of max and rejects values above it, so
// every value in the interval is equally likely.
func UniformInt(rand io.Reader, max int64) (int64, error) {
	if max < 0 {
		return 0, ErrInvalidBound
	}
	mask := uint64(1)<<bits.Len64(uint64(max)) - 1
	var buf [8]byte
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return 0, fmt.Errorf("sample: read random source: %w", err)
		}
		v := binary.BigEndian.Uint64(buf[:]) & mask
		if v <= uint64(max) {
			return int64(v), nil
		}
	}
	return 0, ErrMaxIterations
}
