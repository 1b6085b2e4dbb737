// Package commitment implements the fair-random commitment protocol.
//
// One party fixes a secret value drawn uniformly from an inclusive range and
// publishes a keyed digest of it. The counterpart then supplies its own value
// in the same range, and the two are combined modulo the range size. Because
// the digest was published before the counterpart's value was known, and the
// digest is binding, neither party can bias the combined result. Revealing
// the secret and key afterwards lets any observer recompute the digest and
// confirm the secret was fixed in advance.
package commitment

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/diceproto/fairdice/internal/params"
	"github.com/diceproto/fairdice/pkg/hash"
	"github.com/diceproto/fairdice/pkg/sample"
)

var (
	// ErrInvalidRange is returned when the requested range size is negative.
	ErrInvalidRange = errors.New("commitment: range size is negative")
	// ErrOutOfRange is returned when the counterpart's value lies outside
	// [0, rangeSize].
	ErrOutOfRange = errors.New("commitment: counterpart value outside range")
	// ErrEntropyUnavailable is returned when the secure random source fails.
	ErrEntropyUnavailable = errors.New("commitment: secure random source unavailable")
)

// Digest is the keyed hash of a committed secret. It is what the committing
// party publishes before learning the counterpart's value.
type Digest []byte

// WriteTo implements the io.WriterTo interface.
func (d Digest) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (Digest) Domain() string { return "Commitment Digest" }

// Validate checks that the digest has the expected length.
func (d Digest) Validate() error {
	if l := len(d); l != params.HashBytes {
		return fmt.Errorf("digest: incorrect length (got %d, expected %d)", l, params.HashBytes)
	}
	return nil
}

// Equal reports whether two digests are identical.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d, other)
}

// String returns the uppercase hexadecimal encoding used for display.
func (d Digest) String() string {
	return strings.ToUpper(hex.EncodeToString(d))
}

// Commitment is one party's side of a single fair-random exchange.
//
// It holds the secret value, the key, and the digest for one round. A
// Commitment is only obtainable through New, so a digest always exists
// before Combine can be called. Commitments are never reused across rounds:
// the key and secret are freshly random each time, so results of different
// rounds carry no correlation.
type Commitment struct {
	rangeSize int64
	secret    int64
	key       Key
	digest    Digest
}

// New draws a secret uniformly from [0, rangeSize], draws a fresh key, and
// computes the keyed digest of the secret.
//
// The range is inclusive at both ends: the effective modulus is rangeSize+1,
// and rangeSize = 0 is a valid degenerate range whose secret is always 0.
func New(rangeSize int64) (*Commitment, error) {
	if rangeSize < 0 {
		return nil, ErrInvalidRange
	}
	secret, err := sample.UniformInt(rand.Reader, rangeSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	key, err := NewKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	digest, err := computeDigest(key, secret)
	if err != nil {
		return nil, err
	}
	return &Commitment{
		rangeSize: rangeSize,
		secret:    secret,
		key:       key,
		digest:    digest,
	}, nil
}

// Digest returns the digest to publish to the counterpart. It must be shown
// before the counterpart supplies its value; that ordering is the caller's
// contract.
func (c *Commitment) Digest() Digest {
	return c.digest
}

// RangeSize returns the inclusive upper bound of the commitment's range.
func (c *Commitment) RangeSize() int64 {
	return c.rangeSize
}

// Combine folds the counterpart's value into the committed secret, returning
// (secret + counterpart) mod (rangeSize + 1).
func (c *Commitment) Combine(counterpart int64) (int64, error) {
	if counterpart < 0 || counterpart > c.rangeSize {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, counterpart, c.rangeSize)
	}
	return (c.secret + counterpart) % (c.rangeSize + 1), nil
}

// Reveal discloses the secret and key. It must only be called after Combine,
// once the counterpart's value has been received; publishing them lets any
// observer recompute the digest.
func (c *Commitment) Reveal() (int64, Key) {
	return c.secret, c.key.Copy()
}

// Verify recomputes the digest from a revealed secret and key and reports
// whether it matches the digest published earlier. A match proves the secret
// was fixed before the counterpart's value was known.
func Verify(digest Digest, secret int64, rangeSize int64, key Key) bool {
	if digest.Validate() != nil || key.Validate() != nil {
		return false
	}
	if secret < 0 || rangeSize < 0 || secret > rangeSize {
		return false
	}
	computed, err := computeDigest(key, secret)
	if err != nil {
		return false
	}
	return digest.Equal(computed)
}

// computeDigest evaluates the keyed hash over the fixed-width big-endian
// encoding of the secret.
func computeDigest(key Key, secret int64) (Digest, error) {
	h, err := hash.NewKeyed(key)
	if err != nil {
		return nil, fmt.Errorf("commitment: %w", err)
	}
	if err := h.WriteAny(uint64(secret)); err != nil {
		return nil, fmt.Errorf("commitment: %w", err)
	}
	return h.Sum(), nil
}
