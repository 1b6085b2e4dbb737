package hash

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/diceproto/fairdice/internal/params"
)

// Hash is the hash function used for commitment digests and die set
// fingerprints.
//
// Internally, this is a wrapper around blake3.Hasher, but any keyed hash
// function with an easily extendable output would work as well.
type Hash struct {
	h *blake3.Hasher
}

// New creates an unkeyed Hash, suitable for fingerprinting public data.
func New() *Hash {
	return &Hash{h: blake3.New()}
}

// NewKeyed creates a Hash keyed with a params.SecBytes long key.
//
// A keyed hash is what makes a commitment digest hiding: without the key,
// the digest reveals nothing about the committed value.
func NewKeyed(key []byte) (*Hash, error) {
	if l := len(key); l != params.SecBytes {
		return nil, fmt.Errorf("hash.NewKeyed: incorrect key length (got %d, expected %d)", l, params.SecBytes)
	}
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, fmt.Errorf("hash.NewKeyed: %w", err)
	}
	return &Hash{h: h}, nil
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length params.HashBytes resulting from the current
// hash state. If a different length is required, use
// io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, params.HashBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - uint64, written as a fixed-width big-endian encoding
//   - hash.WriterToWithDomain
//
// This function applies its own domain separation for the first two types.
// The last type already suggests which domain to use, and this function
// respects it.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case uint64:
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], t)
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "uint64",
				Bytes:     b[:],
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write uint64: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write %s: %w", t.Domain(), err)
			}
		default:
			panic("hash.Hash: unsupported type")
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
