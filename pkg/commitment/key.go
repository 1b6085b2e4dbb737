package commitment

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/diceproto/fairdice/internal/params"
)

// Key is the fresh random byte string a commitment digest is keyed with.
// Its size equals the security parameter. An empty slice is considered
// invalid.
type Key []byte

// EmptyKey returns a zeroed-out Key of the correct length.
func EmptyKey() Key {
	return make(Key, params.SecBytes)
}

// NewKey draws a fresh key from r.
func NewKey(r io.Reader) (Key, error) {
	key := EmptyKey()
	_, err := io.ReadFull(r, key)
	return key, err
}

// WriteTo implements the io.WriterTo interface.
func (k Key) WriteTo(w io.Writer) (int64, error) {
	if k == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write(k)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (Key) Domain() string { return "Commitment Key" }

// Validate ensures that the key is the correct length and is not identically 0.
func (k Key) Validate() error {
	if l := len(k); l != params.SecBytes {
		return fmt.Errorf("key: incorrect length (got %d, expected %d)", l, params.SecBytes)
	}
	for _, b := range k {
		if b != 0 {
			return nil
		}
	}
	return errors.New("key: key is 0")
}

// Copy returns an independent copy of the key.
func (k Key) Copy() Key {
	other := EmptyKey()
	copy(other, k)
	return other
}

// String returns the uppercase hexadecimal encoding used for display.
func (k Key) String() string {
	return strings.ToUpper(hex.EncodeToString(k))
}
