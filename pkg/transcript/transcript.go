// Package transcript records the fair-random exchanges of a finished game so
// that any third party can re-derive every digest and confirm the game was
// played fairly. A transcript is a one-shot, in-memory record: nothing here
// persists games.
package transcript

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"

	"github.com/diceproto/fairdice/pkg/commitment"
	"github.com/diceproto/fairdice/pkg/dice"
	"github.com/diceproto/fairdice/pkg/game"
)

// FingerprintBytes is the length of the die set fingerprint.
const FingerprintBytes = 16

// Receipt is the full record of one fair-random exchange: what was published
// before the counterpart's value (the digest), the value itself, and what was
// revealed after (the secret and key).
type Receipt struct {
	Purpose     string
	RangeSize   int64
	Digest      commitment.Digest
	Counterpart int64
	Secret      int64
	Key         commitment.Key
	Result      int64
}

// Transcript is the ordered list of receipts for one game, bound to the die
// set the game was played over.
type Transcript struct {
	// Dice holds each die's face list as it was supplied on the command line.
	Dice []string
	// Fingerprint binds the receipts to the die set, so a verifier knows
	// which dice the exchanges refer to.
	Fingerprint []byte
	Receipts    []Receipt
}

// New starts an empty transcript over the given die set.
func New(ds []*dice.Die) *Transcript {
	faces := make([]string, len(ds))
	for i, d := range ds {
		faces[i] = d.String()
	}
	return &Transcript{
		Dice:        faces,
		Fingerprint: fingerprint(faces),
	}
}

// Append records a finished exchange.
func (t *Transcript) Append(out game.Outcome) {
	t.Receipts = append(t.Receipts, Receipt{
		Purpose:     out.Purpose,
		RangeSize:   out.RangeSize,
		Digest:      out.Digest,
		Counterpart: out.Counterpart,
		Secret:      out.Secret,
		Key:         out.Key,
		Result:      out.Result,
	})
}

// transcriptMarshal mirrors Transcript for encoding, so that marshalling the
// outer type does not recurse through its own BinaryMarshaler.
type transcriptMarshal struct {
	Dice        []string
	Fingerprint []byte
	Receipts    []Receipt
}

// MarshalBinary encodes the transcript with CBOR.
func (t *Transcript) MarshalBinary() ([]byte, error) {
	data, err := cbor.Marshal(&transcriptMarshal{
		Dice:        t.Dice,
		Fingerprint: t.Fingerprint,
		Receipts:    t.Receipts,
	})
	if err != nil {
		return nil, fmt.Errorf("transcript: marshal: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a CBOR transcript.
func (t *Transcript) UnmarshalBinary(data []byte) error {
	var tm transcriptMarshal
	if err := cbor.Unmarshal(data, &tm); err != nil {
		return fmt.Errorf("transcript: unmarshal: %w", err)
	}
	t.Dice = tm.Dice
	t.Fingerprint = tm.Fingerprint
	t.Receipts = tm.Receipts
	return nil
}

// fingerprint derives a short identifier for a die set from its rendered
// face lists, using SHAKE so the length is independent of the digest sizes
// used elsewhere.
func fingerprint(faces []string) []byte {
	h := sha3.NewShake128()
	for _, f := range faces {
		_, _ = h.Write([]byte(f))
		_, _ = h.Write([]byte{'\n'})
	}
	out := make([]byte, FingerprintBytes)
	_, _ = h.Read(out)
	return out
}
