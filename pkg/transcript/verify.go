package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/diceproto/fairdice/pkg/commitment"
)

var (
	// ErrFingerprintMismatch means the transcript's fingerprint does not
	// match its own die list; the record was tampered with or truncated.
	ErrFingerprintMismatch = errors.New("transcript: die set fingerprint mismatch")
	// ErrReceiptRange means a receipt's values fall outside its range.
	ErrReceiptRange = errors.New("transcript: receipt value outside range")
	// ErrDigestMismatch means a revealed secret and key do not reproduce the
	// published digest; the committed value was changed after the fact.
	ErrDigestMismatch = errors.New("transcript: digest mismatch")
	// ErrResultMismatch means the recorded result is not the modular sum of
	// the secret and the counterpart value.
	ErrResultMismatch = errors.New("transcript: combined result mismatch")
)

// Verify re-derives every receipt in the transcript and returns the first
// defect found. Receipts are independent of each other, so they are checked
// concurrently; results are identical to a sequential check.
func Verify(ctx context.Context, t *Transcript) error {
	if !bytes.Equal(t.Fingerprint, fingerprint(t.Dice)) {
		return ErrFingerprintMismatch
	}
	g, _ := errgroup.WithContext(ctx)
	for i := range t.Receipts {
		r := t.Receipts[i]
		n := i
		g.Go(func() error {
			return verifyReceipt(n, r)
		})
	}
	return g.Wait()
}

func verifyReceipt(n int, r Receipt) error {
	if r.RangeSize < 0 ||
		r.Secret < 0 || r.Secret > r.RangeSize ||
		r.Counterpart < 0 || r.Counterpart > r.RangeSize ||
		r.Result < 0 || r.Result > r.RangeSize {
		return fmt.Errorf("%w: receipt %d", ErrReceiptRange, n)
	}
	if !commitment.Verify(r.Digest, r.Secret, r.RangeSize, r.Key) {
		return fmt.Errorf("%w: receipt %d (%s)", ErrDigestMismatch, n, r.Purpose)
	}
	if r.Result != (r.Secret+r.Counterpart)%(r.RangeSize+1) {
		return fmt.Errorf("%w: receipt %d (%s)", ErrResultMismatch, n, r.Purpose)
	}
	return nil
}
