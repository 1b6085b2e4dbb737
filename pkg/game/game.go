// Package game holds the pure turn logic of the dice game: the fair-random
// exchange driving every decision, the computer's die selection strategy,
// and roll comparison. It performs no I/O; the interactive layer drives it.
package game

import (
	"errors"

	"github.com/diceproto/fairdice/pkg/commitment"
	"github.com/diceproto/fairdice/pkg/dice"
	"github.com/diceproto/fairdice/pkg/prob"
)

// ErrEmptyPool is returned when the computer has no dice left to choose from.
var ErrEmptyPool = errors.New("game: no dice available")

// Exchange is one fair-random exchange in progress. The digest is available
// as soon as the exchange exists, and the secret stays hidden until Resolve.
type Exchange struct {
	purpose string
	c       *commitment.Commitment
}

// Outcome records a finished exchange: everything the counterpart needs to
// display the protocol and everything a third party needs to verify it.
type Outcome struct {
	Purpose     string
	RangeSize   int64
	Digest      commitment.Digest
	Counterpart int64
	Secret      int64
	Key         commitment.Key
	Result      int64
}

// NewExchange commits to a fresh secret in [0, rangeSize] for the named
// purpose.
func NewExchange(purpose string, rangeSize int64) (*Exchange, error) {
	c, err := commitment.New(rangeSize)
	if err != nil {
		return nil, err
	}
	return &Exchange{purpose: purpose, c: c}, nil
}

// Purpose returns the label the exchange was created with.
func (e *Exchange) Purpose() string { return e.purpose }

// RangeSize returns the inclusive upper bound of the exchange's range.
func (e *Exchange) RangeSize() int64 { return e.c.RangeSize() }

// Digest returns the commitment digest. It must be shown to the counterpart
// before their value is collected.
func (e *Exchange) Digest() commitment.Digest { return e.c.Digest() }

// Resolve combines the counterpart's value with the committed secret and
// reveals the secret and key. The returned Outcome carries the full protocol
// record for the round.
func (e *Exchange) Resolve(counterpart int64) (Outcome, error) {
	result, err := e.c.Combine(counterpart)
	if err != nil {
		return Outcome{}, err
	}
	secret, key := e.c.Reveal()
	return Outcome{
		Purpose:     e.purpose,
		RangeSize:   e.c.RangeSize(),
		Digest:      e.c.Digest(),
		Counterpart: counterpart,
		Secret:      secret,
		Key:         key,
		Result:      result,
	}, nil
}

// ChooseBest is the computer's die selection strategy: the die with the
// highest average win probability against the rest of the pool. Ties go to
// the lowest identifier so the choice is deterministic.
func ChooseBest(p dice.Pool) (*dice.Die, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPool
	}
	if len(p) == 1 {
		return p[0], nil
	}
	best := p[0]
	bestAvg, err := prob.Average(best, p)
	if err != nil {
		return nil, err
	}
	for _, d := range p[1:] {
		avg, err := prob.Average(d, p)
		if err != nil {
			return nil, err
		}
		if avg.Cmp(bestAvg) > 0 {
			best, bestAvg = d, avg
		}
	}
	return best, nil
}

// Winner identifies which side won a roll comparison.
type Winner int

const (
	Tie Winner = iota
	UserWins
	ComputerWins
)

func (w Winner) String() string {
	switch w {
	case UserWins:
		return "user"
	case ComputerWins:
		return "computer"
	default:
		return "tie"
	}
}

// Compare decides a round from the two rolled face values. Strictly greater
// wins; equal faces tie.
func Compare(userFace, computerFace int) Winner {
	switch {
	case userFace > computerFace:
		return UserWins
	case computerFace > userFace:
		return ComputerWins
	default:
		return Tie
	}
}
