// Package prob computes exact win probabilities between dice.
//
// All probabilities are exact rationals obtained by integer counting followed
// by a single division, so repeated comparisons cannot drift the way floating
// point accumulation would. Rounding for display is the caller's concern.
package prob

import (
	"errors"
	"math/big"

	"github.com/diceproto/fairdice/pkg/dice"
	"github.com/diceproto/fairdice/pkg/pool"
)

// ErrInsufficientPool is returned when fewer than 2 distinct dice are
// available for averaging.
var ErrInsufficientPool = errors.New("prob: need at least 2 distinct dice")

// Pairwise returns the probability that a rolls strictly greater than b,
// counting over every face pair. Ties count for neither side.
func Pairwise(a, b *dice.Die) *big.Rat {
	wins := 0
	for i := 0; i < a.Len(); i++ {
		fa := a.Face(i)
		for j := 0; j < b.Len(); j++ {
			if fa > b.Face(j) {
				wins++
			}
		}
	}
	return big.NewRat(int64(wins), int64(a.Len()*b.Len()))
}

// Average returns the mean of Pairwise(d, other) over every other die in the
// pool, excluding d itself by identifier.
func Average(d *dice.Die, p dice.Pool) (*big.Rat, error) {
	if len(p) < 2 {
		return nil, ErrInsufficientPool
	}
	sum := new(big.Rat)
	others := 0
	for _, other := range p {
		if other.ID() == d.ID() {
			continue
		}
		sum.Add(sum, Pairwise(d, other))
		others++
	}
	if others == 0 {
		return nil, ErrInsufficientPool
	}
	return sum.Quo(sum, big.NewRat(int64(others), 1)), nil
}

// Matrix returns the full square win-probability table over the die set:
// entry [i][j] is the probability that die i beats die j. The diagonal is
// computed like any other cell, never replaced by a sentinel: a die compared
// against itself still wins on strictly greater face pairs.
//
// Every cell is an independent pure computation, so a non-nil worker pool
// evaluates them in parallel with results identical to the sequential ones.
// The table is rebuilt from scratch on every call and never cached.
func Matrix(pl *pool.Pool, ds []*dice.Die) [][]*big.Rat {
	n := len(ds)
	cells := pl.Parallelize(n*n, func(k int) interface{} {
		return Pairwise(ds[k/n], ds[k%n])
	})
	matrix := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		matrix[i] = make([]*big.Rat, n)
		for j := 0; j < n; j++ {
			matrix[i][j] = cells[i*n+j].(*big.Rat)
		}
	}
	return matrix
}
