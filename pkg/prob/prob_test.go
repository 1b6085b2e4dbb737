package prob

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diceproto/fairdice/pkg/dice"
	"github.com/diceproto/fairdice/pkg/pool"
)

func mustDie(t *testing.T, id int, faces ...int) *dice.Die {
	t.Helper()
	d, err := dice.New(id, faces)
	require.NoError(t, err)
	return d
}

// efronTriple is a known non-transitive die set: A beats B, B beats C, and C
// beats A, each with probability above one half.
func efronTriple(t *testing.T) (a, b, c *dice.Die) {
	t.Helper()
	a = mustDie(t, 0, 2, 2, 4, 4, 9, 9)
	b = mustDie(t, 1, 1, 1, 6, 6, 8, 8)
	c = mustDie(t, 2, 3, 3, 5, 5, 7, 7)
	return a, b, c
}

func TestPairwise_NonTransitive(t *testing.T) {
	a, b, c := efronTriple(t)
	half := big.NewRat(1, 2)

	assert.Equal(t, 1, Pairwise(a, b).Cmp(half), "A must beat B")
	assert.Equal(t, 1, Pairwise(b, c).Cmp(half), "B must beat C")
	assert.Equal(t, 1, Pairwise(c, a).Cmp(half), "C must beat A")
}

func TestPairwise_Exact(t *testing.T) {
	a := mustDie(t, 0, 2, 2, 4, 4, 9, 9)
	b := mustDie(t, 1, 1, 1, 6, 6, 8, 8)

	// counted by hand: 2>1 twice ×2, 4>1 twice ×2, 9 beats everything ×2
	assert.Equal(t, big.NewRat(20, 36), Pairwise(a, b))
	assert.Equal(t, big.NewRat(16, 36), Pairwise(b, a))
}

func TestPairwise_TieGap(t *testing.T) {
	cases := []struct {
		a, b *dice.Die
	}{
		{mustDie(t, 0, 1, 1), mustDie(t, 1, 1, 1)},
		{mustDie(t, 0, 1, 2, 3), mustDie(t, 1, 2, 2, 5)},
		{mustDie(t, 0, 2, 2, 4, 4, 9, 9), mustDie(t, 1, 3, 3, 5, 5, 7, 7)},
	}
	for _, tc := range cases {
		sum := new(big.Rat).Add(Pairwise(tc.a, tc.b), Pairwise(tc.b, tc.a))
		assert.LessOrEqual(t, sum.Cmp(big.NewRat(1, 1)), 0)

		ties := 0
		for i := 0; i < tc.a.Len(); i++ {
			for j := 0; j < tc.b.Len(); j++ {
				if tc.a.Face(i) == tc.b.Face(j) {
					ties++
				}
			}
		}
		gap := new(big.Rat).Sub(big.NewRat(1, 1), sum)
		assert.Equal(t, 0, big.NewRat(int64(ties), int64(tc.a.Len()*tc.b.Len())).Cmp(gap),
			"gap to 1 must equal the tie fraction exactly")
	}
}

func TestPairwise_AllTies(t *testing.T) {
	a := mustDie(t, 0, 1, 1)
	b := mustDie(t, 1, 1, 1)
	zero := new(big.Rat)
	assert.Equal(t, 0, Pairwise(a, b).Cmp(zero))
	assert.Equal(t, 0, Pairwise(b, a).Cmp(zero))
}

func TestAverage(t *testing.T) {
	a, b, c := efronTriple(t)
	p := dice.Pool{a, b, c}

	avg, err := Average(a, p)
	require.NoError(t, err)

	want := new(big.Rat).Add(Pairwise(a, b), Pairwise(a, c))
	want.Quo(want, big.NewRat(2, 1))
	assert.Equal(t, want, avg)
}

func TestAverage_InsufficientPool(t *testing.T) {
	a := mustDie(t, 0, 1, 2, 3)

	_, err := Average(a, dice.Pool{a})
	assert.ErrorIs(t, err, ErrInsufficientPool)

	_, err = Average(a, dice.Pool{})
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestMatrix(t *testing.T) {
	a, b, c := efronTriple(t)
	ds := []*dice.Die{a, b, c}

	m := Matrix(nil, ds)
	require.Len(t, m, 3)
	for i := range m {
		require.Len(t, m[i], 3)
	}

	// diagonal is computed like any other cell, not sentineled
	assert.Equal(t, Pairwise(a, a), m[0][0])
	assert.Equal(t, big.NewRat(12, 36), m[0][0])
	assert.Equal(t, Pairwise(a, b), m[0][1])
	assert.Equal(t, Pairwise(c, a), m[2][0])
}

func TestMatrix_ParallelMatchesSequential(t *testing.T) {
	a, b, c := efronTriple(t)
	d := mustDie(t, 3, 0, 0, 0, 0, 0, 10)
	ds := []*dice.Die{a, b, c, d}

	pl := pool.NewPool(3)
	defer pl.TearDown()

	assert.Equal(t, Matrix(nil, ds), Matrix(pl, ds))
}
