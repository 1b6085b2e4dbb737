package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diceproto/fairdice/pkg/commitment"
	"github.com/diceproto/fairdice/pkg/dice"
)

func TestExchange_Protocol(t *testing.T) {
	e, err := NewExchange("first move", 1)
	require.NoError(t, err)
	assert.Equal(t, "first move", e.Purpose())
	assert.EqualValues(t, 1, e.RangeSize())

	digest := e.Digest()
	require.NoError(t, digest.Validate())

	out, err := e.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, digest, out.Digest)
	assert.EqualValues(t, 1, out.Counterpart)
	assert.Equal(t, (out.Secret+1)%2, out.Result)

	// the revealed secret and key must reproduce the published digest
	assert.True(t, commitment.Verify(out.Digest, out.Secret, out.RangeSize, out.Key))
}

func TestExchange_OutOfRange(t *testing.T) {
	e, err := NewExchange("roll", 5)
	require.NoError(t, err)

	_, err = e.Resolve(6)
	assert.ErrorIs(t, err, commitment.ErrOutOfRange)
}

func TestExchange_InvalidRange(t *testing.T) {
	_, err := NewExchange("bad", -1)
	assert.ErrorIs(t, err, commitment.ErrInvalidRange)
}

func TestChooseBest(t *testing.T) {
	weak, err := dice.New(0, []int{1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	strong, err := dice.New(1, []int{9, 9, 9, 9, 9, 9})
	require.NoError(t, err)
	middle, err := dice.New(2, []int{5, 5, 5, 5, 5, 5})
	require.NoError(t, err)

	best, err := ChooseBest(dice.Pool{weak, strong, middle})
	require.NoError(t, err)
	assert.Same(t, strong, best)
}

func TestChooseBest_TieBreak(t *testing.T) {
	a, err := dice.New(0, []int{1, 2, 3})
	require.NoError(t, err)
	b, err := dice.New(1, []int{1, 2, 3})
	require.NoError(t, err)
	c, err := dice.New(2, []int{1, 2, 3})
	require.NoError(t, err)

	best, err := ChooseBest(dice.Pool{a, b, c})
	require.NoError(t, err)
	assert.Same(t, a, best, "equal averages must resolve to the lowest id")
}

func TestChooseBest_SingleDie(t *testing.T) {
	only, err := dice.New(3, []int{1, 2, 3})
	require.NoError(t, err)

	best, err := ChooseBest(dice.Pool{only})
	require.NoError(t, err)
	assert.Same(t, only, best)

	_, err = ChooseBest(dice.Pool{})
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, UserWins, Compare(8, 3))
	assert.Equal(t, ComputerWins, Compare(3, 8))
	assert.Equal(t, Tie, Compare(5, 5))

	assert.Equal(t, "user", UserWins.String())
	assert.Equal(t, "computer", ComputerWins.String())
	assert.Equal(t, "tie", Tie.String())
}
