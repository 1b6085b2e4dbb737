// Package dice defines the immutable die type and the identity-tracked pool
// the game plays over.
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyDie   = errors.New("dice: die has no faces")
	ErrBadFace    = errors.New("dice: face is not a non-negative integer")
	ErrTooFewDice = errors.New("dice: at least 3 dice are required")
	ErrUnevenDice = errors.New("dice: all dice must have the same number of faces")
)

// Die is an ordered, immutable sequence of non-negative integer faces.
//
// Each die carries a stable identifier assigned at construction. Two dice may
// have identical face values, so exclusion from a pool goes by identifier,
// never by value.
type Die struct {
	id    int
	faces []int
}

// New validates faces and constructs a die with the given identifier.
func New(id int, faces []int) (*Die, error) {
	if len(faces) == 0 {
		return nil, ErrEmptyDie
	}
	for _, f := range faces {
		if f < 0 {
			return nil, fmt.Errorf("%w: %d", ErrBadFace, f)
		}
	}
	d := &Die{id: id, faces: make([]int, len(faces))}
	copy(d.faces, faces)
	return d, nil
}

// ID returns the die's stable identifier.
func (d *Die) ID() int { return d.id }

// Len returns the number of faces.
func (d *Die) Len() int { return len(d.faces) }

// Face returns the face value at index i.
func (d *Die) Face(i int) int { return d.faces[i] }

// Faces returns a copy of the face values.
func (d *Die) Faces() []int {
	faces := make([]int, len(d.faces))
	copy(faces, d.faces)
	return faces
}

// String renders the die the way it was supplied on the command line.
func (d *Die) String() string {
	parts := make([]string, len(d.faces))
	for i, f := range d.faces {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, ",")
}

// Parse builds the die set from command line arguments, one die per argument,
// faces as a comma-separated list.
//
// The set is validated once here and never mutated afterwards: at least 3
// dice, every die non-empty, every face a non-negative integer, and all dice
// with the same face count so rolls share one index range. Identifiers are
// assigned from argument position.
func Parse(args []string) ([]*Die, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewDice, len(args))
	}
	dice := make([]*Die, 0, len(args))
	for i, arg := range args {
		var faces []int
		for _, part := range strings.Split(arg, ",") {
			f, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("%w: die %d: %q", ErrBadFace, i+1, part)
			}
			if f < 0 {
				return nil, fmt.Errorf("%w: die %d: %d", ErrBadFace, i+1, f)
			}
			faces = append(faces, f)
		}
		d, err := New(i, faces)
		if err != nil {
			return nil, fmt.Errorf("die %d: %w", i+1, err)
		}
		dice = append(dice, d)
	}
	for _, d := range dice[1:] {
		if d.Len() != dice[0].Len() {
			return nil, fmt.Errorf("%w: die %d has %d faces, die 1 has %d",
				ErrUnevenDice, d.ID()+1, d.Len(), dice[0].Len())
		}
	}
	return dice, nil
}
