package dice

// Pool is the fixed die set a game is played over.
type Pool []*Die

// ByID returns the die with the given identifier, or nil if absent.
func (p Pool) ByID(id int) *Die {
	for _, d := range p {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// Without returns a new pool excluding the identified die. Exclusion goes by
// identifier: a die with equal face values but a different identifier stays.
func (p Pool) Without(id int) Pool {
	out := make(Pool, 0, len(p))
	for _, d := range p {
		if d.ID() != id {
			out = append(out, d)
		}
	}
	return out
}
