package params

const (
	// SecParam is the bit strength of commitment keys.
	SecParam = 256
	SecBytes = SecParam / 8

	// HashBytes is the length of a commitment digest.
	HashBytes = 2 * SecBytes // 64
)
