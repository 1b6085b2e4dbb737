package cli

import (
	"io"
	"math/big"

	"github.com/markkurossi/tabulate"

	"github.com/diceproto/fairdice/pkg/dice"
)

// renderMatrix prints the win-probability table: entry [row][col] is the
// probability that the row die beats the column die. Probabilities are exact
// rationals; rounding to four decimals happens only here, for display.
func renderMatrix(w io.Writer, ds []*dice.Die, matrix [][]*big.Rat) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("User die v").SetAlign(tabulate.ML)
	for _, d := range ds {
		tab.Header(d.String()).SetAlign(tabulate.MR)
	}
	for i, d := range ds {
		row := tab.Row()
		row.Column(d.String())
		for j, p := range matrix[i] {
			cell := p.FloatString(4)
			if i == j {
				// same die on both sides, kept for completeness
				cell = "- (" + cell + ")"
			}
			row.Column(cell)
		}
	}
	tab.Print(w)
}
