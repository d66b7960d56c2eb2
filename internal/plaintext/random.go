// Package plaintext chooses the secret symbols of a challenge and converts
// between symbols, answer strings and user responses.
package plaintext

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"vcpass/internal/params"
)

// Random draws one symbol per cell uniformly from [0, VocSize), redrawing the
// whole assignment until at least minDistinguished cells carry a direction.
func Random(p params.Params, minDistinguished int) ([]int, error) {
	if minDistinguished > p.Cells() {
		return nil, fmt.Errorf("cannot place %d directions in %d cells", minDistinguished, p.Cells())
	}
	voc := big.NewInt(int64(p.VocSize))
	out := make([]int, p.Cells())
	for {
		n := 0
		for i := range out {
			v, err := rand.Int(rand.Reader, voc)
			if err != nil {
				return nil, fmt.Errorf("read random: %w", err)
			}
			out[i] = int(v.Int64())
			if p.IsDistinguished(out[i]) {
				n++
			}
		}
		if n >= minDistinguished {
			return out, nil
		}
	}
}

// Uniform assigns sym to every cell.
func Uniform(p params.Params, sym int) []int {
	out := make([]int, p.Cells())
	for i := range out {
		out[i] = sym
	}
	return out
}
