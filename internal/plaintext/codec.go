package plaintext

import (
	"crypto/subtle"
	"fmt"

	"vcpass/internal/params"
)

// Blank stands for a cell that carries no direction.
const Blank = '_'

// Encode renders the secret symbols as the answer string the user is asked to
// reproduce.
//
// Parameters:
//   - p: the parameter set the symbols were drawn for
//   - symbols: one vocabulary index per cell, in cell order
//
// Behavior:
//  1. Validate the length against p.Cells() and every symbol against [0, VocSize).
//  2. Emit the decimal digit of each distinguished symbol (0..Distinguished).
//  3. Emit Blank for every plain noise symbol.
//
// Returns:
//   - the answer string, one character per cell
//   - error if the length or any symbol is out of range
func Encode(p params.Params, symbols []int) (string, error) {
	if len(symbols) != p.Cells() {
		return "", fmt.Errorf("plaintext has %d symbols, want %d", len(symbols), p.Cells())
	}
	out := make([]byte, len(symbols))
	for i, s := range symbols {
		switch {
		case s < 0 || s >= p.VocSize:
			return "", fmt.Errorf("symbol %d at cell %d outside vocabulary [0,%d)", s, i, p.VocSize)
		case p.IsDistinguished(s):
			out[i] = byte('0' + s)
		default:
			out[i] = Blank
		}
	}
	return string(out), nil
}

// Decode parses an answer string into a response: the direction index for a
// digit and -1 for Blank.
func Decode(p params.Params, s string) ([]int, error) {
	if len(s) != p.Cells() {
		return nil, fmt.Errorf("answer has %d characters, want %d", len(s), p.Cells())
	}
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == Blank:
			out[i] = -1
		case c >= '0' && int(c-'0') <= p.Distinguished:
			out[i] = int(c - '0')
		default:
			return nil, fmt.Errorf("invalid answer character %q at cell %d", c, i)
		}
	}
	return out, nil
}

// NewResponse returns an empty response: every cell unanswered.
func NewResponse(p params.Params) []int {
	out := make([]int, p.Cells())
	for i := range out {
		out[i] = -1
	}
	return out
}

// Expected projects secret symbols onto the response a correct user gives.
func Expected(p params.Params, secret []int) []int {
	out := make([]int, len(secret))
	for i, s := range secret {
		if p.IsDistinguished(s) {
			out[i] = s
		} else {
			out[i] = -1
		}
	}
	return out
}

// Check reports whether response answers secret. Symbols outside the
// vocabulary and answers outside [-1, Distinguished] never match. The
// comparison time does not depend on where the first wrong cell is.
func Check(p params.Params, secret, response []int) bool {
	if len(secret) != len(response) {
		return false
	}
	for i := range secret {
		if secret[i] < 0 || secret[i] >= p.VocSize {
			return false
		}
		if response[i] < -1 || response[i] > p.Distinguished {
			return false
		}
	}
	want := Expected(p, secret)
	a := make([]byte, len(want))
	b := make([]byte, len(response))
	for i := range want {
		a[i] = byte(want[i] + 1)
		b[i] = byte(response[i] + 1)
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
