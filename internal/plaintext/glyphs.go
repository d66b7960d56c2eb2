package plaintext

// Arrow glyphs for the four directions, in vocabulary order.
//
//	0: ↑   1: ↓   2: ←   3: →
//
// Parsing also accepts u/d/l/r, ^ v < > and the digits 0..3. Blank ('_') and
// '.' mean "no direction". Whitespace between glyphs is ignored.

import (
	"fmt"
	"strings"
	"unicode"

	"vcpass/internal/params"
)

// Arrows is indexed by direction.
var Arrows = []rune{'↑', '↓', '←', '→'}

// arrowDecode maps every accepted rune to its direction, or -1 for blank.
var arrowDecode = map[rune]int{
	'↑': 0, '↓': 1, '←': 2, '→': 3,
	'u': 0, 'd': 1, 'l': 2, 'r': 3,
	'U': 0, 'D': 1, 'L': 2, 'R': 3,
	'^': 0, 'v': 1, '<': 2, '>': 3,
	'V': 1,
	'0': 0, '1': 1, '2': 2, '3': 3,
	Blank: -1, '.': -1,
}

// RenderArrows formats a response using arrow glyphs and Blank.
func RenderArrows(response []int) string {
	var sb strings.Builder
	for _, v := range response {
		if v >= 0 && v < len(Arrows) {
			sb.WriteRune(Arrows[v])
		} else {
			sb.WriteRune(Blank)
		}
	}
	return sb.String()
}

// ParseArrows reads a typed response, one glyph per cell.
func ParseArrows(p params.Params, s string) ([]int, error) {
	out := make([]int, 0, p.Cells())
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		v, ok := arrowDecode[r]
		if !ok {
			return nil, fmt.Errorf("invalid response glyph %q", r)
		}
		out = append(out, v)
	}
	if len(out) != p.Cells() {
		return nil, fmt.Errorf("response has %d cells, want %d", len(out), p.Cells())
	}
	return out, nil
}

// Classify turns a swipe vector into a direction. Screen coordinates grow
// downward, so a positive dy is Down.
func Classify(dx, dy float64) params.Direction {
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return params.Right
		}
		return params.Left
	}
	if dy > 0 {
		return params.Down
	}
	return params.Up
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
