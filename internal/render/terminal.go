package render

import (
	"bufio"
	"fmt"
	"io"

	"vcpass/internal/vc"
)

// Terminal prints a half-block preview of r at most cols characters wide.
// Each output line covers two sampled rows; dark samples print as ink.
func Terminal(w io.Writer, r *vc.Raster, cols int) error {
	if cols <= 0 || cols > r.Width {
		cols = r.Width
	}
	step := (r.Width + cols - 1) / cols
	dark := func(x, y int) bool {
		if y >= r.Height {
			return false
		}
		return r.At(x, y) == vc.Black
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < r.Height; y += 2 * step {
		for x := 0; x < r.Width; x += step {
			top, bot := dark(x, y), dark(x, y+step)
			switch {
			case top && bot:
				bw.WriteString("█")
			case top:
				bw.WriteString("▀")
			case bot:
				bw.WriteString("▄")
			default:
				bw.WriteByte(' ')
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}
