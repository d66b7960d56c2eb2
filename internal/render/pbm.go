package render

import (
	"bufio"
	"fmt"
	"io"

	"vcpass/internal/vc"
)

// pbmLineMax is the longest line plain PBM allows.
const pbmLineMax = 70

// WritePBM writes r as a plain (P1) Netpbm bitmap, 1 for black.
func WritePBM(w io.Writer, r *vc.Raster, comment string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "P1")
	if comment != "" {
		fmt.Fprintf(bw, "# %s\n", comment)
	}
	fmt.Fprintf(bw, "%d %d\n", r.Width, r.Height)

	for y := 0; y < r.Height; y++ {
		n := 0
		for x := 0; x < r.Width; x++ {
			if n+2 > pbmLineMax {
				bw.WriteByte('\n')
				n = 0
			} else if n > 0 {
				bw.WriteByte(' ')
				n++
			}
			if r.At(x, y) == vc.Black {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
			n++
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pbm: %w", err)
	}
	return nil
}
