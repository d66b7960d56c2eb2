package vc

import (
	"bytes"

	"github.com/32bitkid/bitreader"

	"vcpass/internal/params"
)

// MapRow expands one VC row of keystream bits into PRY real lines of
// CRVPix()·PRX pixels each.
//
// Every line starts from a (c1, c2) pair: (black, white) in the upper half of
// the VC pixel, (white, black) in the lower half. Each real pixel is c1 for a
// set bit and c2 for a clear one, and the pair swaps after every pixel.
func MapRow(p params.Params, row []byte) ([]Color, error) {
	return appendRow(make([]Color, 0, p.PRY*p.CRPix()), p, row)
}

func appendRow(dst []Color, p params.Params, row []byte) ([]Color, error) {
	if len(row) < p.RowBytes() {
		return nil, contractf("row has %d bytes, want %d", len(row), p.RowBytes())
	}
	width := p.CRVPix()
	for py := 0; py < p.PRY; py++ {
		c1, c2 := Black, White
		if py >= p.PRY/2 {
			c1, c2 = White, Black
		}
		br := bitreader.NewReader(bytes.NewReader(row))
		for b := 0; b < width; b++ {
			bit, err := br.Read1()
			if err != nil {
				return nil, err
			}
			for px := 0; px < p.PRX; px++ {
				if bit {
					dst = append(dst, c1)
				} else {
					dst = append(dst, c2)
				}
				c1, c2 = c2, c1
			}
		}
	}
	return dst, nil
}

// RowBits recovers the keystream bits of a VC row from its first real line.
// Trailing bits of the last byte are zero.
func RowBits(p params.Params, line []Color) ([]byte, error) {
	width := p.CRVPix()
	if len(line) < width*p.PRX {
		return nil, contractf("line has %d pixels, want %d", len(line), width*p.PRX)
	}
	// with a single line per VC pixel, line 0 is already the lower half
	first, second := Black, White
	if p.PRY/2 == 0 {
		first, second = White, Black
	}
	out := make([]byte, p.RowBytes())
	for b := 0; b < width; b++ {
		k := b * p.PRX
		set := first
		if k%2 == 1 {
			set = second
		}
		if line[k] == set {
			out[b/8] |= 0x80 >> (b % 8)
		}
	}
	return out, nil
}
