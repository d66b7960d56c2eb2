package vc

import "vcpass/internal/params"

// spliceMask marks the bit positions of row j (MSB first) that carry the
// slide's bits for direction d in an n×n cell.
//
//	up     rows below the middle, n-j <= p < j
//	down   rows above the middle, j <= p < n-j
//	left   p >= n-j above the middle, p >= j below
//	right  p < j above the middle, p < n-j below
func spliceMask(d params.Direction, j, n, rowBytes int) []byte {
	m := make([]byte, rowBytes)
	upper := j < n/2
	switch d {
	case params.Up:
		if j > n/2 {
			fillBits(m, n-j, j)
		}
	case params.Down:
		if upper {
			fillBits(m, j, n-j)
		}
	case params.Left:
		if upper {
			fillBits(m, n-j, n)
		} else {
			fillBits(m, j, n)
		}
	case params.Right:
		if upper {
			fillBits(m, 0, j)
		} else {
			fillBits(m, 0, n-j)
		}
	}
	return m
}

// fillBits sets bits [lo, hi) of m.
func fillBits(m []byte, lo, hi int) {
	if lo >= hi {
		return
	}
	lix, rix := lo/8, (hi-1)/8
	lbm := byte(0xFF >> (lo % 8))
	rbm := byte(0xFF << (7 - (hi-1)%8))
	if lix == rix {
		m[lix] |= lbm & rbm
		return
	}
	m[lix] |= lbm
	for k := lix + 1; k < rix; k++ {
		m[k] = 0xFF
	}
	m[rix] |= rbm
}

// splice copies the masked bits of srow into vrow.
func splice(vrow, srow []byte, d params.Direction, j, n int) {
	m := spliceMask(d, j, n, len(vrow))
	for k := range vrow {
		vrow[k] = vrow[k]&^m[k] | srow[k]&m[k]
	}
}

// Spliced reports whether bit p of VC row j in an n×n cell carries the
// slide's bit for direction d.
func Spliced(d params.Direction, j, p, n int) bool {
	if p < 0 || p >= n || j < 0 || j >= n {
		return false
	}
	m := spliceMask(d, j, n, (n+7)/8)
	return m[p/8]&(0x80>>(p%8)) != 0
}
