package vc

import "vcpass/internal/params"

// Color is a two-level pixel value.
type Color uint8

const (
	Black Color = iota
	White
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Cell is one cell's real pixels in row-major order, CRPix() wide.
type Cell []Color

// Grid holds the cells in ascending order, GridX per row.
type Grid []Cell

// Raster is a DispX × DispY image in row-major order.
type Raster struct {
	Width, Height int
	Pix           []Color
}

// At returns the pixel at column x, row y.
func (r *Raster) At(x, y int) Color { return r.Pix[y*r.Width+x] }

// Locate maps raster row r, column c to a cell index and an offset inside it.
func Locate(p params.Params, r, c int) (cell, offset int) {
	crpix, ccpix := p.CRPix(), p.CCPix()
	cell = (r/ccpix)*p.GridX + c/crpix
	offset = (r%ccpix)*crpix + c%crpix
	return cell, offset
}

// Position is the inverse of Locate.
func Position(p params.Params, cell, offset int) (r, c int) {
	crpix, ccpix := p.CRPix(), p.CCPix()
	r = (cell/p.GridX)*ccpix + offset/crpix
	c = (cell%p.GridX)*crpix + offset%crpix
	return r, c
}

// ToRaster lays the grid's cells out on the display.
func ToRaster(p params.Params, g Grid) (*Raster, error) {
	if len(g) != p.Cells() {
		return nil, contractf("grid has %d cells, want %d", len(g), p.Cells())
	}
	for i, cell := range g {
		if len(cell) != p.CellPixels() {
			return nil, contractf("cell %d has %d pixels, want %d", i, len(cell), p.CellPixels())
		}
	}

	out := &Raster{Width: p.DispX, Height: p.DispY, Pix: make([]Color, p.DispX*p.DispY)}
	for r := 0; r < p.DispY; r++ {
		for c := 0; c < p.DispX; c++ {
			cell, off := Locate(p, r, c)
			out.Pix[r*p.DispX+c] = g[cell][off]
		}
	}
	return out, nil
}

// Stack overlays two transparencies: a pixel is white only where both are.
func Stack(a, b *Raster) (*Raster, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return nil, contractf("cannot stack %d×%d onto %d×%d", b.Width, b.Height, a.Width, a.Height)
	}
	out := &Raster{Width: a.Width, Height: a.Height, Pix: make([]Color, len(a.Pix))}
	for i := range a.Pix {
		if a.Pix[i] == White && b.Pix[i] == White {
			out.Pix[i] = White
		} else {
			out.Pix[i] = Black
		}
	}
	return out, nil
}
