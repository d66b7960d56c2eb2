// Package params holds the geometry of a slide/challenge and the vocabulary
// layout shared by every generator component.
//
// Geometry
// - The display (DispX × DispY real pixels) is split into GridX × GridY cells.
// - Every visual-cryptography pixel (VC pixel) covers PRX × PRY real pixels.
// - A cell therefore holds CRVPix() × CCVPix() VC pixels, i.e. CRPix() × CCPix()
//   real pixels.
//
// Vocabulary
// - Symbols 0..Distinguished are the four directions (Up, Down, Left, Right).
// - Symbols Distinguished+1..VocSize-1 are plain noise.
//
// The directional splice only works for square VC cells, so New and Validate
// reject any geometry with CRVPix() != CCVPix().
package params

import (
	"errors"
	"fmt"
)

// Direction is a distinguished vocabulary symbol.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists the distinguished symbols in vocabulary order.
var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Params describes one generator configuration.
type Params struct {
	GridX, GridY  int // cells per row / column
	PRX, PRY      int // real pixels per VC pixel
	DispX, DispY  int // display size in real pixels
	VocSize       int // number of vocabulary symbols per cell
	Distinguished int // last index of the directional symbols
}

// ErrInvalid is matched by every error returned from Validate.
var ErrInvalid = errors.New("invalid parameters")

// Default returns the 4×4 grid, 2×2 pixel ratio, 320×320 display and
// six-symbol vocabulary used by the printed slides.
func Default() Params {
	return Params{
		GridX:         4,
		GridY:         4,
		PRX:           2,
		PRY:           2,
		DispX:         320,
		DispY:         320,
		VocSize:       6,
		Distinguished: 3,
	}
}

// New returns p after validating it.
func New(p Params) (Params, error) {
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks divisibility, squareness of VC cells and the vocabulary layout.
func (p Params) Validate() error {
	if p.GridX <= 0 || p.GridY <= 0 || p.PRX <= 0 || p.PRY <= 0 || p.DispX <= 0 || p.DispY <= 0 {
		return fmt.Errorf("%w: all dimensions must be positive", ErrInvalid)
	}
	if p.DispX%(p.GridX*p.PRX) != 0 {
		return fmt.Errorf("%w: display width %d not divisible by grid %d × pixel ratio %d", ErrInvalid, p.DispX, p.GridX, p.PRX)
	}
	if p.DispY%(p.GridY*p.PRY) != 0 {
		return fmt.Errorf("%w: display height %d not divisible by grid %d × pixel ratio %d", ErrInvalid, p.DispY, p.GridY, p.PRY)
	}
	if p.CRVPix() != p.CCVPix() {
		return fmt.Errorf("%w: cells must be square in VC pixels, got %d×%d", ErrInvalid, p.CRVPix(), p.CCVPix())
	}
	if p.Distinguished != len(Directions)-1 {
		return fmt.Errorf("%w: expected %d distinguished symbols, got %d", ErrInvalid, len(Directions), p.Distinguished+1)
	}
	if p.VocSize <= p.Distinguished {
		return fmt.Errorf("%w: vocabulary size %d must exceed %d", ErrInvalid, p.VocSize, p.Distinguished)
	}
	return nil
}

// Cells is the number of cells in the grid.
func (p Params) Cells() int { return p.GridX * p.GridY }

// CRVPix is the width of a cell in VC pixels.
func (p Params) CRVPix() int { return p.DispX / p.GridX / p.PRX }

// CCVPix is the height of a cell in VC pixels.
func (p Params) CCVPix() int { return p.DispY / p.GridY / p.PRY }

// CRPix is the width of a cell in real pixels.
func (p Params) CRPix() int { return p.DispX / p.GridX }

// CCPix is the height of a cell in real pixels.
func (p Params) CCPix() int { return p.DispY / p.GridY }

// CellPixels is the length of one cell's pixel vector.
func (p Params) CellPixels() int { return p.CRPix() * p.CCPix() }

// RowBytes is the number of keystream bytes drawn per VC row.
func (p Params) RowBytes() int { return (p.CRVPix() + 7) / 8 }

// IsDistinguished reports whether symbol carries a direction.
func (p Params) IsDistinguished(symbol int) bool {
	return symbol >= 0 && symbol <= p.Distinguished
}

// SlideBytes is the user keystream consumption of one slide.
func (p Params) SlideBytes() int { return p.Cells() * p.CCVPix() * p.RowBytes() }

// ChallengeVocabBytes is the vocabulary keystream consumption of one challenge.
func (p Params) ChallengeVocabBytes() int { return p.SlideBytes() * p.VocSize }
