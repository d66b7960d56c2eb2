// Package render turns rasters into images, Netpbm files and terminal previews.
package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"vcpass/internal/vc"
)

// GridAlpha is how strongly separator lines cover the pixels beneath them.
const GridAlpha = 0xC0 / 255.0

// Palette maps the two raster colors and the grid separator to display colors.
type Palette struct {
	Black colorful.Color
	White colorful.Color
	Grid  colorful.Color
}

// DefaultPalette is black on white with yellow separators.
func DefaultPalette() Palette {
	return Palette{
		Black: colorful.Color{R: 0, G: 0, B: 0},
		White: colorful.Color{R: 1, G: 1, B: 1},
		Grid:  colorful.Color{R: 1, G: 1, B: 0},
	}
}

// ParsePalette reads "#rrggbb" colors. Empty strings keep the default.
func ParsePalette(black, white, grid string) (Palette, error) {
	pal := DefaultPalette()
	for _, f := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"black", black, &pal.Black},
		{"white", white, &pal.White},
		{"grid", grid, &pal.Grid},
	} {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s color %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return pal, nil
}

// Colors returns the image palette: index 0 black, index 1 white.
func (p Palette) Colors() color.Palette {
	return color.Palette{toRGBA(p.Black), toRGBA(p.White)}
}

// Of returns the display color of a raster pixel.
func (p Palette) Of(c vc.Color) color.RGBA {
	if c == vc.Black {
		return toRGBA(p.Black)
	}
	return toRGBA(p.White)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// blend mixes the grid color over base.
func (p Palette) blend(base color.Color) color.RGBA {
	c, _ := colorful.MakeColor(base)
	return toRGBA(c.BlendRgb(p.Grid, GridAlpha))
}
