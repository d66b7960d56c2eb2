package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"vcpass/internal/params"
	"vcpass/internal/vc"
)

// Image converts r to a two-color paletted image.
func Image(r *vc.Raster, pal Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, r.Width, r.Height), pal.Colors())
	for i, c := range r.Pix {
		if c == vc.White {
			img.Pix[i] = 1
		}
	}
	return img
}

// Scale enlarges img k times with nearest-neighbour sampling, so every
// raster pixel stays a sharp k×k block.
func Scale(img image.Image, k int) image.Image {
	if k <= 1 {
		return img
	}
	b := img.Bounds()
	rect := image.Rect(0, 0, b.Dx()*k, b.Dy()*k)
	var dst draw.Image
	if p, ok := img.(*image.Paletted); ok {
		dst = image.NewPaletted(rect, p.Palette)
	} else {
		dst = image.NewRGBA(rect)
	}
	xdraw.NearestNeighbor.Scale(dst, rect, img, b, xdraw.Src, nil)
	return dst
}

// DrawGrid returns a copy of img with separators between cells. img is the
// raster scaled by k. A separator covers the last raster pixel of one cell and
// the first of the next, blended over the pixels beneath it. The outer edges
// are left alone.
func DrawGrid(img image.Image, p params.Params, k int, pal Palette) *image.RGBA {
	if k < 1 {
		k = 1
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	cw, ch := p.CRPix()*k, p.CCPix()*k
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			onV := (x%cw < k && x >= cw) || (x%cw >= cw-k && x < b.Dx()-k)
			onH := (y%ch < k && y >= ch) || (y%ch >= ch-k && y < b.Dy()-k)
			if onV || onH {
				out.SetRGBA(x, y, pal.blend(out.At(x, y)))
			}
		}
	}
	return out
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
