package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vcpass/internal/params"
	"vcpass/internal/render"
	"vcpass/internal/vc"
)

// outputFlags control how a raster leaves the program.
type outputFlags struct {
	path    string
	preview bool
	scale   int
}

func (o *outputFlags) register(cmd *cobra.Command, def string) {
	fs := cmd.Flags()
	fs.StringVarP(&o.path, "out", "o", def, "output file (.png or .pbm)")
	fs.BoolVar(&o.preview, "preview", false, "also print a half-block preview on the terminal")
	fs.IntVar(&o.scale, "scale", 0, "PNG upscaling factor (default: render.scale from config)")
}

// write saves r to o.path. Separators are drawn between cells when grid is set
// and the output is a PNG.
func (o *outputFlags) write(r *vc.Raster, p params.Params, grid bool, comment string) error {
	if o.path != "" {
		if err := writeRaster(o.path, r, p, o.scaleOr(cfg.Render.Scale), grid, comment); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "wrote", o.path)
	}
	if o.preview {
		cols, _, err := term.GetSize(int(syscall.Stdout))
		if err != nil || cols <= 0 {
			cols = 80
		}
		return render.Terminal(os.Stdout, r, cols)
	}
	return nil
}

func (o *outputFlags) scaleOr(def int) int {
	if o.scale > 0 {
		return o.scale
	}
	return max(def, 1)
}

func writeRaster(path string, r *vc.Raster, p params.Params, scale int, grid bool, comment string) error {
	if strings.EqualFold(filepath.Ext(path), ".pbm") {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := render.WritePBM(f, r, comment); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	pal, err := cfg.Palette()
	if err != nil {
		return err
	}
	var img image.Image = render.Scale(render.Image(r, pal), scale)
	if grid {
		img = render.DrawGrid(img, p, scale, pal)
	}
	return render.SavePNG(path, img)
}

// fingerprint identifies a slide without revealing its seed.
func fingerprint(r *vc.Raster) string {
	h := sha256.New()
	for _, c := range r.Pix {
		h.Write([]byte{byte(c)})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// rasterize lays out a grid, wrapping the error with what was being built.
func rasterize(p params.Params, g vc.Grid, what string) (*vc.Raster, error) {
	r, err := vc.ToRaster(p, g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return r, nil
}
