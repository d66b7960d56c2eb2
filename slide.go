package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var slideCmd = &cobra.Command{
	Use:   "slide",
	Short: "Render the user's slide",
	RunE:  runSlide,
}

var (
	slideSeeds seedFlags
	slideOut   outputFlags
)

func init() {
	slideSeeds.register(slideCmd, false)
	slideOut.register(slideCmd, "slide.png")
}

func runSlide(cmd *cobra.Command, args []string) error {
	user, _, err := slideSeeds.resolve(false)
	if err != nil {
		return err
	}
	g, p, err := newGenerator()
	if err != nil {
		return err
	}
	grid, err := g.Slide(user)
	if err != nil {
		return err
	}
	r, err := rasterize(p, grid, "slide")
	if err != nil {
		return err
	}
	if err := slideOut.write(r, p, false, "vcpass slide"); err != nil {
		return err
	}
	fmt.Println("fingerprint:", fingerprint(r))
	return nil
}
