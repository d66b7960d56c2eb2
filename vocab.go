package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vcpass/internal/params"
	"vcpass/internal/plaintext"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Render one challenge per vocabulary symbol",
	Long: `Render, for every vocabulary symbol, the challenge in which every cell
carries that symbol. Stacked on the slide, symbols 0-3 show an arrow in every
cell and the rest show noise.`,
	RunE: runVocab,
}

var (
	vocabSeeds seedFlags
	vocabDir   string
	vocabExt   string
)

func init() {
	vocabSeeds.register(vocabCmd, true)
	vocabCmd.Flags().StringVarP(&vocabDir, "dir", "d", ".", "output directory")
	vocabCmd.Flags().StringVar(&vocabExt, "format", "png", "output format: png or pbm")
}

func runVocab(cmd *cobra.Command, args []string) error {
	user, vocab, err := vocabSeeds.resolve(true)
	if err != nil {
		return err
	}
	if vocabExt != "png" && vocabExt != "pbm" {
		return fmt.Errorf("--format must be png or pbm, got %q", vocabExt)
	}
	g, p, err := newGenerator()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(vocabDir, 0700); err != nil {
		return err
	}

	for sym := 0; sym < p.VocSize; sym++ {
		grid, err := generate(cmd.Context(), g, vocab, user, plaintext.Uniform(p, sym))
		if err != nil {
			return fmt.Errorf("symbol %d: %w", sym, err)
		}
		r, err := rasterize(p, grid, fmt.Sprintf("symbol %d", sym))
		if err != nil {
			return err
		}
		name := filepath.Join(vocabDir, fmt.Sprintf("vocab-%d.%s", sym, vocabExt))
		if err := writeRaster(name, r, p, max(cfg.Render.Scale, 1), true, symbolLabel(p, sym)); err != nil {
			return err
		}
		fmt.Println(name)
	}
	return nil
}

func symbolLabel(p params.Params, sym int) string {
	if p.IsDistinguished(sym) {
		return fmt.Sprintf("vcpass vocabulary %d (%v)", sym, params.Direction(sym))
	}
	return fmt.Sprintf("vcpass vocabulary %d (noise)", sym)
}
