package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vcpass/internal/seed"
	"vcpass/internal/ui"
)

// seedFlags are the ways a command can receive seeds.
type seedFlags struct {
	user   string
	vocab  string
	pair   string
	prompt bool
	mask   bool
}

func (f *seedFlags) register(cmd *cobra.Command, vocab bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.user, "user", "", "user (slide) seed")
	if vocab {
		fs.StringVar(&f.vocab, "vocab", "", "vocabulary seed")
	}
	fs.StringVar(&f.pair, "pair", "", "encoded seed pair as printed by 'vcpass seeds'")
	fs.BoolVar(&f.prompt, "prompt", false, "securely prompt for missing seeds (no echo)")
	fs.BoolVar(&f.mask, "mask", true, "with --prompt, show * while typing")
}

// resolve returns the seeds from --pair, the flags or the prompt, in that order.
func (f *seedFlags) resolve(needVocab bool) (user, vocab string, err error) {
	user, vocab = f.user, f.vocab
	if f.pair != "" {
		if user, vocab, err = seed.DecodePair(f.pair); err != nil {
			return "", "", fmt.Errorf("--pair: %w", err)
		}
	}
	if f.prompt && user == "" {
		if user, err = ui.PromptSeed("user", f.mask, false); err != nil {
			return "", "", err
		}
	}
	if f.prompt && needVocab && vocab == "" {
		if vocab, err = ui.PromptSeed("vocabulary", f.mask, false); err != nil {
			return "", "", err
		}
	}
	if err := seed.Validate(user); err != nil {
		return "", "", fmt.Errorf("user seed: %w (use --user, --pair or --prompt)", err)
	}
	if needVocab {
		if err := seed.Validate(vocab); err != nil {
			return "", "", fmt.Errorf("vocabulary seed: %w (use --vocab, --pair or --prompt)", err)
		}
	}
	return user, vocab, nil
}

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Generate or encode a seed pair",
	Long: `Generate a fresh random seed pair, or encode given seeds, as a single
length-prefixed string that other commands accept with --pair.`,
	RunE: runSeeds,
}

var (
	seedsIn    seedFlags
	seedsBytes int
	seedsQR    bool
	seedsQRPNG string
	seedsScale int
)

func init() {
	fs := seedsCmd.Flags()
	fs.StringVar(&seedsIn.user, "user", "", "user seed (default: random)")
	fs.StringVar(&seedsIn.vocab, "vocab", "", "vocabulary seed (default: random)")
	fs.BoolVar(&seedsIn.prompt, "prompt", false, "securely prompt for both seeds, twice each")
	fs.BoolVar(&seedsIn.mask, "mask", true, "with --prompt, show * while typing")
	fs.IntVar(&seedsBytes, "bytes", 20, "random bytes per generated seed")
	fs.BoolVar(&seedsQR, "qr", false, "print the pair as a QR code on the terminal")
	fs.StringVar(&seedsQRPNG, "qr-png", "", "write the pair as a QR code PNG to this file")
	fs.IntVar(&seedsScale, "qr-scale", 8, "pixels per QR module for --qr-png")
}

func runSeeds(cmd *cobra.Command, args []string) error {
	user, vocab := seedsIn.user, seedsIn.vocab
	var err error
	if seedsIn.prompt {
		if user, err = ui.PromptSeed("user", seedsIn.mask, true); err != nil {
			return err
		}
		if vocab, err = ui.PromptSeed("vocabulary", seedsIn.mask, true); err != nil {
			return err
		}
	}
	if user == "" {
		if user, err = seed.Generate(seedsBytes); err != nil {
			return err
		}
	}
	if vocab == "" {
		if vocab, err = seed.Generate(seedsBytes); err != nil {
			return err
		}
	}

	pair, err := seed.EncodePair(user, vocab)
	if err != nil {
		return err
	}
	fmt.Println(pair)

	if seedsQR {
		seed.PrintQR(os.Stdout, pair)
	}
	if seedsQRPNG != "" {
		png, err := seed.QRPNG(pair, seedsScale)
		if err != nil {
			return err
		}
		if err := os.WriteFile(seedsQRPNG, png, 0600); err != nil {
			return fmt.Errorf("write %s: %w", seedsQRPNG, err)
		}
		fmt.Fprintln(os.Stderr, ui.Style("QR written to "+seedsQRPNG, ui.Gray))
	}
	return nil
}
