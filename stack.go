package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vcpass/internal/ledger"
	"vcpass/internal/plaintext"
	"vcpass/internal/vc"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Overlay the slide on a challenge",
	Long: `Render what the user sees with the slide laid over the challenge. The
secret comes from --plain, from a recorded challenge (--id) or is drawn at
random.`,
	RunE: runStack,
}

var (
	stackSeeds seedFlags
	stackOut   outputFlags
	stackPlain string
	stackID    int64
)

func init() {
	stackSeeds.register(stackCmd, true)
	stackOut.register(stackCmd, "stacked.png")
	stackCmd.Flags().StringVar(&stackPlain, "plain", "", "comma-separated symbols, one per cell")
	stackCmd.Flags().Int64Var(&stackID, "id", 0, "recorded challenge id to stack")
}

func runStack(cmd *cobra.Command, args []string) error {
	user, vocab, err := stackSeeds.resolve(true)
	if err != nil {
		return err
	}
	g, p, err := newGenerator()
	if err != nil {
		return err
	}

	var plain []int
	switch {
	case stackID != 0:
		l, err := ledger.Open(cfg.LedgerDB, p)
		if err != nil {
			return err
		}
		e, err := l.Get(stackID)
		l.Close()
		if err != nil {
			return err
		}
		plain = e.Secret
	case stackPlain != "":
		if plain, err = parseSymbols(p, stackPlain); err != nil {
			return err
		}
	default:
		if plain, err = plaintext.Random(p, cfg.Challenge.MinDistinguished); err != nil {
			return err
		}
	}

	slide, err := g.Slide(user)
	if err != nil {
		return err
	}
	grid, err := generate(cmd.Context(), g, vocab, user, plain)
	if err != nil {
		return err
	}
	sr, err := rasterize(p, slide, "slide")
	if err != nil {
		return err
	}
	cr, err := rasterize(p, grid, "challenge")
	if err != nil {
		return err
	}
	st, err := vc.Stack(sr, cr)
	if err != nil {
		return err
	}
	if err := stackOut.write(st, p, true, "vcpass stacked"); err != nil {
		return err
	}
	if stackID == 0 && stackPlain == "" {
		fmt.Println("secret:", plaintext.RenderArrows(plaintext.Expected(p, plain)))
	}
	return nil
}
