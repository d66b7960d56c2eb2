package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vcpass/internal/ledger"
	"vcpass/internal/params"
	"vcpass/internal/plaintext"
	"vcpass/internal/ui"
	"vcpass/internal/vc"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Draw a secret, render its challenge and record it",
	Long: `Draw a random secret (or use --plain), render the challenge image for it
and record the secret in the ledger. The printed id is what 'vcpass verify'
checks a response against.`,
	RunE: runChallenge,
}

var (
	challengeSeeds  seedFlags
	challengeOut    outputFlags
	challengePlain  string
	challengeRecord bool
	challengeAnswer bool
)

func init() {
	challengeSeeds.register(challengeCmd, true)
	challengeOut.register(challengeCmd, "challenge.png")
	fs := challengeCmd.Flags()
	fs.StringVar(&challengePlain, "plain", "", "comma-separated symbols, one per cell (default: random)")
	fs.BoolVar(&challengeRecord, "record", true, "record the secret in the ledger")
	fs.BoolVar(&challengeAnswer, "show-answer", false, "print the expected answer (testing only)")
}

// parseSymbols reads "0,4,4,..." into one symbol per cell.
func parseSymbols(p params.Params, s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("--plain: %q is not a symbol", f)
		}
		out = append(out, v)
	}
	if len(out) != p.Cells() {
		return nil, fmt.Errorf("--plain: got %d symbols, want %d", len(out), p.Cells())
	}
	return out, nil
}

// generate runs a challenge, showing per-cell progress on an interactive
// stderr. Ctrl-C cancels at the next cell.
func generate(ctx context.Context, g *vc.Generator, vocab, user string, plain []int) (vc.Grid, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := g.NewChallenge(ctx, vocab, user, plain)
	tty := term.IsTerminal(int(syscall.Stderr))
	for i := range run.Progress() {
		if tty {
			fmt.Fprintf(os.Stderr, "\rcell %d/%d", i+1, len(plain))
		}
	}
	if tty {
		fmt.Fprint(os.Stderr, "\r\x1b[K")
	}

	res := run.Result()
	switch res.Status {
	case vc.StatusOK:
		return res.Grid, nil
	case vc.StatusCanceled:
		return nil, fmt.Errorf("challenge canceled")
	default:
		return nil, res.Err
	}
}

func runChallenge(cmd *cobra.Command, args []string) error {
	user, vocab, err := challengeSeeds.resolve(true)
	if err != nil {
		return err
	}
	g, p, err := newGenerator()
	if err != nil {
		return err
	}

	var plain []int
	if challengePlain != "" {
		plain, err = parseSymbols(p, challengePlain)
	} else {
		plain, err = plaintext.Random(p, cfg.Challenge.MinDistinguished)
	}
	if err != nil {
		return err
	}
	answer, err := plaintext.EncodeVerified(p, plain)
	if err != nil {
		return err
	}

	grid, err := generate(cmd.Context(), g, vocab, user, plain)
	if err != nil {
		return err
	}
	r, err := rasterize(p, grid, "challenge")
	if err != nil {
		return err
	}
	if err := challengeOut.write(r, p, true, "vcpass challenge"); err != nil {
		return err
	}

	if challengeRecord {
		slide, err := g.Slide(user)
		if err != nil {
			return err
		}
		sr, err := rasterize(p, slide, "slide")
		if err != nil {
			return err
		}
		l, err := ledger.Open(cfg.LedgerDB, p)
		if err != nil {
			return err
		}
		defer l.Close()
		id, err := l.Issue(plain, fingerprint(sr))
		if err != nil {
			return err
		}
		fmt.Println("challenge id:", id)
	}
	if challengeAnswer {
		fmt.Println("answer:", ui.Group(plaintext.RenderArrows(plaintext.Expected(p, plain)), " ", p.GridX))
		fmt.Println("encoded:", answer)
	}
	return nil
}
