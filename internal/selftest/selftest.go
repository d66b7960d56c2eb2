// Package selftest runs the generator against freshly generated seeds and
// reports whether its core guarantees hold.
package selftest

import (
	"context"
	"fmt"
	"io"

	"vcpass/internal/params"
	"vcpass/internal/plaintext"
	"vcpass/internal/seed"
	"vcpass/internal/ui"
	"vcpass/internal/vc"
)

// Check is one named verification over a seed pair.
type Check struct {
	Name string
	Run  func(ctx context.Context, g *vc.Generator, user, vocab string) error
}

// Checks lists what Run verifies, in order.
var Checks = []Check{
	{"deterministic slide", checkDeterminism},
	{"slide/challenge alignment", checkAlignment},
	{"vocabulary consumption", checkConsumption},
	{"answer round-trip", checkRoundTrip},
}

// Run generates `sets` random seed pairs, runs every check on each, prints
// one PASSED/FAILED line per check and returns the number of failed checks.
//
// Parameters:
// - w:    output writer
// - g:    generator under test
// - sets: number of random seed pairs
func Run(ctx context.Context, w io.Writer, g *vc.Generator, sets int) int {
	failed := 0
	for si := 0; si < sets; si++ {
		user, vocab, err := seedPair()
		if err != nil {
			fmt.Fprintf(w, "self-test seed error: %v\n", err)
			failed++
			continue
		}
		if sets > 1 {
			fmt.Fprintln(w, ui.Style(fmt.Sprintf("Set %d:", si+1), ui.Bold, ui.Purple))
		}
		for _, c := range Checks {
			cerr := c.Run(ctx, g, user, vocab)
			fmt.Fprintf(w, "  %-28s %s\n", c.Name, ui.Verdict(cerr == nil))
			if cerr != nil {
				fmt.Fprintf(w, "    %s\n", ui.Style(cerr.Error(), ui.Gray))
				failed++
			}
		}
	}

	if sets > 1 {
		fmt.Fprintf(w, "%s %d, %s %d\n",
			ui.Style("Total sets:", ui.Bold), sets,
			ui.Style("Failed:", ui.Bold), failed)
	}
	return failed
}

func seedPair() (user, vocab string, err error) {
	if user, err = seed.Generate(16); err != nil {
		return "", "", err
	}
	if vocab, err = seed.Generate(16); err != nil {
		return "", "", err
	}
	return user, vocab, nil
}

func checkDeterminism(_ context.Context, g *vc.Generator, user, _ string) error {
	a, err := g.Slide(user)
	if err != nil {
		return err
	}
	b, err := g.Slide(user)
	if err != nil {
		return err
	}
	for i := range a {
		for k := range a[i] {
			if a[i][k] != b[i][k] {
				return fmt.Errorf("cell %d pixel %d differs between runs", i, k)
			}
		}
	}
	return nil
}

func checkAlignment(ctx context.Context, g *vc.Generator, user, vocab string) error {
	p := g.Params()
	plain, err := plaintext.Random(p, p.Cells()/2)
	if err != nil {
		return err
	}
	slide, err := g.Slide(user)
	if err != nil {
		return err
	}
	res := g.Challenge(ctx, vocab, user, plain)
	if res.Status != vc.StatusOK {
		return fmt.Errorf("challenge %v: %v", res.Status, res.Err)
	}

	n := p.CCVPix()
	line := p.PRY * p.CRPix()
	for i, sym := range plain {
		if !p.IsDistinguished(sym) {
			continue
		}
		for j := 0; j < n; j++ {
			cb, err := vc.RowBits(p, res.Grid[i][j*line:])
			if err != nil {
				return err
			}
			sb, err := vc.RowBits(p, slide[i][j*line:])
			if err != nil {
				return err
			}
			for b := 0; b < n; b++ {
				if vc.Spliced(params.Direction(sym), j, b, n) && bitAt(cb, b) != bitAt(sb, b) {
					return fmt.Errorf("cell %d (%v) row %d bit %d not aligned", i, params.Direction(sym), j, b)
				}
			}
		}
	}
	return nil
}

func checkConsumption(ctx context.Context, g *vc.Generator, user, vocab string) error {
	p := g.Params()
	for sym := 0; sym < p.VocSize; sym++ {
		res := g.Challenge(ctx, vocab, user, plaintext.Uniform(p, sym))
		if res.Status != vc.StatusOK {
			return fmt.Errorf("symbol %d: %v: %v", sym, res.Status, res.Err)
		}
		if res.VocabBytes != int64(p.ChallengeVocabBytes()) {
			return fmt.Errorf("symbol %d consumed %d vocabulary bytes, want %d", sym, res.VocabBytes, p.ChallengeVocabBytes())
		}
	}
	return nil
}

func checkRoundTrip(_ context.Context, g *vc.Generator, _, _ string) error {
	p := g.Params()
	plain, err := plaintext.Random(p, 0)
	if err != nil {
		return err
	}
	answer, err := plaintext.EncodeVerified(p, plain)
	if err != nil {
		return err
	}
	resp, err := plaintext.ParseArrows(p, plaintext.RenderArrows(plaintext.Expected(p, plain)))
	if err != nil {
		return err
	}
	if !plaintext.Check(p, plain, resp) {
		return fmt.Errorf("arrow response for %q rejected", answer)
	}
	return nil
}

func bitAt(row []byte, p int) bool { return row[p/8]&(0x80>>(p%8)) != 0 }
