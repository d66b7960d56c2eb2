package vc_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"vcpass/internal/keystream"
	"vcpass/internal/params"
	"vcpass/internal/vc"
)

const (
	userSeed  = "alpha"
	vocabSeed = "beta"
)

func newGen(t *testing.T) *vc.Generator {
	t.Helper()
	g, err := vc.NewGenerator(params.Default())
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	return g
}

func uniform(p params.Params, sym int) []int {
	out := make([]int, p.Cells())
	for i := range out {
		out[i] = sym
	}
	return out
}

// cellRowBits recovers the keystream bits of VC row j of a cell.
func cellRowBits(t *testing.T, p params.Params, cell vc.Cell, j int) []byte {
	t.Helper()
	start := j * p.PRY * p.CRPix()
	bits, err := vc.RowBits(p, cell[start:start+p.CRPix()])
	if err != nil {
		t.Fatalf("RowBits() error: %v", err)
	}
	return bits
}

func bit(row []byte, p int) bool { return row[p/8]&(0x80>>(p%8)) != 0 }

func gridsEqual(a, b vc.Grid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for k := range a[i] {
			if a[i][k] != b[i][k] {
				return false
			}
		}
	}
	return true
}

func TestNewGenerator_InvalidParams(t *testing.T) {
	p := params.Default()
	p.PRY = 4
	_, err := vc.NewGenerator(p)
	if !errors.Is(err, vc.ErrContract) || !errors.Is(err, params.ErrInvalid) {
		t.Errorf("NewGenerator() error = %v, want ErrContract wrapping ErrInvalid", err)
	}
}

func TestSlide_Deterministic(t *testing.T) {
	g := newGen(t)
	a, err := g.Slide(userSeed)
	if err != nil {
		t.Fatalf("Slide() error: %v", err)
	}
	b, err := g.Slide(userSeed)
	if err != nil {
		t.Fatalf("Slide() error: %v", err)
	}
	if !gridsEqual(a, b) {
		t.Error("Slide is not deterministic")
	}
	c, err := g.Slide("gamma")
	if err != nil {
		t.Fatalf("Slide() error: %v", err)
	}
	if gridsEqual(a, c) {
		t.Error("different seeds produced the same slide")
	}
}

func TestSlide_KeystreamOrder(t *testing.T) {
	p := params.Default()
	g := newGen(t)
	grid, err := g.Slide(userSeed)
	if err != nil {
		t.Fatalf("Slide() error: %v", err)
	}
	us, err := keystream.Derive(userSeed, keystream.DefaultPolicy())
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	for i, cell := range grid {
		if len(cell) != p.CellPixels() {
			t.Fatalf("cell %d has %d pixels, want %d", i, len(cell), p.CellPixels())
		}
		for j := 0; j < p.CCVPix(); j++ {
			want := us.Next(p.RowBytes())
			if got := cellRowBits(t, p, cell, j); !bytes.Equal(got, want) {
				t.Fatalf("cell %d row %d = %x, want %x", i, j, got, want)
			}
		}
	}
}

func TestSlide_InvalidSeed(t *testing.T) {
	g := newGen(t)
	if _, err := g.Slide("tab\tseed"); !errors.Is(err, vc.ErrContract) {
		t.Errorf("Slide() error = %v, want ErrContract", err)
	}
}

func TestChallenge_Deterministic(t *testing.T) {
	g := newGen(t)
	plain := []int{0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 0, 1, 2, 3}
	a := g.Challenge(context.Background(), vocabSeed, userSeed, plain)
	b := g.Challenge(context.Background(), vocabSeed, userSeed, plain)
	if a.Status != vc.StatusOK || b.Status != vc.StatusOK {
		t.Fatalf("Challenge() status = %v / %v, err %v", a.Status, b.Status, a.Err)
	}
	if !gridsEqual(a.Grid, b.Grid) {
		t.Error("Challenge is not deterministic")
	}
}

func TestChallenge_Consumption(t *testing.T) {
	p := params.Default()
	g := newGen(t)
	for sym := 0; sym < p.VocSize; sym++ {
		res := g.Challenge(context.Background(), vocabSeed, userSeed, uniform(p, sym))
		if res.Status != vc.StatusOK {
			t.Fatalf("symbol %d: status %v, err %v", sym, res.Status, res.Err)
		}
		if res.VocabBytes != int64(p.ChallengeVocabBytes()) {
			t.Errorf("symbol %d: vocabulary bytes = %d, want %d", sym, res.VocabBytes, p.ChallengeVocabBytes())
		}
		if res.UserBytes != int64(p.SlideBytes()) {
			t.Errorf("symbol %d: user bytes = %d, want %d", sym, res.UserBytes, p.SlideBytes())
		}
	}
}

func TestChallenge_Boundary(t *testing.T) {
	p := params.Default()
	g := newGen(t)

	res := g.Challenge(context.Background(), vocabSeed, userSeed, uniform(p, p.VocSize-1))
	if res.Status != vc.StatusOK {
		t.Errorf("symbol %d: status %v, err %v", p.VocSize-1, res.Status, res.Err)
	}

	for _, bad := range []int{p.VocSize, -1} {
		plain := uniform(p, 0)
		plain[7] = bad
		res = g.Challenge(context.Background(), vocabSeed, userSeed, plain)
		if res.Status != vc.StatusFailed || !errors.Is(res.Err, vc.ErrContract) {
			t.Errorf("symbol %d: status %v err %v, want failed contract violation", bad, res.Status, res.Err)
		}
		if res.Grid != nil || res.VocabBytes != 0 {
			t.Errorf("symbol %d: keystream touched before validation", bad)
		}
	}

	res = g.Challenge(context.Background(), vocabSeed, userSeed, []int{0, 1})
	if !errors.Is(res.Err, vc.ErrContract) {
		t.Errorf("short plaintext: err %v, want ErrContract", res.Err)
	}
}

func TestChallenge_Cancel(t *testing.T) {
	p := params.Default()
	g := newGen(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	run := g.NewChallenge(ctx, vocabSeed, userSeed, uniform(p, 4))
	seen := 0
	for i, grid := range run.Progress() {
		seen++
		if len(grid) != i+1 {
			t.Errorf("progress %d: grid has %d cells", i, len(grid))
		}
		if i == 2 {
			cancel()
		}
	}
	if seen != 3 {
		t.Errorf("progress count = %d, want 3", seen)
	}
	res := run.Result()
	if res.Status != vc.StatusCanceled || res.Grid != nil {
		t.Errorf("Result() = %v with %d cells, want canceled without grid", res.Status, len(res.Grid))
	}
	for range run.Progress() {
		t.Fatal("Progress yielded after the run finished")
	}
}

func TestChallenge_CanceledBeforeStart(t *testing.T) {
	p := params.Default()
	g := newGen(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := g.Challenge(ctx, vocabSeed, userSeed, uniform(p, 0))
	if res.Status != vc.StatusCanceled {
		t.Errorf("status = %v, want canceled", res.Status)
	}
}

func TestChallenge_ProgressBreak(t *testing.T) {
	p := params.Default()
	g := newGen(t)
	run := g.NewChallenge(context.Background(), vocabSeed, userSeed, uniform(p, 1))
	for i := range run.Progress() {
		if i == 0 {
			break
		}
	}
	if res := run.Result(); res.Status != vc.StatusCanceled {
		t.Errorf("status after break = %v, want canceled", res.Status)
	}
}

// TestChallenge_Alignment checks that every spliced bit of a challenge cell
// equals the slide bit at the same position.
func TestChallenge_Alignment(t *testing.T) {
	p := params.Default()
	g := newGen(t)
	slide, err := g.Slide(userSeed)
	if err != nil {
		t.Fatalf("Slide() error: %v", err)
	}
	n := p.CCVPix()
	for _, d := range params.Directions {
		res := g.Challenge(context.Background(), vocabSeed, userSeed, uniform(p, int(d)))
		if res.Status != vc.StatusOK {
			t.Fatalf("%v: status %v, err %v", d, res.Status, res.Err)
		}
		for i := range res.Grid {
			for j := 0; j < n; j++ {
				cb := cellRowBits(t, p, res.Grid[i], j)
				sb := cellRowBits(t, p, slide[i], j)
				for b := 0; b < n; b++ {
					if spliced(d, j, b, n) && bit(cb, b) != bit(sb, b) {
						t.Fatalf("%v cell %d row %d bit %d differs from slide", d, i, j, b)
					}
				}
			}
		}
	}
}

func spliced(d params.Direction, j, p, n int) bool {
	upper := j < n/2
	switch d {
	case params.Up:
		return j > n/2 && p >= n-j && p < j
	case params.Down:
		return upper && p >= j && p < n-j
	case params.Left:
		return (upper && p >= n-j) || (!upper && p >= j)
	case params.Right:
		return (upper && p < j) || (!upper && p < n-j)
	}
	return false
}

func TestChallenge_EndToEnd(t *testing.T) {
	p := params.Default()
	g := newGen(t)
	plain := uniform(p, 4)
	plain[0] = int(params.Up)

	res := g.Challenge(context.Background(), vocabSeed, userSeed, plain)
	if res.Status != vc.StatusOK {
		t.Fatalf("status %v, err %v", res.Status, res.Err)
	}

	pol := keystream.DefaultPolicy()
	us, err := keystream.Derive(userSeed, pol)
	if err != nil {
		t.Fatalf("Derive(user) error: %v", err)
	}
	vs, err := keystream.Derive(vocabSeed, pol)
	if err != nil {
		t.Fatalf("Derive(vocab) error: %v", err)
	}

	rb, n := p.RowBytes(), p.CCVPix()
	for i, sym := range plain {
		for j := 0; j < n; j++ {
			srow := us.Next(rb)
			var vrow []byte
			for k := 0; k < p.VocSize; k++ {
				r := vs.Next(rb)
				if k == sym {
					vrow = r
				}
			}
			got := cellRowBits(t, p, res.Grid[i], j)
			for b := 0; b < n; b++ {
				want := bit(vrow, b)
				if i == 0 && spliced(params.Up, j, b, n) {
					want = bit(srow, b)
				}
				if bit(got, b) != want {
					t.Fatalf("cell %d row %d bit %d = %v, want %v", i, j, b, bit(got, b), want)
				}
			}
		}
	}
}

func TestWithPolicy(t *testing.T) {
	p := params.Default()
	g1 := newGen(t)
	g2, err := vc.NewGenerator(p, vc.WithPolicy(keystream.Policy{Cipher: keystream.CipherChaCha20}))
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	a, _ := g1.Slide(userSeed)
	b, err := g2.Slide(userSeed)
	if err != nil {
		t.Fatalf("Slide() error: %v", err)
	}
	if gridsEqual(a, b) {
		t.Error("policy change did not change the slide")
	}

	g3, err := vc.NewGenerator(p, vc.WithPolicy(keystream.Policy{KDF: "md5"}))
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	res := g3.Challenge(context.Background(), vocabSeed, userSeed, uniform(p, 0))
	var pe *keystream.ProviderError
	if res.Status != vc.StatusFailed || !errors.As(res.Err, &pe) {
		t.Errorf("unknown KDF: status %v err %v, want ProviderError", res.Status, res.Err)
	}
}
