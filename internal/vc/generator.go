package vc

import (
	"context"
	"iter"
	"log/slog"

	"vcpass/internal/keystream"
	"vcpass/internal/params"
	"vcpass/internal/seed"
)

// Generator derives slides and challenges for one parameter set. A Generator
// is immutable and may be shared between goroutines.
type Generator struct {
	p   params.Params
	pol keystream.Policy
	log *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithPolicy replaces the default keystream policy.
func WithPolicy(pol keystream.Policy) Option {
	return func(g *Generator) { g.pol = pol }
}

// NewGenerator validates p and returns a generator for it.
func NewGenerator(p params.Params, opts ...Option) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, &ContractError{Reason: "parameters", Err: err}
	}
	g := &Generator{
		p:   p,
		pol: keystream.DefaultPolicy(),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Params returns the generator's parameters.
func (g *Generator) Params() params.Params { return g.p }

func (g *Generator) open(s string) (*keystream.Stream, error) {
	if err := seed.Validate(s); err != nil {
		return nil, &ContractError{Reason: "seed", Err: err}
	}
	return keystream.Derive(s, g.pol)
}

// Slide generates the user's transparency from the user seed.
func (g *Generator) Slide(userSeed string) (Grid, error) {
	us, err := g.open(userSeed)
	if err != nil {
		return nil, err
	}
	grid := make(Grid, 0, g.p.Cells())
	for i := 0; i < g.p.Cells(); i++ {
		cell, err := g.slideCell(us)
		if err != nil {
			return nil, err
		}
		grid = append(grid, cell)
	}
	g.log.Debug("slide generated", "cells", len(grid), "user_bytes", us.Pos())
	return grid, nil
}

func (g *Generator) slideCell(us *keystream.Stream) (Cell, error) {
	rb := g.p.RowBytes()
	cell := make(Cell, 0, g.p.CellPixels())
	var err error
	for j := 0; j < g.p.CCVPix(); j++ {
		if cell, err = appendRow(cell, g.p, us.Next(rb)); err != nil {
			return nil, err
		}
	}
	return cell, nil
}

// challengeCell draws VocSize vocabulary rows for every user row and keeps
// row number sym, spliced with the user row when sym is a direction.
func (g *Generator) challengeCell(us, vs *keystream.Stream, sym int) (Cell, error) {
	rb := g.p.RowBytes()
	n := g.p.CCVPix()
	cell := make(Cell, 0, g.p.CellPixels())
	var err error
	for j := 0; j < n; j++ {
		srow := us.Next(rb)
		vs.Skip(sym * rb)
		vrow := vs.Next(rb)
		if g.p.IsDistinguished(sym) {
			splice(vrow, srow, params.Direction(sym), j, n)
		}
		if cell, err = appendRow(cell, g.p, vrow); err != nil {
			return nil, err
		}
		vs.Skip((g.p.VocSize - 1 - sym) * rb)
	}
	return cell, nil
}

// Status is the outcome of a challenge run.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusCanceled:
		return "canceled"
	}
	return "unknown"
}

// Result carries the grid of a successful run, or the error of a failed one.
// A canceled run has neither.
type Result struct {
	Status     Status
	Grid       Grid
	Err        error
	UserBytes  int64
	VocabBytes int64
}

// ChallengeRun is a single challenge generation that can be observed cell by
// cell. It is not safe for concurrent use.
type ChallengeRun struct {
	g         *Generator
	ctx       context.Context
	vocabSeed string
	userSeed  string
	plain     []int
	started   bool
	res       Result
}

// NewChallenge prepares a run. Nothing is derived until Progress or Result is called.
func (g *Generator) NewChallenge(ctx context.Context, vocabSeed, userSeed string, plain []int) *ChallengeRun {
	return &ChallengeRun{
		g:         g,
		ctx:       ctx,
		vocabSeed: vocabSeed,
		userSeed:  userSeed,
		plain:     append([]int(nil), plain...),
	}
}

// Challenge generates the challenge grid for plain and waits for the result.
func (g *Generator) Challenge(ctx context.Context, vocabSeed, userSeed string, plain []int) Result {
	return g.NewChallenge(ctx, vocabSeed, userSeed, plain).Result()
}

// Progress yields the index of each finished cell with the grid built so far.
// The sequence runs once; later calls yield nothing. Stopping the loop early
// cancels the run.
func (r *ChallengeRun) Progress() iter.Seq2[int, Grid] {
	return func(yield func(int, Grid) bool) {
		if r.started {
			return
		}
		r.started = true
		r.res = r.run(yield)
	}
}

// Result runs the challenge to completion if Progress was never consumed.
func (r *ChallengeRun) Result() Result {
	if !r.started {
		for range r.Progress() {
		}
	}
	return r.res
}

func (r *ChallengeRun) run(yield func(int, Grid) bool) Result {
	g := r.g
	failed := func(err error) Result {
		g.log.Debug("challenge failed", "err", err)
		return Result{Status: StatusFailed, Err: err}
	}

	if len(r.plain) != g.p.Cells() {
		return failed(contractf("plaintext has %d symbols, want %d", len(r.plain), g.p.Cells()))
	}
	for i, sym := range r.plain {
		if sym < 0 || sym >= g.p.VocSize {
			return failed(contractf("symbol %d at cell %d outside vocabulary [0,%d)", sym, i, g.p.VocSize))
		}
	}

	vs, err := g.open(r.vocabSeed)
	if err != nil {
		return failed(err)
	}
	us, err := g.open(r.userSeed)
	if err != nil {
		return failed(err)
	}

	grid := make(Grid, 0, g.p.Cells())
	for i, sym := range r.plain {
		if err := r.ctx.Err(); err != nil {
			g.log.Debug("challenge canceled", "cell", i)
			return Result{Status: StatusCanceled, UserBytes: us.Pos(), VocabBytes: vs.Pos()}
		}
		cell, err := g.challengeCell(us, vs, sym)
		if err != nil {
			return failed(err)
		}
		grid = append(grid, cell)
		g.log.Debug("challenge cell", "cell", i, "symbol", sym)
		if !yield(i, grid) {
			g.log.Debug("challenge abandoned", "cell", i)
			return Result{Status: StatusCanceled, UserBytes: us.Pos(), VocabBytes: vs.Pos()}
		}
	}

	g.log.Debug("challenge generated", "user_bytes", us.Pos(), "vocab_bytes", vs.Pos())
	return Result{Status: StatusOK, Grid: grid, UserBytes: us.Pos(), VocabBytes: vs.Pos()}
}
