package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"vcpass/internal/ledger"
	"vcpass/internal/plaintext"
	"vcpass/internal/ui"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <id> <response>",
	Short: "Check a response against a recorded challenge",
	Long: `Check a typed response against a recorded challenge. The response has
one glyph per cell: ↑ ↓ ← → (or u d l r, ^ v < >) for an arrow and _ or . for
a cell without one. Spaces are ignored. Each call counts as an attempt; a
solved challenge cannot be answered again.`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid challenge id %q", args[0])
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	resp, err := plaintext.ParseArrows(p, args[1])
	if err != nil {
		return err
	}

	l, err := ledger.Open(cfg.LedgerDB, p)
	if err != nil {
		return err
	}
	defer l.Close()

	ok, err := l.Check(id, resp)
	if errors.Is(err, ledger.ErrSolved) {
		fmt.Println(ui.Style("challenge already used", ui.Yellow))
	} else if err != nil {
		return err
	}
	fmt.Println(ui.Verdict(ok))
	if !ok {
		l.Close()
		os.Exit(1)
	}
	return nil
}
