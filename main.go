// vcpass — visual-cryptography passcodes
//
// A user holds a printed slide (a transparency of keyed noise). To log in
// they are shown a challenge image of GRID_X × GRID_Y noise cells; laying the
// slide over the screen reveals an arrow in some cells. The arrows they read
// off form the one-time passcode. The challenge alone discloses nothing.
//
// Two seeds drive everything:
// - user seed:       the slide, and the bits the challenge copies from it
// - vocabulary seed: the per-cell noise the challenge is built from
//
// Commands:
// - seeds:     generate or encode a seed pair (text or QR)
// - slide:     render the user's slide
// - challenge: draw a secret, render the challenge, record it in the ledger
// - vocab:     render one challenge per vocabulary symbol
// - stack:     overlay slide and challenge as the user would see them
// - verify:    check a typed response against the ledger
// - selftest:  determinism, alignment and round-trip checks
package main

import (
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vcpass/internal/config"
	"vcpass/internal/params"
	"vcpass/internal/ui"
	"vcpass/internal/vc"
)

var rootCmd = &cobra.Command{
	Use:               "vcpass",
	Short:             "Visual-cryptography passcode generator",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	flagConfig  string
	flagVerbose bool
	flagNoColor bool

	cfg *config.Config
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default: ~/.vcpass/config.yaml)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging on stderr")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(seedsCmd)
	rootCmd.AddCommand(slideCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(stackCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	Execute()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

// setup loads the config, then configures logging and color.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath())
	defaulted := false
	if err != nil {
		if !os.IsNotExist(err) || flagConfig != "" {
			return fmt.Errorf("loading config: %w", err)
		}
		c, defaulted = config.Defaults(), true
	}
	cfg = c

	level := cfg.Level()
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if defaulted {
		slog.Debug("no config file found, using defaults", "path", configPath())
	}

	ui.SetColorEnabled(!flagNoColor && term.IsTerminal(int(syscall.Stdout)))
	return nil
}

// newGenerator builds a generator from the loaded config.
func newGenerator() (*vc.Generator, params.Params, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, params.Params{}, err
	}
	pol, err := cfg.Policy()
	if err != nil {
		return nil, params.Params{}, err
	}
	g, err := vc.NewGenerator(p, vc.WithPolicy(pol), vc.WithLogger(slog.Default()))
	if err != nil {
		return nil, params.Params{}, err
	}
	return g, p, nil
}
