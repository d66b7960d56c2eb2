package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vcpass/internal/selftest"
	"vcpass/internal/ui"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the built-in checks on random seeds",
	RunE:  runSelftest,
}

var selftestSets int

func init() {
	selftestCmd.Flags().IntVar(&selftestSets, "sets", 4, "number of random seed pairs")
}

func runSelftest(cmd *cobra.Command, args []string) error {
	g, p, err := newGenerator()
	if err != nil {
		return err
	}
	title := fmt.Sprintf("== Self-test: %d×%d grid, %d symbols ==", p.GridX, p.GridY, p.VocSize)
	fmt.Println(ui.Style(title, ui.Bold))
	if failed := selftest.Run(cmd.Context(), os.Stdout, g, selftestSets); failed > 0 {
		os.Exit(1)
	}
	return nil
}
