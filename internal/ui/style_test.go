package ui_test

import (
	"strings"
	"testing"

	"vcpass/internal/ui"
)

func TestStyle(t *testing.T) {
	ui.SetColorEnabled(false)
	if got := ui.Style("x", ui.Bold); got != "x" {
		t.Errorf("Style with color off = %q, want %q", got, "x")
	}
	ui.SetColorEnabled(true)
	defer ui.SetColorEnabled(false)
	got := ui.Style("x", ui.Bold, ui.Red)
	if !strings.HasPrefix(got, ui.Bold+ui.Red) || !strings.HasSuffix(got, ui.Reset) {
		t.Errorf("Style with color on = %q", got)
	}
}

func TestGroup(t *testing.T) {
	cases := []struct {
		s, sep string
		every  int
		want   string
	}{
		{"0___1_23_______3", " ", 4, "0___ 1_23 ____ ___3"},
		{"↑↓←→", "|", 2, "↑↓|←→"},
		{"abc", "", 1, "abc"},
		{"abc", " ", 0, "abc"},
	}
	for _, c := range cases {
		if got := ui.Group(c.s, c.sep, c.every); got != c.want {
			t.Errorf("Group(%q, %q, %d) = %q, want %q", c.s, c.sep, c.every, got, c.want)
		}
	}
}
