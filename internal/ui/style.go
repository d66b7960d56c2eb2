package ui

import "strings"

// Package ui: terminal helpers shared by the commands.
//
// Color usage
// - Enable or disable color globally via SetColorEnabled(true/false).
// - Wrap text with Style("text", Bold, Blue) to apply codes when enabled.
// - When disabled, Style returns the input unchanged.
//
// Answer formatting
// - Group splits an answer string into grid rows for display.

// Default: colors enabled. Override via SetColorEnabled.
var colorEnabled = true

// ANSI escape codes (exported)
const (
	Reset  = "\x1b[0m"
	Bold   = "\x1b[1m"
	Blue   = "\x1b[38;2;122;162;247m"
	Cyan   = "\x1b[38;2;42;195;222m"
	Purple = "\x1b[38;2;187;154;247m"
	Gray   = "\x1b[38;2;136;146;176m"
	Red    = "\x1b[38;2;247;118;142m"
	Green  = "\x1b[38;2;158;206;106m"
	Yellow = "\x1b[38;2;224;175;104m"
)

// SetColorEnabled toggles ANSI styling on or off.
func SetColorEnabled(on bool) {
	colorEnabled = on
}

// ColorEnabled reports whether ANSI styling is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// Style wraps s with the provided ANSI codes when color is enabled.
// When disabled, returns s unchanged.
//
// Example:
//
//	Style("Hello", Bold, Blue)
func Style(s string, codes ...string) string {
	if !colorEnabled {
		return s
	}
	var b strings.Builder
	for _, c := range codes {
		b.WriteString(c)
	}
	b.WriteString(s)
	b.WriteString(Reset)
	return b.String()
}

// Banner returns the styled CLI header.
func Banner(version string) string {
	return Style("vcpass visual passcodes - "+version, Bold, Purple)
}

// Verdict renders PASSED in green or FAILED in red.
func Verdict(ok bool) string {
	if ok {
		return Style("PASSED", Bold, Green)
	}
	return Style("FAILED", Bold, Red)
}

// Group inserts sep after every `every` runes of s, so a per-cell answer
// reads as one grid row per group. If every <= 0 or sep is empty, s is
// returned unchanged.
func Group(s, sep string, every int) string {
	if sep == "" || every <= 0 {
		return s
	}
	r := []rune(s)
	var b strings.Builder
	for i, ch := range r {
		if i > 0 && i%every == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(ch)
	}
	return b.String()
}
