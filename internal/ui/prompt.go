package ui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// PromptSeed asks for a seed on the terminal. If confirm is true the seed is
// read twice and both entries must match. If mask is true, input is read in
// raw mode with '*' echo; otherwise it uses the terminal's hidden input (no
// echo) via ReadPassword. Prompts go to stderr so stdout stays clean.
func PromptSeed(label string, mask, confirm bool) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("prompt requires an interactive terminal")
	}

	read := readHidden
	if mask {
		read = readMasked
	}

	s1, err := read(fd, fmt.Sprintf("Enter %s seed: ", label))
	if err != nil {
		return "", err
	}
	if !confirm {
		return s1, nil
	}
	s2, err := read(fd, fmt.Sprintf("Re-enter %s seed: ", label))
	if err != nil {
		return "", err
	}
	if s1 != s2 {
		return "", fmt.Errorf("%s seeds do not match", label)
	}
	return s1, nil
}

func readHidden(fd int, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, "\r"+prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read seed")
	}
	return string(b), nil
}

// readMasked reads in raw mode with '*' echo and a signal-safe restore.
func readMasked(fd int, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, "\r"+prompt)

	oldState, err := term.GetState(fd)
	if err != nil {
		return "", fmt.Errorf("terminal not ready")
	}
	restore := func() { _ = term.Restore(fd, oldState) }

	done := make(chan struct{})
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigc:
			restore()
			os.Exit(130)
		case <-done:
		}
	}()

	if _, err := term.MakeRaw(fd); err != nil {
		signal.Stop(sigc)
		close(done)
		return "", fmt.Errorf("terminal not ready")
	}
	defer func() { restore(); signal.Stop(sigc); close(done) }()

	var buf []byte
	for {
		var b [1]byte
		n, er := os.Stdin.Read(b[:])
		if er != nil || n == 0 {
			break
		}
		ch := b[0]
		if ch == '\r' || ch == '\n' {
			fmt.Fprint(os.Stderr, "\r\n")
			break
		}
		if ch == 0x7f || ch == '\b' {
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Fprint(os.Stderr, "\b \b")
			}
			continue
		}
		// Seeds are printable ASCII only.
		if ch < 0x20 || ch > 0x7e {
			continue
		}
		buf = append(buf, ch)
		fmt.Fprint(os.Stderr, "*")
	}
	s := string(buf)
	clear(buf)
	return s, nil
}
