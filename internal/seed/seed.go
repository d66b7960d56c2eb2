// Package seed validates, generates and transports the two secret seeds.
package seed

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/tv42/zbase32"
)

// ErrInvalid is matched by every validation error.
var ErrInvalid = errors.New("invalid seed")

// Validate accepts a non-empty string of printable ASCII (0x20..0x7E).
func Validate(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalid)
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c > 0x7E {
			return fmt.Errorf("%w: byte 0x%02x at offset %d is not printable ASCII", ErrInvalid, c, i)
		}
	}
	return nil
}

// Generate returns nbytes of crypto/rand entropy as z-base-32 text.
func Generate(nbytes int) (string, error) {
	if nbytes <= 0 {
		return "", fmt.Errorf("seed length must be positive, got %d", nbytes)
	}
	buf := make([]byte, nbytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	defer clear(buf)
	return zbase32.EncodeToString(buf), nil
}
