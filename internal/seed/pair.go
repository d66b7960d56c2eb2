package seed

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodePair joins the user and vocabulary seeds as two length-prefixed
// fields: "<len>:<user><len>:<vocab>".
func EncodePair(user, vocab string) (string, error) {
	if err := Validate(user); err != nil {
		return "", fmt.Errorf("user seed: %w", err)
	}
	if err := Validate(vocab); err != nil {
		return "", fmt.Errorf("vocabulary seed: %w", err)
	}
	var b strings.Builder
	for _, s := range []string{user, vocab} {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	return b.String(), nil
}

// DecodePair is the inverse of EncodePair. Trailing data is an error.
func DecodePair(s string) (user, vocab string, err error) {
	rest := strings.TrimSpace(s)
	user, rest, err = readField(rest)
	if err != nil {
		return "", "", fmt.Errorf("user seed: %w", err)
	}
	vocab, rest, err = readField(rest)
	if err != nil {
		return "", "", fmt.Errorf("vocabulary seed: %w", err)
	}
	if rest != "" {
		return "", "", fmt.Errorf("%w: %d trailing bytes after seed pair", ErrInvalid, len(rest))
	}
	return user, vocab, nil
}

func readField(s string) (field, rest string, err error) {
	head, tail, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: missing length prefix", ErrInvalid)
	}
	n, err := strconv.Atoi(head)
	if err != nil || n <= 0 {
		return "", "", fmt.Errorf("%w: bad length %q", ErrInvalid, head)
	}
	if n > len(tail) {
		return "", "", fmt.Errorf("%w: length %d exceeds remaining %d bytes", ErrInvalid, n, len(tail))
	}
	field, rest = tail[:n], tail[n:]
	if err := Validate(field); err != nil {
		return "", "", err
	}
	return field, rest, nil
}
