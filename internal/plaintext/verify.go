package plaintext

import (
	"fmt"

	"vcpass/internal/params"
)

// EncodeVerified encodes symbols and immediately decodes the answer again,
// comparing it cell by cell with the expected response. If the round trip
// fails no answer is returned.
func EncodeVerified(p params.Params, symbols []int) (string, error) {
	answer, err := Encode(p, symbols)
	if err != nil {
		return "", fmt.Errorf("encode failed: %w", err)
	}
	decoded, err := Decode(p, answer)
	if err != nil {
		return "", fmt.Errorf("decode failed: %w", err)
	}
	want := Expected(p, symbols)
	if len(decoded) != len(want) {
		return "", fmt.Errorf("round-trip mismatch: decoded length %d != %d", len(decoded), len(want))
	}
	for i := range want {
		if decoded[i] != want[i] {
			return "", fmt.Errorf("round-trip mismatch at cell %d: have %d, want %d", i, decoded[i], want[i])
		}
	}
	return answer, nil
}
