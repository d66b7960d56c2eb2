package keystream

import (
	"crypto/sha1"
	"hash"
	"unicode/utf16"
)

var sha1New = sha1.New

// bmpString encodes s as big-endian UTF-16 followed by a two-byte NUL
// terminator, the password form PKCS#12 expects.
func bmpString(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, 2*len(units)+2)
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return append(out, 0, 0)
}

// pkcs12KDF implements the key derivation of RFC 7292 appendix B.2.
// id selects the purpose: 1 for key material, 2 for an IV, 3 for a MAC key.
func pkcs12KDF(newHash func() hash.Hash, password, salt []byte, rounds, id, size int) []byte {
	h := newHash()
	u := h.Size()
	v := h.BlockSize()

	D := make([]byte, v)
	for i := range D {
		D[i] = byte(id)
	}

	S := fillBlocks(salt, v)
	P := fillBlocks(password, v)
	I := append(S, P...)
	defer clear(I)

	out := make([]byte, 0, (size+u-1)/u*u)
	B := make([]byte, v)
	for len(out) < size {
		h.Reset()
		h.Write(D)
		h.Write(I)
		A := h.Sum(nil)
		for r := 1; r < rounds; r++ {
			h.Reset()
			h.Write(A)
			A = h.Sum(A[:0])
		}
		out = append(out, A...)
		if len(out) >= size {
			break
		}

		for i := range B {
			B[i] = A[i%u]
		}
		for j := 0; j < len(I); j += v {
			addOne(I[j:j+v], B)
		}
	}
	return out[:size]
}

// fillBlocks repeats b up to the next multiple of v bytes. Empty input stays empty.
func fillBlocks(b []byte, v int) []byte {
	if len(b) == 0 {
		return nil
	}
	n := v * ((len(b) + v - 1) / v)
	out := make([]byte, n)
	for i := range out {
		out[i] = b[i%len(b)]
	}
	return out
}

// addOne sets block = (block + b + 1) mod 2^(8·len(block)).
func addOne(block, b []byte) {
	carry := uint16(1)
	for k := len(block) - 1; k >= 0; k-- {
		carry += uint16(block[k]) + uint16(b[k])
		block[k] = byte(carry)
		carry >>= 8
	}
}
