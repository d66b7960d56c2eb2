package keystream

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/chacha20"
)

// Stream is a deterministic byte source derived from one seed. It is read
// strictly forward and is not safe for concurrent use.
type Stream struct {
	s   cipher.Stream
	pos int64
}

// Derive runs the policy's KDF over seed and starts its cipher on an all-zero
// plaintext. The same seed and policy always yield the same bytes.
func Derive(seed string, pol Policy) (*Stream, error) {
	var keyLen, ivLen int
	switch pol.cipher() {
	case CipherAESCFB8:
		keyLen, ivLen = 16, aes.BlockSize
	case CipherChaCha20:
		keyLen, ivLen = chacha20.KeySize, chacha20.NonceSize
	default:
		return nil, &ProviderError{Op: "cipher", Name: pol.Cipher, Err: errUnsupported}
	}

	m, err := pol.keyMaterial(seed, keyLen, ivLen)
	if err != nil {
		return nil, err
	}
	defer m.wipe()

	var s cipher.Stream
	switch pol.cipher() {
	case CipherAESCFB8:
		b, err := aes.NewCipher(m.key)
		if err != nil {
			return nil, &ProviderError{Op: "cipher", Name: CipherAESCFB8, Err: err}
		}
		s = newCFB8Encrypter(b, m.iv)
	case CipherChaCha20:
		c, err := chacha20.NewUnauthenticatedCipher(m.key, m.iv)
		if err != nil {
			return nil, &ProviderError{Op: "cipher", Name: CipherChaCha20, Err: err}
		}
		s = c
	}
	return &Stream{s: s}, nil
}

// Next returns the next n bytes in a fresh slice.
func (st *Stream) Next(n int) []byte {
	buf := make([]byte, n)
	st.s.XORKeyStream(buf, buf)
	st.pos += int64(n)
	return buf
}

// Skip advances the stream by n bytes without returning them.
func (st *Stream) Skip(n int) {
	var scratch [64]byte
	for n > 0 {
		k := min(n, len(scratch))
		clear(scratch[:k])
		st.s.XORKeyStream(scratch[:k], scratch[:k])
		st.pos += int64(k)
		n -= k
	}
}

// Read fills p with keystream bytes. It never fails.
func (st *Stream) Read(p []byte) (int, error) {
	clear(p)
	st.s.XORKeyStream(p, p)
	st.pos += int64(len(p))
	return len(p), nil
}

// Pos reports how many bytes have been consumed.
func (st *Stream) Pos() int64 { return st.pos }
