package keystream

import "crypto/cipher"

// cfb8 is an 8-bit cipher feedback encrypter. Each output byte is the first
// byte of E(register) XOR the input; the register then shifts left by one
// byte and takes the ciphertext byte.
type cfb8 struct {
	b   cipher.Block
	reg []byte
	out []byte
}

func newCFB8Encrypter(b cipher.Block, iv []byte) cipher.Stream {
	reg := make([]byte, b.BlockSize())
	copy(reg, iv)
	return &cfb8{b: b, reg: reg, out: make([]byte, b.BlockSize())}
}

func (x *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("keystream: output smaller than input")
	}
	for i, s := range src {
		x.b.Encrypt(x.out, x.reg)
		c := s ^ x.out[0]
		copy(x.reg, x.reg[1:])
		x.reg[len(x.reg)-1] = c
		dst[i] = c
	}
}
