package keystream

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Policy defines how a seed is turned into cipher key material and which
// cipher then produces the keystream.
//   - KDF "pkcs12" (default) reproduces PBEWithSHAAnd128BitAES-CBC key/IV
//     derivation: PKCS#12 v1.0, SHA-1, fixed salt, 1024 iterations.
//   - KDF "pbkdf2" uses PBKDF2-HMAC-SHA256 with the same salt and iterations.
//   - KDF "argon2id" uses Argon2id with the configured cost parameters.
//   - Cipher "aes-cfb8" (default) or "chacha20".
type Policy struct {
	KDF        string // "pkcs12" (default), "pbkdf2" or "argon2id"
	Cipher     string // "aes-cfb8" (default) or "chacha20"
	Salt       []byte // fixed salt; nil means DefaultSalt
	Iterations int    // pkcs12/pbkdf2 iteration count
	ArgonTime  uint32 // argon2id passes
	ArgonMemKB uint32 // argon2id memory in KiB
	ArgonPar   uint8  // argon2id parallelism
}

// DefaultSalt is the two-byte salt printed slides were generated with.
var DefaultSalt = []byte{0x22, 0x24}

const (
	KDFPKCS12   = "pkcs12"
	KDFPBKDF2   = "pbkdf2"
	KDFArgon2id = "argon2id"

	CipherAESCFB8  = "aes-cfb8"
	CipherChaCha20 = "chacha20"
)

// DefaultPolicy returns the policy compatible with existing printed slides.
func DefaultPolicy() Policy {
	return Policy{
		KDF:        KDFPKCS12,
		Cipher:     CipherAESCFB8,
		Salt:       DefaultSalt,
		Iterations: 1024,
		ArgonTime:  3,
		ArgonMemKB: 64 * 1024,
		ArgonPar:   1,
	}
}

// ParseSalt decodes a hex salt as stored in configuration files.
func ParseSalt(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("salt must be hex: %w", err)
	}
	return b, nil
}

func (p Policy) kdf() string {
	k := strings.ToLower(strings.TrimSpace(p.KDF))
	if k == "" {
		return KDFPKCS12
	}
	return k
}

func (p Policy) cipher() string {
	c := strings.ToLower(strings.TrimSpace(p.Cipher))
	if c == "" {
		return CipherAESCFB8
	}
	return c
}

func (p Policy) salt() []byte {
	if len(p.Salt) == 0 {
		return DefaultSalt
	}
	return p.Salt
}

func (p Policy) iterations() int {
	if p.Iterations <= 0 {
		return 1024
	}
	return p.Iterations
}

// material is what a cipher needs: a key and an IV (AES) or nonce (ChaCha20).
type material struct {
	key []byte
	iv  []byte
}

func (m *material) wipe() {
	clear(m.key)
	clear(m.iv)
}

// keyMaterial derives keyLen+ivLen bytes from seed according to the policy.
//   - pkcs12: key from diversifier ID 1, IV from diversifier ID 2.
//   - pbkdf2, argon2id: one output split into key || iv.
func (p Policy) keyMaterial(seed string, keyLen, ivLen int) (material, error) {
	switch p.kdf() {
	case KDFPKCS12:
		pw := bmpString(seed)
		defer clear(pw)
		return material{
			key: pkcs12KDF(sha1New, pw, p.salt(), p.iterations(), 1, keyLen),
			iv:  pkcs12KDF(sha1New, pw, p.salt(), p.iterations(), 2, ivLen),
		}, nil

	case KDFPBKDF2:
		out := pbkdf2.Key([]byte(seed), p.salt(), p.iterations(), keyLen+ivLen, sha256.New)
		return material{key: out[:keyLen], iv: out[keyLen:]}, nil

	case KDFArgon2id:
		t, mem, par := p.ArgonTime, p.ArgonMemKB, p.ArgonPar
		if t == 0 {
			t = 3
		}
		if mem == 0 {
			mem = 64 * 1024
		}
		if par == 0 {
			par = 1
		}
		out := argon2.IDKey([]byte(seed), p.salt(), t, mem, par, uint32(keyLen+ivLen))
		return material{key: out[:keyLen], iv: out[keyLen:]}, nil

	default:
		return material{}, &ProviderError{Op: "kdf", Name: p.KDF, Err: errUnsupported}
	}
}
