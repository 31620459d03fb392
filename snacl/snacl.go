// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package snacl provides password-based, authenticated encryption of the
// serialised wallet blob.  A key is derived from a user password with
// scrypt, and the key is then used to seal/open messages with
// nacl/secretbox, which gives us tamper-detection for free: an incorrect
// password or a corrupted ciphertext both fail to open, but are reported
// as distinct error conditions so callers can tell them apart.
package snacl

import (
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	// DefaultN is the default scrypt work factor.
	DefaultN = 16384

	// DefaultR is the default scrypt block size.
	DefaultR = 8

	// DefaultP is the default scrypt parallelization factor.
	DefaultP = 1

	// KeySize is the size, in bytes, of a derived secretbox key.
	KeySize = 32

	// saltSize is the size, in bytes, of the scrypt salt.
	saltSize = 32

	// nonceSize is the size, in bytes, of the secretbox nonce.
	nonceSize = 24
)

// ErrInvalidPassword is returned from (*SecretKey).DeriveKey when the
// provided password does not match the key the parameters were derived
// from. It is detected by re-deriving and comparing, so it only ever
// fires during DeriveKey, not Decrypt (which instead fails open via
// secretbox's own authentication tag).
var ErrInvalidPassword = errors.New("invalid password")

// ErrDecryptFailed is returned from (*SecretKey).Decrypt when the
// ciphertext fails to authenticate: either the key is wrong or the bytes
// were corrupted/truncated. Unlike ErrInvalidPassword, callers cannot
// distinguish the two from this error alone; see SecretKey.DeriveKey for
// the disambiguated path used by the wallet serialiser.
var ErrDecryptFailed = errors.New("invalid password or corrupt ciphertext")

// ErrMalformed is returned when a marshalled SecretKey cannot be parsed.
var ErrMalformed = errors.New("malformed data")

// Parameters describes the scrypt cost parameters together with the salt
// used to derive a key, and the checksum of the plaintext key used to
// detect the wrong password without needing a second, larger secret to
// decrypt.
type Parameters struct {
	Salt [saltSize]byte
	N, R, P int
	keyDigest [sha256Size]byte
}

const sha256Size = 32

// SecretKey houses a secretbox-ready key plus the parameters it was
// derived under.  Marshal/Unmarshal (de)serialise only the parameters —
// never the key itself — so a marshalled SecretKey is safe to persist
// next to the ciphertext it protects.
type SecretKey struct {
	Key        [KeySize]byte
	Parameters Parameters
}

// NewSecretKey generates a new secret key using the provided password and
// scrypt parameters.
func NewSecretKey(password *[]byte, N, r, p int) (*SecretKey, error) {
	sk := &SecretKey{
		Parameters: Parameters{N: N, R: r, P: p},
	}
	if _, err := randRead(sk.Parameters.Salt[:]); err != nil {
		return nil, err
	}
	if err := sk.deriveAndCheck(password, true); err != nil {
		return nil, err
	}
	return sk, nil
}

// DeriveKey derives the secretbox key for sk from password using the
// stored scrypt parameters, and verifies that the derived key's digest
// matches the one recorded when the key was created.  Returns
// ErrInvalidPassword on mismatch.
func (sk *SecretKey) DeriveKey(password *[]byte) error {
	return sk.deriveAndCheck(password, false)
}

func (sk *SecretKey) deriveAndCheck(password *[]byte, record bool) error {
	key, err := scrypt.Key(*password, sk.Parameters.Salt[:],
		sk.Parameters.N, sk.Parameters.R, sk.Parameters.P, KeySize)
	if err != nil {
		return err
	}

	digest := sha256Sum(key)
	if record {
		sk.Parameters.keyDigest = digest
	} else if digest != sk.Parameters.keyDigest {
		return ErrInvalidPassword
	}

	copy(sk.Key[:], key)
	return nil
}

// Encrypt seals plaintext with sk's key, returning nonce||ciphertext.
func (sk *SecretKey) Encrypt(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := randRead(nonce[:]); err != nil {
		return nil, err
	}

	var key [KeySize]byte
	copy(key[:], sk.Key[:])

	out := make([]byte, nonceSize, nonceSize+len(plaintext)+secretbox.Overhead)
	copy(out, nonce[:])
	out = secretbox.Seal(out, plaintext, &nonce, &key)
	return out, nil
}

// Decrypt opens a blob produced by Encrypt. It returns ErrDecryptFailed
// if the blob is too short to contain a nonce, or if secretbox
// authentication fails (wrong key or corrupted data).
func (sk *SecretKey) Decrypt(enc []byte) ([]byte, error) {
	if len(enc) < nonceSize {
		return nil, ErrDecryptFailed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], enc[:nonceSize])

	var key [KeySize]byte
	copy(key[:], sk.Key[:])

	out, ok := secretbox.Open(nil, enc[nonceSize:], &nonce, &key)
	if !ok {
		return nil, ErrDecryptFailed
	}
	return out, nil
}

// Zero zeroes the derived key so it no longer lingers in memory. The
// Parameters (salt, cost factors, digest) are left intact so the key can
// be rederived from the password again later.
func (sk *SecretKey) Zero() {
	for i := range sk.Key {
		sk.Key[i] = 0
	}
}

// Marshal serialises the parameters (but not the derived key) to bytes.
func (sk *SecretKey) Marshal() []byte {
	buf := make([]byte, 0, saltSize+3*4+sha256Size)
	buf = append(buf, sk.Parameters.Salt[:]...)
	buf = appendUint32(buf, uint32(sk.Parameters.N))
	buf = appendUint32(buf, uint32(sk.Parameters.R))
	buf = appendUint32(buf, uint32(sk.Parameters.P))
	buf = append(buf, sk.Parameters.keyDigest[:]...)
	return buf
}

// Unmarshal parses the output of Marshal back into sk's Parameters.
func (sk *SecretKey) Unmarshal(marshalled []byte) error {
	want := saltSize + 3*4 + sha256Size
	if len(marshalled) != want {
		return ErrMalformed
	}

	off := 0
	copy(sk.Parameters.Salt[:], marshalled[off:off+saltSize])
	off += saltSize
	sk.Parameters.N = int(binary.BigEndian.Uint32(marshalled[off : off+4]))
	off += 4
	sk.Parameters.R = int(binary.BigEndian.Uint32(marshalled[off : off+4]))
	off += 4
	sk.Parameters.P = int(binary.BigEndian.Uint32(marshalled[off : off+4]))
	off += 4
	copy(sk.Parameters.keyDigest[:], marshalled[off:off+sha256Size])

	return nil
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}
