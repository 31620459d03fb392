// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snacl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecretKeyRoundTrip(t *testing.T) {
	password := []byte("sikrit")
	message := []byte("this is a secret message of sorts")

	key, err := NewSecretKey(&password, DefaultN, DefaultR, DefaultP)
	require.NoError(t, err)

	params := key.Marshal()

	var sk SecretKey
	require.NoError(t, sk.Unmarshal(params))
	require.NoError(t, sk.DeriveKey(&password))
	require.Equal(t, key.Key, sk.Key)

	blob, err := key.Encrypt(message)
	require.NoError(t, err)

	decrypted, err := key.Decrypt(blob)
	require.NoError(t, err)
	require.Equal(t, message, decrypted)

	blob[len(blob)-1] ^= 0xff
	_, err = key.Decrypt(blob)
	require.ErrorIs(t, err, ErrDecryptFailed)
}

func TestDeriveKeyInvalidPassword(t *testing.T) {
	password := []byte("sikrit")
	key, err := NewSecretKey(&password, DefaultN, DefaultR, DefaultP)
	require.NoError(t, err)

	params := key.Marshal()

	var sk SecretKey
	require.NoError(t, sk.Unmarshal(params))

	wrong := []byte("wrong password")
	require.ErrorIs(t, sk.DeriveKey(&wrong), ErrInvalidPassword)
}

func TestZero(t *testing.T) {
	password := []byte("sikrit")
	key, err := NewSecretKey(&password, DefaultN, DefaultR, DefaultP)
	require.NoError(t, err)

	key.Zero()
	var zero [KeySize]byte
	require.Equal(t, zero, key.Key)
}

func TestUnmarshalMalformed(t *testing.T) {
	var sk SecretKey
	require.ErrorIs(t, sk.Unmarshal([]byte("too short")), ErrMalformed)
}
