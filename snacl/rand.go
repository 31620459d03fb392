package snacl

import (
	"crypto/rand"
	"crypto/sha256"
)

func randRead(b []byte) (int, error) {
	return rand.Read(b)
}

func sha256Sum(b []byte) [sha256Size]byte {
	return sha256.Sum256(b)
}
