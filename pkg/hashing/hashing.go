// Package hashing provides the Bitcoin hash compositions used by the key and
// encoding packages.
package hashing

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is part of the Bitcoin formats.
)

const (
	// Hash256Size is the size in bytes of a Hash256 digest.
	Hash256Size = chainhash.HashSize

	// Hash160Size is the size in bytes of a Hash160 digest.
	Hash160Size = ripemd160.Size
)

// Hash256 returns SHA-256(SHA-256(b)).
func Hash256(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// Hash160 returns RIPEMD-160(SHA-256(b)).
func Hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	rmd := ripemd160.New()
	rmd.Write(sum[:])
	return rmd.Sum(nil)
}
