// Package base58 implements the Bitcoin base58 and Base58Check text
// encodings.
package base58

import (
	"bytes"
	"math/big"

	btcbase58 "github.com/btcsuite/btcd/btcutil/base58"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
	"github.com/mahdiidarabi/ecckit/pkg/hashing"
)

// Alphabet is the Bitcoin base58 alphabet.  It omits 0, O, I and l.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ChecksumSize is the number of Hash256 bytes appended by EncodeCheck.
const ChecksumSize = 4

var bigRadix = big.NewInt(58)

// Encode returns the base58 encoding of b.  Each leading zero byte becomes a
// leading '1'.
func Encode(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	num := new(big.Int).SetBytes(b)
	digits := make([]byte, 0, len(b)*138/100+1)
	mod := new(big.Int)
	for num.Sign() > 0 {
		num.DivMod(num, bigRadix, mod)
		digits = append(digits, Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, zeros+len(digits))
	out = append(out, bytes.Repeat([]byte{Alphabet[0]}, zeros)...)
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// Decode returns the bytes represented by the base58 string s.
func Decode(s string) ([]byte, error) {
	decoded := btcbase58.Decode(s)
	if len(decoded) == 0 && len(s) != 0 {
		return nil, ecerr.New(ecerr.ErrInvalidBase58, "invalid base58 string")
	}
	return decoded, nil
}

// EncodeCheck returns Encode(payload || Hash256(payload)[:4]).
func EncodeCheck(payload []byte) string {
	b := make([]byte, 0, len(payload)+ChecksumSize)
	b = append(b, payload...)
	b = append(b, checksum(payload)...)
	return Encode(b)
}

// DecodeCheck decodes a Base58Check string and returns the payload with the
// checksum removed.
func DecodeCheck(s string) ([]byte, error) {
	decoded, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) < ChecksumSize {
		return nil, ecerr.New(ecerr.ErrBadChecksum, "base58check string too short")
	}

	payload := decoded[:len(decoded)-ChecksumSize]
	if !bytes.Equal(checksum(payload), decoded[len(decoded)-ChecksumSize:]) {
		return nil, ecerr.New(ecerr.ErrBadChecksum, "base58check checksum mismatch")
	}
	return payload, nil
}

func checksum(payload []byte) []byte {
	return hashing.Hash256(payload)[:ChecksumSize]
}
