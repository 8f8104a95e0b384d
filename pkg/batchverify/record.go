package batchverify

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/ecckit/internal/parser"
	"github.com/mahdiidarabi/ecckit/pkg/hashing"
	"github.com/mahdiidarabi/ecckit/pkg/s256"
)

// Record is one signature to check: the digest that was signed, the
// signature and the public key it should verify under.
type Record struct {
	Z      *big.Int
	Sig    *s256.Signature
	PubKey *s256.Point
}

// HashMessage returns hash256(message) as an integer, the digest Sign uses.
func HashMessage(message []byte) *big.Int {
	return new(big.Int).SetBytes(hashing.Hash256(message))
}

// rawRecord holds the textual fields of a record before decoding.  Exactly
// one of z and message supplies the digest, and either der or both r and s
// supply the signature.
type rawRecord struct {
	z, message  interface{}
	r, s        interface{}
	der, pubKey string
	hasZ        bool
	hasMessage  bool
}

func (raw *rawRecord) decode() (*Record, error) {
	rec := &Record{}

	switch {
	case raw.hasZ:
		z, err := parser.ParseBigInt(raw.z)
		if err != nil {
			return nil, fmt.Errorf("failed to parse z: %w", err)
		}
		rec.Z = z
	case raw.hasMessage:
		switch v := raw.message.(type) {
		case string:
			rec.Z = HashMessage([]byte(v))
		case []byte:
			rec.Z = HashMessage(v)
		default:
			return nil, fmt.Errorf("message field must be string or bytes")
		}
	default:
		return nil, fmt.Errorf("missing message or z field")
	}

	switch {
	case raw.der != "":
		b, err := parser.DecodeHex(raw.der)
		if err != nil {
			return nil, fmt.Errorf("failed to parse der: %w", err)
		}
		sig, err := s256.ParseDER(b)
		if err != nil {
			return nil, fmt.Errorf("failed to parse der: %w", err)
		}
		rec.Sig = sig
	case raw.r != nil && raw.s != nil:
		r, err := parser.ParseBigInt(raw.r)
		if err != nil {
			return nil, fmt.Errorf("failed to parse r: %w", err)
		}
		s, err := parser.ParseBigInt(raw.s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse s: %w", err)
		}
		rec.Sig = s256.NewSignature(r, s)
	default:
		return nil, fmt.Errorf("missing der or r/s fields")
	}

	if raw.pubKey == "" {
		return nil, fmt.Errorf("missing pubkey field")
	}
	b, err := parser.DecodeHex(raw.pubKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pubkey: %w", err)
	}
	pub, err := s256.ParsePoint(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pubkey: %w", err)
	}
	rec.PubKey = pub
	return rec, nil
}
