package s256

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
)

const (
	asn1SequenceID byte = 0x30
	asn1IntegerID  byte = 0x02
)

// Signature is an ECDSA signature (r, s) over secp256k1.
type Signature struct {
	r *big.Int
	s *big.Int
}

// NewSignature creates a signature from copies of r and s.
func NewSignature(r, s *big.Int) *Signature {
	return &Signature{r: new(big.Int).Set(r), s: new(big.Int).Set(s)}
}

// R returns a copy of the r component.
func (sig *Signature) R() *big.Int {
	return new(big.Int).Set(sig.r)
}

// S returns a copy of the s component.
func (sig *Signature) S() *big.Int {
	return new(big.Int).Set(sig.s)
}

// Equal reports whether both signatures carry the same r and s.
func (sig *Signature) Equal(other *Signature) bool {
	return sig.r.Cmp(other.r) == 0 && sig.s.Cmp(other.s) == 0
}

// derInt encodes a non-negative integer as the value part of a DER INTEGER:
// minimal big-endian bytes with a 0x00 prepended when the high bit is set.
func derInt(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 {
		return []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return b
}

// DER returns the DER encoding of the signature:
//
//	0x30 <len> 0x02 <len R> <R> 0x02 <len S> <S>
//
// All lengths fit in a single byte for 256-bit values.
func (sig *Signature) DER() []byte {
	r := derInt(sig.r)
	s := derInt(sig.s)

	payloadLen := 2 + len(r) + 2 + len(s)
	b := make([]byte, 0, 2+payloadLen)
	b = append(b, asn1SequenceID, byte(payloadLen))
	b = append(b, asn1IntegerID, byte(len(r)))
	b = append(b, r...)
	b = append(b, asn1IntegerID, byte(len(s)))
	b = append(b, s...)
	return b
}

// ParseDER parses a strictly encoded DER signature, the inverse of DER.
//
// Lengths must be consistent with the input, both integers must be positive
// and minimally encoded.  Range checks against N are left to Verify.
func ParseDER(sig []byte) (*Signature, error) {
	const (
		// 0x30 <len> 0x02 0x01 <byte> 0x02 0x01 <byte>
		minSigLen = 8

		// 0x30 <len> 0x02 0x21 <33 bytes> 0x02 0x21 <33 bytes>
		maxSigLen = 72

		dataLenOffset = 1
		rTypeOffset   = 2
		rLenOffset    = 3
		rOffset       = 4
	)

	sigLen := len(sig)
	if sigLen < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen, minSigLen)
		return nil, ecerr.New(ecerr.ErrSigTooShort, str)
	}
	if sigLen > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen, maxSigLen)
		return nil, ecerr.New(ecerr.ErrSigTooLong, str)
	}
	if sig[0] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x", sig[0])
		return nil, ecerr.New(ecerr.ErrSigInvalidSeqID, str)
	}
	if int(sig[dataLenOffset]) != sigLen-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d",
			sig[dataLenOffset], sigLen-2)
		return nil, ecerr.New(ecerr.ErrSigInvalidDataLen, str)
	}

	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	if sLenOffset >= sigLen {
		str := "malformed signature: R length runs past the end"
		return nil, ecerr.New(ecerr.ErrSigInvalidIntLen, str)
	}
	sOffset := sLenOffset + 1
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		str := "malformed signature: invalid S length"
		return nil, ecerr.New(ecerr.ErrSigInvalidIntLen, str)
	}

	r, err := parseDERInt("R", sig[rTypeOffset], sig[rOffset:rOffset+rLen])
	if err != nil {
		return nil, err
	}
	s, err := parseDERInt("S", sig[sTypeOffset], sig[sOffset:sOffset+sLen])
	if err != nil {
		return nil, err
	}
	return &Signature{r: r, s: s}, nil
}

func parseDERInt(name string, typeID byte, v []byte) (*big.Int, error) {
	if typeID != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: %s integer marker: %#x != %#x",
			name, typeID, asn1IntegerID)
		return nil, ecerr.New(ecerr.ErrSigInvalidIntID, str)
	}
	if len(v) == 0 {
		str := fmt.Sprintf("malformed signature: %s length is zero", name)
		return nil, ecerr.New(ecerr.ErrSigInvalidIntLen, str)
	}
	if v[0]&0x80 != 0 {
		str := fmt.Sprintf("malformed signature: %s is negative", name)
		return nil, ecerr.New(ecerr.ErrSigNegativeInt, str)
	}
	if len(v) > 1 && v[0] == 0x00 && v[1]&0x80 == 0 {
		str := fmt.Sprintf("malformed signature: %s value has too much padding", name)
		return nil, ecerr.New(ecerr.ErrSigTooMuchPadding, str)
	}
	return new(big.Int).SetBytes(v), nil
}

// String returns Signature(r, s) in hex.
func (sig *Signature) String() string {
	return fmt.Sprintf("Signature(%x,%x)", sig.r, sig.s)
}
