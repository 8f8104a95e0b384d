package s256

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
)

const (
	// PubKeyBytesLenCompressed is the length of a compressed SEC point.
	PubKeyBytesLenCompressed = 33

	// PubKeyBytesLenUncompressed is the length of an uncompressed SEC point.
	PubKeyBytesLenUncompressed = 65

	pubKeyFormatCompressedEven byte = 0x02
	pubKeyFormatCompressedOdd  byte = 0x03
	pubKeyFormatUncompressed   byte = 0x04

	coordLen = 32
)

// SEC returns the SEC encoding of p.
//
// The compressed form is 0x02 (even y) or 0x03 (odd y) followed by the 32-byte
// big-endian x.  The uncompressed form is 0x04 followed by x and y.  The point
// at infinity encodes as the single byte 0x00, which ParsePoint rejects.
func (p *Point) SEC(compressed bool) []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}

	x, _ := p.pt.X()
	y, _ := p.pt.Y()
	if compressed {
		b := make([]byte, PubKeyBytesLenCompressed)
		b[0] = pubKeyFormatCompressedEven
		if y.IsOdd() {
			b[0] = pubKeyFormatCompressedOdd
		}
		x.Num().FillBytes(b[1:])
		return b
	}

	b := make([]byte, PubKeyBytesLenUncompressed)
	b[0] = pubKeyFormatUncompressed
	x.Num().FillBytes(b[1 : 1+coordLen])
	y.Num().FillBytes(b[1+coordLen:])
	return b
}

// ParsePoint parses a SEC encoded secp256k1 point.
func ParsePoint(b []byte) (*Point, error) {
	return secp256k1.ParsePoint(b)
}

// ParsePoint parses a SEC encoded point, the inverse of Point.SEC.
//
// It fails with ecerr.ErrInvalidPointEncoding for an unknown prefix byte or a
// length that does not match the prefix, and with ecerr.ErrPointNotOnCurve
// when the coordinates do not describe a point on the curve.
func (c *Params) ParsePoint(b []byte) (*Point, error) {
	if len(b) == 0 {
		return nil, ecerr.New(ecerr.ErrInvalidPointEncoding, "empty SEC encoding")
	}

	switch b[0] {
	case pubKeyFormatUncompressed:
		if len(b) != PubKeyBytesLenUncompressed {
			str := fmt.Sprintf("malformed uncompressed point: %d bytes, want %d",
				len(b), PubKeyBytesLenUncompressed)
			return nil, ecerr.New(ecerr.ErrInvalidPointEncoding, str)
		}
		x := new(big.Int).SetBytes(b[1 : 1+coordLen])
		y := new(big.Int).SetBytes(b[1+coordLen:])
		if x.Cmp(c.p) >= 0 || y.Cmp(c.p) >= 0 {
			return nil, ecerr.New(ecerr.ErrInvalidPointEncoding, "coordinate exceeds the field prime")
		}
		return c.NewPoint(x, y)

	case pubKeyFormatCompressedEven, pubKeyFormatCompressedOdd:
		if len(b) != PubKeyBytesLenCompressed {
			str := fmt.Sprintf("malformed compressed point: %d bytes, want %d",
				len(b), PubKeyBytesLenCompressed)
			return nil, ecerr.New(ecerr.ErrInvalidPointEncoding, str)
		}
		x := new(big.Int).SetBytes(b[1:])
		if x.Cmp(c.p) >= 0 {
			return nil, ecerr.New(ecerr.ErrInvalidPointEncoding, "x coordinate exceeds the field prime")
		}
		return c.decompress(x, b[0] == pubKeyFormatCompressedOdd)

	default:
		str := fmt.Sprintf("unknown SEC prefix byte 0x%02x", b[0])
		return nil, ecerr.New(ecerr.ErrInvalidPointEncoding, str)
	}
}

// decompress recovers y from x by solving y^2 = x^3 + 7 and picks the root
// with the requested parity.
func (c *Params) decompress(x *big.Int, odd bool) (*Point, error) {
	fx, err := c.Element(x)
	if err != nil {
		return nil, err
	}

	alpha := fx.Mul(fx).Mul(fx).Add(c.b)
	beta := c.Sqrt(alpha)
	if !beta.Mul(beta).Equal(alpha) {
		str := fmt.Sprintf("x coordinate %064x has no point on the curve", x)
		return nil, ecerr.New(ecerr.ErrPointNotOnCurve, str)
	}

	y := beta
	if beta.IsOdd() != odd {
		y = beta.Neg()
	}
	return c.NewPointFromElements(fx, y)
}
