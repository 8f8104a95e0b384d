package s256

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/ecckit/pkg/curve"
	"github.com/mahdiidarabi/ecckit/pkg/field"
	"github.com/mahdiidarabi/ecckit/pkg/hashing"
)

// Point is a point on secp256k1, usually a public key.  It wraps the generic
// group law from package curve with the fixed secp256k1 parameters.
type Point struct {
	params *Params
	pt     curve.Point[field.Element]
}

// NewPoint creates the point (x, y) on secp256k1 from raw integers.
func NewPoint(x, y *big.Int) (*Point, error) {
	return secp256k1.NewPoint(x, y)
}

// NewPoint creates the point (x, y) from raw integers, which must lie in
// [0, P) and satisfy y^2 = x^3 + 7.
func (c *Params) NewPoint(x, y *big.Int) (*Point, error) {
	fx, err := c.Element(x)
	if err != nil {
		return nil, err
	}
	fy, err := c.Element(y)
	if err != nil {
		return nil, err
	}
	return c.NewPointFromElements(fx, fy)
}

// NewPointFromElements creates the point (x, y) from elements of the
// secp256k1 base field.
func (c *Params) NewPointFromElements(x, y field.Element) (*Point, error) {
	if err := c.checkElement(x); err != nil {
		return nil, err
	}
	if err := c.checkElement(y); err != nil {
		return nil, err
	}
	pt, err := curve.NewPoint(x, y, c.a, c.b)
	if err != nil {
		return nil, err
	}
	return &Point{params: c, pt: pt}, nil
}

// Params returns the curve parameters the point belongs to.
func (p *Point) Params() *Params {
	return p.params
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.pt.IsInfinity()
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p *Point) X() *big.Int {
	x, ok := p.pt.X()
	if !ok {
		return nil
	}
	return x.Num()
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p *Point) Y() *big.Int {
	y, ok := p.pt.Y()
	if !ok {
		return nil
	}
	return y.Num()
}

// Equal reports whether p and q are the same point.
func (p *Point) Equal(q *Point) bool {
	return p.pt.Equal(q.pt)
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	sum, err := p.pt.Add(q.pt)
	if err != nil {
		// Every Point is built from the same Params, so the curves always
		// match.
		panic(err)
	}
	return &Point{params: p.params, pt: sum}
}

// Neg returns -p.
func (p *Point) Neg() *Point {
	return &Point{params: p.params, pt: p.pt.Neg()}
}

// ScalarMult returns k*p.  k is reduced modulo N first, which does not change
// the result because every point on secp256k1 has an order dividing N.
func (p *Point) ScalarMult(k *big.Int) *Point {
	coef := new(big.Int).Mod(k, p.params.n)
	return &Point{params: p.params, pt: p.pt.ScalarMul(coef)}
}

// ScalarBaseMult returns k*G.
func (c *Params) ScalarBaseMult(k *big.Int) *Point {
	return c.g.ScalarMult(k)
}

// Verify reports whether sig is a valid signature of the digest z under the
// public key p.
//
// Signatures with r or s outside [1, N-1] are rejected, as is the degenerate
// case where u*G + v*p is the point at infinity.
func (p *Point) Verify(z *big.Int, sig *Signature) bool {
	n := p.params.n
	if sig == nil || p.IsInfinity() {
		return false
	}
	if sig.r.Sign() <= 0 || sig.r.Cmp(n) >= 0 || sig.s.Sign() <= 0 || sig.s.Cmp(n) >= 0 {
		return false
	}

	// s^-1 = s^(N-2) mod N
	sInv := new(big.Int).Exp(sig.s, new(big.Int).Sub(n, big.NewInt(2)), n)
	u := new(big.Int).Mul(z, sInv)
	u.Mod(u, n)
	v := new(big.Int).Mul(sig.r, sInv)
	v.Mod(v, n)

	total := p.params.ScalarBaseMult(u).Add(p.ScalarMult(v))
	if total.IsInfinity() {
		log.Debug("verification produced the point at infinity",
			zap.String("r", sig.r.Text(16)))
		return false
	}

	x := total.X()
	x.Mod(x, n)
	return x.Cmp(sig.r) == 0
}

// Hash160 returns Hash160 of the SEC encoding of p.
func (p *Point) Hash160(compressed bool) []byte {
	return hashing.Hash160(p.SEC(compressed))
}

// String returns S256Point(x, y) in hex or S256Point(infinity).
func (p *Point) String() string {
	if p.IsInfinity() {
		return "S256Point(infinity)"
	}
	return fmt.Sprintf("S256Point(%064x, %064x)", p.X(), p.Y())
}
