// Package curve implements the group law of short Weierstrass curves
// y^2 = x^3 + a*x + b over an arbitrary field.
//
// Point is generic over the field arithmetic it needs, so the same algorithm
// serves a toy curve over F_223 in tests and secp256k1 in package s256.
package curve

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
)

// Element is the field arithmetic a Point needs from its coordinates.
type Element[E any] interface {
	Add(E) E
	Sub(E) E
	Mul(E) E
	MulScalar(*big.Int) E
	Div(E) E
	Neg() E
	Equal(E) bool
	IsZero() bool
}

var (
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// Point is an affine point on the curve y^2 = x^3 + a*x + b, or the point at
// infinity of that curve.  Points are immutable values.
type Point[E Element[E]] struct {
	x, y E
	a, b E
	inf  bool
}

// NewPoint creates the finite point (x, y) on the curve with coefficients a
// and b.  It returns an error of kind ecerr.ErrPointNotOnCurve when the
// coordinates do not satisfy the curve equation.
func NewPoint[E Element[E]](x, y, a, b E) (Point[E], error) {
	// y^2 == x^3 + a*x + b
	lhs := y.Mul(y)
	rhs := x.Mul(x).Mul(x).Add(a.Mul(x)).Add(b)
	if !lhs.Equal(rhs) {
		str := fmt.Sprintf("(%v, %v) is not on the curve", x, y)
		return Point[E]{}, ecerr.New(ecerr.ErrPointNotOnCurve, str)
	}
	return Point[E]{x: x, y: y, a: a, b: b}, nil
}

// Infinity returns the identity element of the curve with coefficients a and
// b.
func Infinity[E Element[E]](a, b E) Point[E] {
	return Point[E]{a: a, b: b, inf: true}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point[E]) IsInfinity() bool {
	return p.inf
}

// X returns the x coordinate.  The second return value is false for the point
// at infinity.
func (p Point[E]) X() (E, bool) {
	return p.x, !p.inf
}

// Y returns the y coordinate.  The second return value is false for the point
// at infinity.
func (p Point[E]) Y() (E, bool) {
	return p.y, !p.inf
}

// A returns the curve coefficient a.
func (p Point[E]) A() E {
	return p.a
}

// B returns the curve coefficient b.
func (p Point[E]) B() E {
	return p.b
}

// SameCurve reports whether p and q lie on curves with identical
// coefficients.
func (p Point[E]) SameCurve(q Point[E]) bool {
	return p.a.Equal(q.a) && p.b.Equal(q.b)
}

// Equal reports whether p and q are the same point on the same curve.
func (p Point[E]) Equal(q Point[E]) bool {
	if !p.SameCurve(q) {
		return false
	}
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Neg returns the additive inverse (x, -y) of p.
func (p Point[E]) Neg() Point[E] {
	if p.inf {
		return p
	}
	return Point[E]{x: p.x, y: p.y.Neg(), a: p.a, b: p.b}
}

// Add returns p + q.  It returns an error of kind ecerr.ErrCurveMismatch when
// the points lie on different curves.
func (p Point[E]) Add(q Point[E]) (Point[E], error) {
	if !p.SameCurve(q) {
		str := fmt.Sprintf("points %v and %v are not on the same curve", p, q)
		return Point[E]{}, ecerr.New(ecerr.ErrCurveMismatch, str)
	}
	return p.add(q), nil
}

// add implements the chord-and-tangent rule for two points already known to
// share a curve.
func (p Point[E]) add(q Point[E]) Point[E] {
	switch {
	case p.inf:
		return q

	case q.inf:
		return p

	// Vertical tangent: doubling a point with y == 0.
	case p.Equal(q) && p.y.IsZero():
		return Infinity(p.a, p.b)

	// Tangent: s = (3x^2 + a) / 2y, x' = s^2 - 2x, y' = s(x - x') - y.
	case p.Equal(q):
		s := p.x.Mul(p.x).MulScalar(bigThree).Add(p.a).Div(p.y.MulScalar(bigTwo))
		x := s.Mul(s).Sub(p.x.MulScalar(bigTwo))
		y := s.Mul(p.x.Sub(x)).Sub(p.y)
		return Point[E]{x: x, y: y, a: p.a, b: p.b}

	// Vertical chord: q is the inverse of p.
	case p.x.Equal(q.x):
		return Infinity(p.a, p.b)

	// Chord: s = (y2 - y1) / (x2 - x1), x' = s^2 - x1 - x2, y' = s(x1 - x') - y1.
	default:
		s := q.y.Sub(p.y).Div(q.x.Sub(p.x))
		x := s.Mul(s).Sub(p.x).Sub(q.x)
		y := s.Mul(p.x.Sub(x)).Sub(p.y)
		return Point[E]{x: x, y: y, a: p.a, b: p.b}
	}
}

// ScalarMul returns k*p using binary double-and-add over the bits of k,
// least significant first.  k must be non-negative; 0*p is the point at
// infinity.
func (p Point[E]) ScalarMul(k *big.Int) Point[E] {
	if k.Sign() < 0 {
		panic("curve: negative scalar")
	}
	result := Infinity(p.a, p.b)
	current := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = result.add(current)
		}
		current = current.add(current)
	}
	return result
}

// String returns Point(infinity) or Point(x, y)_a_b.
func (p Point[E]) String() string {
	if p.inf {
		return "Point(infinity)"
	}
	return fmt.Sprintf("Point(%v, %v)_%v_%v", p.x, p.y, p.a, p.b)
}
