package s256

import (
	"math/big"

	"github.com/mahdiidarabi/ecckit/pkg/curve"
	"github.com/mahdiidarabi/ecckit/pkg/field"
)

// Params holds the secp256k1 domain parameters: the field prime P, the group
// order N, the generator G and the curve coefficients A = 0 and B = 7.
//
// A Params value is built once and never modified afterwards; accessors hand
// out copies, so a single instance is shared by every Point, Signature and
// PrivateKey in the process.
type Params struct {
	name  string
	p     *big.Int
	n     *big.Int
	halfN *big.Int
	gx    *big.Int
	gy    *big.Int
	a     field.Element
	b     field.Element
	g     *Point
}

var secp256k1 = newParams()

func fromHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return n
}

func newParams() *Params {
	// P = 2^256 - 2^32 - 977
	p := new(big.Int).Lsh(big.NewInt(1), 256)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), 32))
	p.Sub(p, big.NewInt(977))

	params := &Params{
		name: "secp256k1",
		p:    p,
		n:    fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
		gx:   fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		gy:   fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		a:    field.Reduce(big.NewInt(0), p),
		b:    field.Reduce(big.NewInt(7), p),
	}
	params.halfN = new(big.Int).Rsh(params.n, 1)

	g, err := params.NewPoint(params.gx, params.gy)
	if err != nil {
		panic("secp256k1 generator is not on the curve: " + err.Error())
	}
	params.g = g
	return params
}

// S256 returns the secp256k1 domain parameters.
func S256() *Params {
	return secp256k1
}

// Name returns the curve name.
func (c *Params) Name() string { return c.name }

// P returns the field prime.
func (c *Params) P() *big.Int { return new(big.Int).Set(c.p) }

// N returns the order of the group generated by G.
func (c *Params) N() *big.Int { return new(big.Int).Set(c.n) }

// HalfN returns floor(N / 2), the largest canonical (low) s value.
func (c *Params) HalfN() *big.Int { return new(big.Int).Set(c.halfN) }

// A returns the curve coefficient a as a field element.
func (c *Params) A() field.Element { return c.a }

// B returns the curve coefficient b as a field element.
func (c *Params) B() field.Element { return c.b }

// G returns the generator point.
func (c *Params) G() *Point { return c.g }

// Infinity returns the point at infinity of secp256k1.
func (c *Params) Infinity() *Point {
	return &Point{params: c, pt: curve.Infinity(c.a, c.b)}
}
