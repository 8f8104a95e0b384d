package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
	"github.com/mahdiidarabi/ecckit/pkg/field"
)

const testPrime = 223

type testCurve struct {
	t    *testing.T
	a, b field.Element
}

// newTestCurve returns y^2 = x^3 + 7 over F_223.
func newTestCurve(t *testing.T) testCurve {
	t.Helper()
	return testCurve{t: t, a: elem(t, 0), b: elem(t, 7)}
}

func elem(t *testing.T, n int64) field.Element {
	t.Helper()
	e, err := field.NewInt64(n, testPrime)
	require.NoError(t, err)
	return e
}

func (c testCurve) point(x, y int64) Point[field.Element] {
	c.t.Helper()
	p, err := NewPoint(elem(c.t, x), elem(c.t, y), c.a, c.b)
	require.NoError(c.t, err)
	return p
}

func (c testCurve) inf() Point[field.Element] {
	return Infinity(c.a, c.b)
}

func (c testCurve) add(p, q Point[field.Element]) Point[field.Element] {
	c.t.Helper()
	r, err := p.Add(q)
	require.NoError(c.t, err)
	return r
}

func TestNewPoint_OnCurve(t *testing.T) {
	c := newTestCurve(t)

	valid := [][2]int64{{192, 105}, {17, 56}, {1, 193}}
	for _, v := range valid {
		_, err := NewPoint(elem(t, v[0]), elem(t, v[1]), c.a, c.b)
		assert.NoError(t, err, "point %v", v)
	}

	invalid := [][2]int64{{200, 119}, {42, 99}}
	for _, v := range invalid {
		_, err := NewPoint(elem(t, v[0]), elem(t, v[1]), c.a, c.b)
		assert.ErrorIs(t, err, ecerr.ErrPointNotOnCurve, "point %v", v)
	}
}

func TestAdd(t *testing.T) {
	c := newTestCurve(t)
	tests := []struct {
		x1, y1, x2, y2, x3, y3 int64
	}{
		{170, 142, 60, 139, 220, 181},
		{47, 71, 17, 56, 215, 68},
		{143, 98, 76, 66, 47, 71},
	}

	for _, test := range tests {
		got := c.add(c.point(test.x1, test.y1), c.point(test.x2, test.y2))
		want := c.point(test.x3, test.y3)
		assert.True(t, got.Equal(want), "got %v, want %v", got, want)
	}
}

func TestAdd_Identity(t *testing.T) {
	c := newTestCurve(t)
	p := c.point(47, 71)

	assert.True(t, c.add(p, c.inf()).Equal(p))
	assert.True(t, c.add(c.inf(), p).Equal(p))
	assert.True(t, c.add(c.inf(), c.inf()).IsInfinity())
}

func TestAdd_Inverse(t *testing.T) {
	c := newTestCurve(t)
	for _, v := range [][2]int64{{47, 71}, {192, 105}, {17, 56}} {
		p := c.point(v[0], v[1])
		assert.True(t, c.add(p, p.Neg()).IsInfinity(), "P + -P for %v", v)
	}
}

func TestAdd_VerticalTangent(t *testing.T) {
	c := newTestCurve(t)
	// 6^3 + 7 = 223 = 0 mod 223
	p := c.point(6, 0)
	assert.True(t, c.add(p, p).IsInfinity())
	assert.True(t, p.ScalarMul(big.NewInt(2)).IsInfinity())
}

func TestAdd_CurveMismatch(t *testing.T) {
	c := newTestCurve(t)
	p := c.point(47, 71)

	// (1, 1) lies on y^2 = x^3.
	other, err := NewPoint(elem(t, 1), elem(t, 1), elem(t, 0), elem(t, 0))
	require.NoError(t, err)

	_, err = p.Add(other)
	assert.ErrorIs(t, err, ecerr.ErrCurveMismatch)
	assert.False(t, p.Equal(other))

	_, err = c.inf().Add(Infinity(elem(t, 0), elem(t, 0)))
	assert.ErrorIs(t, err, ecerr.ErrCurveMismatch)
}

func TestScalarMul(t *testing.T) {
	c := newTestCurve(t)
	tests := []struct {
		k, x, y, wantX, wantY int64
		wantInf              bool
	}{
		{k: 2, x: 192, y: 105, wantX: 49, wantY: 71},
		{k: 2, x: 143, y: 98, wantX: 64, wantY: 168},
		{k: 2, x: 47, y: 71, wantX: 36, wantY: 111},
		{k: 4, x: 47, y: 71, wantX: 194, wantY: 51},
		{k: 8, x: 47, y: 71, wantX: 116, wantY: 55},
		{k: 21, x: 47, y: 71, wantInf: true},
		{k: 7, x: 15, y: 86, wantInf: true},
		{k: 1, x: 15, y: 86, wantX: 15, wantY: 86},
		{k: 0, x: 15, y: 86, wantInf: true},
	}

	for _, test := range tests {
		got := c.point(test.x, test.y).ScalarMul(big.NewInt(test.k))
		if test.wantInf {
			assert.True(t, got.IsInfinity(), "%d*(%d,%d) = %v", test.k, test.x, test.y, got)
			continue
		}
		want := c.point(test.wantX, test.wantY)
		assert.True(t, got.Equal(want), "%d*(%d,%d): got %v, want %v", test.k, test.x, test.y, got, want)
	}
}

func TestScalarMul_LargerThanOrder(t *testing.T) {
	c := newTestCurve(t)
	p := c.point(47, 71)
	// (47, 71) has order 21.
	assert.True(t, p.ScalarMul(big.NewInt(23)).Equal(p.ScalarMul(big.NewInt(2))))
}

func TestGroupLaw_Associativity(t *testing.T) {
	c := newTestCurve(t)
	p, q, r := c.point(47, 71), c.point(17, 56), c.point(143, 98)

	left := c.add(c.add(p, q), r)
	right := c.add(p, c.add(q, r))
	assert.True(t, left.Equal(right))

	// Doubling inside the expression.
	left = c.add(c.add(p, p), q)
	right = c.add(p, c.add(p, q))
	assert.True(t, left.Equal(right))
}

func TestScalarMul_Distributes(t *testing.T) {
	c := newTestCurve(t)
	p := c.point(47, 71)
	for m := int64(0); m < 25; m += 3 {
		for n := int64(0); n < 25; n += 4 {
			left := p.ScalarMul(big.NewInt(m + n))
			right := c.add(p.ScalarMul(big.NewInt(m)), p.ScalarMul(big.NewInt(n)))
			assert.True(t, left.Equal(right), "(%d+%d)*P", m, n)
		}
	}
}

func TestAccessors(t *testing.T) {
	c := newTestCurve(t)
	p := c.point(47, 71)

	x, ok := p.X()
	require.True(t, ok)
	assert.Equal(t, int64(47), x.Num().Int64())
	y, ok := p.Y()
	require.True(t, ok)
	assert.Equal(t, int64(71), y.Num().Int64())
	assert.True(t, p.A().Equal(c.a))
	assert.True(t, p.B().Equal(c.b))

	_, ok = c.inf().X()
	assert.False(t, ok)
	assert.Equal(t, "Point(infinity)", c.inf().String())
}
