// Package field implements arithmetic on elements of a prime field F_p.
//
// Element is an immutable value type.  Every operation returns a new element
// and never modifies its receiver or its argument, so elements can be shared
// freely between goroutines.
//
// Combining elements that belong to different fields, or dividing by the
// zero element, is a programming error and panics with an ecerr.Error whose
// kind is ecerr.ErrFieldMismatch or ecerr.ErrDivisionByZero respectively.
package field

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Element is a member of the prime field of order Prime.
type Element struct {
	num   *big.Int
	prime *big.Int
}

// New creates the element num of the field of order prime.
//
// Args:
//   - num: Value of the element, must lie in [0, prime)
//   - prime: Order of the field
//
// Returns:
//   - The element, or an error of kind ecerr.ErrElementOutOfRange
func New(num, prime *big.Int) (Element, error) {
	if num.Sign() < 0 || num.Cmp(prime) >= 0 {
		str := fmt.Sprintf("num %s not in field range 0 to %s", num.Text(10),
			new(big.Int).Sub(prime, bigOne).Text(10))
		return Element{}, ecerr.New(ecerr.ErrElementOutOfRange, str)
	}
	return Element{num: new(big.Int).Set(num), prime: new(big.Int).Set(prime)}, nil
}

// NewInt64 is a convenience wrapper around New for small fields.
func NewInt64(num, prime int64) (Element, error) {
	return New(big.NewInt(num), big.NewInt(prime))
}

// Reduce creates the element num mod prime.  Unlike New it accepts any
// integer, including negative ones.
func Reduce(num, prime *big.Int) Element {
	return Element{num: mod(num, prime), prime: new(big.Int).Set(prime)}
}

// mod returns x mod m normalized into [0, m).  big.Int.Mod already uses
// Euclidean modulus, so the result is never negative.
func mod(x, m *big.Int) *big.Int {
	return new(big.Int).Mod(x, m)
}

// Num returns a copy of the element's value.
func (e Element) Num() *big.Int {
	return new(big.Int).Set(e.num)
}

// Prime returns a copy of the order of the element's field.
func (e Element) Prime() *big.Int {
	return new(big.Int).Set(e.prime)
}

// Equal reports whether both elements have the same value and prime.
func (e Element) Equal(other Element) bool {
	if e.num == nil || other.num == nil {
		return e.num == nil && other.num == nil
	}
	return e.num.Cmp(other.num) == 0 && e.prime.Cmp(other.prime) == 0
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.num.Sign() == 0
}

// IsOdd reports whether the value of e is odd.
func (e Element) IsOdd() bool {
	return e.num.Bit(0) == 1
}

func (e Element) mustMatch(other Element, op string) {
	if e.prime.Cmp(other.prime) != 0 {
		str := fmt.Sprintf("field orders must be equivalent for field %s "+
			"(%s != %s)", op, e.prime.Text(10), other.prime.Text(10))
		panic(ecerr.New(ecerr.ErrFieldMismatch, str))
	}
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	e.mustMatch(other, "addition")
	return Element{num: mod(new(big.Int).Add(e.num, other.num), e.prime), prime: e.prime}
}

// Sub returns e - other, normalized into [0, prime).
func (e Element) Sub(other Element) Element {
	e.mustMatch(other, "subtraction")
	return Element{num: mod(new(big.Int).Sub(e.num, other.num), e.prime), prime: e.prime}
}

// Neg returns the additive inverse of e.
func (e Element) Neg() Element {
	return Element{num: mod(new(big.Int).Neg(e.num), e.prime), prime: e.prime}
}

// Mul returns e * other where both operands are field elements.
func (e Element) Mul(other Element) Element {
	e.mustMatch(other, "multiplication")
	return Element{num: mod(new(big.Int).Mul(e.num, other.num), e.prime), prime: e.prime}
}

// MulScalar returns k * e where k is a plain integer.
func (e Element) MulScalar(k *big.Int) Element {
	return Element{num: mod(new(big.Int).Mul(e.num, k), e.prime), prime: e.prime}
}

// Pow returns e^exp.  Negative exponents are reduced into [0, prime-2] by
// Fermat's little theorem, so e^-1 is the multiplicative inverse of e.
func (e Element) Pow(exp *big.Int) Element {
	if e.IsZero() {
		switch exp.Sign() {
		case 0:
			return Element{num: big.NewInt(1), prime: e.prime}
		case -1:
			panic(ecerr.New(ecerr.ErrDivisionByZero, "zero element raised to a negative power"))
		}
		return e
	}
	n := mod(exp, new(big.Int).Sub(e.prime, bigOne))
	return Element{num: new(big.Int).Exp(e.num, n, e.prime), prime: e.prime}
}

// PowInt64 is a convenience wrapper around Pow.
func (e Element) PowInt64(exp int64) Element {
	return e.Pow(big.NewInt(exp))
}

// Inverse returns e^(prime-2), the multiplicative inverse of e.
func (e Element) Inverse() Element {
	if e.IsZero() {
		panic(ecerr.New(ecerr.ErrDivisionByZero, "zero element has no inverse"))
	}
	exp := new(big.Int).Sub(e.prime, bigTwo)
	return Element{num: new(big.Int).Exp(e.num, exp, e.prime), prime: e.prime}
}

// Div returns e / other computed as e * other^(prime-2).
func (e Element) Div(other Element) Element {
	e.mustMatch(other, "division")
	if other.IsZero() {
		panic(ecerr.New(ecerr.ErrDivisionByZero, "field division by the zero element"))
	}
	return e.Mul(other.Inverse())
}

// String returns the element as FieldElement_<prime>(<num>).
func (e Element) String() string {
	if e.num == nil {
		return "FieldElement(nil)"
	}
	return fmt.Sprintf("FieldElement_%s(%s)", e.prime.Text(10), e.num.Text(10))
}
