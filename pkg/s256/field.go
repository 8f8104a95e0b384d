package s256

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
	"github.com/mahdiidarabi/ecckit/pkg/field"
)

// Element returns x as an element of the secp256k1 base field.  It fails with
// ecerr.ErrElementOutOfRange unless 0 <= x < P.
func (c *Params) Element(x *big.Int) (field.Element, error) {
	return field.New(x, c.p)
}

// Sqrt returns e^((P+1)/4).  Because P = 3 mod 4 this is a square root of e
// whenever one exists; callers must square the result to confirm it.
func (c *Params) Sqrt(e field.Element) field.Element {
	exp := new(big.Int).Add(c.p, big.NewInt(1))
	exp.Rsh(exp, 2)
	return e.Pow(exp)
}

func (c *Params) checkElement(e field.Element) error {
	if e.Prime().Cmp(c.p) != 0 {
		str := fmt.Sprintf("element %v does not belong to the %s field", e, c.name)
		return ecerr.New(ecerr.ErrFieldMismatch, str)
	}
	return nil
}
