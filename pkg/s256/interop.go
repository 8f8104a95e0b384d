package s256

import (
	dcrsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
)

// ToPubKey converts p to a decred public key, for handing keys to code built
// on the dcrd/btcd stack.  The point at infinity has no public key form.
func (p *Point) ToPubKey() (*dcrsecp.PublicKey, error) {
	if p.IsInfinity() {
		return nil, ecerr.New(ecerr.ErrInvalidPointEncoding, "point at infinity is not a public key")
	}
	return dcrsecp.ParsePubKey(p.SEC(true))
}

// PointFromPubKey converts a decred public key to a Point.
func PointFromPubKey(pub *dcrsecp.PublicKey) (*Point, error) {
	return ParsePoint(pub.SerializeUncompressed())
}

// ToDecred converts k to a decred private key.
func (k *PrivateKey) ToDecred() *dcrsecp.PrivateKey {
	return dcrsecp.PrivKeyFromBytes(k.secretBytes())
}
