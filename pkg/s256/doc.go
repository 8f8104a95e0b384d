/*
Package s256 specializes the generic curve arithmetic to secp256k1, the curve
y^2 = x^3 + 7 used by Bitcoin.

It provides public points with SEC encoding, ECDSA signatures with DER
encoding, and private keys that sign with a deterministic HMAC-SHA256 nonce
and export to Wallet Import Format.

Basic usage:

	key, err := s256.NewPrivateKey(secret)
	if err != nil {
		return err
	}
	sig, err := key.Sign(msg)
	if err != nil {
		return err
	}
	z := new(big.Int).SetBytes(hashing.Hash256(msg))
	ok := key.PubKey().Verify(z, sig)

Signatures are always produced in low-s form.  Verification rejects r or s
outside [1, N-1] and never panics on malformed input.

All values are immutable and safe to share between goroutines.
*/
package s256
