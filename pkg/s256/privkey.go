package s256

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/ecckit/pkg/base58"
	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
	"github.com/mahdiidarabi/ecckit/pkg/hashing"
)

const (
	// PrivKeyBytesLen is the length of a serialized secret.
	PrivKeyBytesLen = 32

	// maxNonceIterations bounds the deterministic nonce loop.  Each
	// iteration fails with probability below 2^-127, so reaching the bound
	// means something is badly broken.
	maxNonceIterations = 1024

	wifPayloadLen       = 1 + PrivKeyBytesLen
	wifCompressedPayLen = wifPayloadLen + 1
)

const (
	wifMainNetPrefix byte = 0x80
	wifTestNetPrefix byte = 0xef
	wifCompressFlag  byte = 0x01
)

// PrivateKey is a secp256k1 secret scalar together with its public point.
type PrivateKey struct {
	secret *big.Int
	point  *Point
}

// NewPrivateKey creates the private key for secret, which must be in
// [1, N-1].
func NewPrivateKey(secret *big.Int) (*PrivateKey, error) {
	if secret.Sign() <= 0 || secret.Cmp(secp256k1.n) >= 0 {
		return nil, ecerr.New(ecerr.ErrInvalidSecret, "secret must be in [1, N-1]")
	}
	s := new(big.Int).Set(secret)
	return &PrivateKey{secret: s, point: secp256k1.ScalarBaseMult(s)}, nil
}

// PrivKeyFromBytes creates a private key from a 32-byte big-endian secret.
func PrivKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivKeyBytesLen {
		str := fmt.Sprintf("secret must be %d bytes, got %d", PrivKeyBytesLen, len(b))
		return nil, ecerr.New(ecerr.ErrInvalidSecret, str)
	}
	return NewPrivateKey(new(big.Int).SetBytes(b))
}

// GeneratePrivateKey draws a uniformly random secret in [1, N-1] from rand,
// retrying candidates that fall outside that range.
func GeneratePrivateKey(rand io.Reader) (*PrivateKey, error) {
	var buf [PrivKeyBytesLen]byte
	for {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return nil, fmt.Errorf("failed to read random secret: %w", err)
		}
		secret := new(big.Int).SetBytes(buf[:])
		if secret.Sign() > 0 && secret.Cmp(secp256k1.n) < 0 {
			return NewPrivateKey(secret)
		}
	}
}

// PubKey returns the public point secret*G.
func (k *PrivateKey) PubKey() *Point {
	return k.point
}

// Secret returns a copy of the secret scalar.
func (k *PrivateKey) Secret() *big.Int {
	return new(big.Int).Set(k.secret)
}

func (k *PrivateKey) secretBytes() []byte {
	b := make([]byte, PrivKeyBytesLen)
	k.secret.FillBytes(b)
	return b
}

// Hex returns the secret as 64 hex digits.
func (k *PrivateKey) Hex() string {
	return fmt.Sprintf("%064x", k.secret)
}

// Sign signs hash256(msg).
func (k *PrivateKey) Sign(msg []byte) (*Signature, error) {
	z := new(big.Int).SetBytes(hashing.Hash256(msg))
	return k.SignHash(z)
}

// SignHash signs the digest z, which must be a non-negative integer of at
// most 256 bits.  The nonce is derived deterministically from the secret and
// z, so signing the same digest twice yields the same signature.  The result
// always has s <= N/2.
func (k *PrivateKey) SignHash(z *big.Int) (*Signature, error) {
	if z.Sign() < 0 || z.BitLen() > 256 {
		return nil, ecerr.New(ecerr.ErrInvalidDigest, "digest must be a non-negative 256-bit integer")
	}

	n := secp256k1.n
	nonce, err := k.deterministicK(z)
	if err != nil {
		return nil, err
	}

	r := secp256k1.ScalarBaseMult(nonce).X()
	r.Mod(r, n)

	// k^-1 = k^(N-2) mod N
	kInv := new(big.Int).Exp(nonce, new(big.Int).Sub(n, big.NewInt(2)), n)
	s := new(big.Int).Mul(r, k.secret)
	s.Add(s, z)
	s.Mul(s, kInv)
	s.Mod(s, n)
	if s.Cmp(secp256k1.halfN) > 0 {
		s.Sub(n, s)
	}
	return &Signature{r: r, s: s}, nil
}

// deterministicK derives the signing nonce from the secret and digest with
// HMAC-SHA256 in the manner of RFC 6979.  A digest above N is reduced by a
// single subtraction of N before it is mixed in.
func (k *PrivateKey) deterministicK(z *big.Int) (*big.Int, error) {
	n := secp256k1.n
	if z.Cmp(n) > 0 {
		z = new(big.Int).Sub(z, n)
	}

	zBytes := make([]byte, 32)
	z.FillBytes(zBytes)
	secret := k.secretBytes()

	hk := make([]byte, sha256.Size)
	v := make([]byte, sha256.Size)
	for i := range v {
		v[i] = 0x01
	}

	hk = hmacSHA256(hk, v, []byte{0x00}, secret, zBytes)
	v = hmacSHA256(hk, v)
	hk = hmacSHA256(hk, v, []byte{0x01}, secret, zBytes)
	v = hmacSHA256(hk, v)

	for i := 0; i < maxNonceIterations; i++ {
		v = hmacSHA256(hk, v)
		candidate := new(big.Int).SetBytes(v)
		if candidate.Sign() > 0 && candidate.Cmp(n) < 0 {
			return candidate, nil
		}
		log.Debug("nonce candidate rejected", zap.Int("iteration", i))
		hk = hmacSHA256(hk, v, []byte{0x00})
		v = hmacSHA256(hk, v)
	}
	return nil, ecerr.New(ecerr.ErrNonceExhausted,
		fmt.Sprintf("no valid nonce after %d iterations", maxNonceIterations))
}

func hmacSHA256(key []byte, data ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, d := range data {
		mac.Write(d)
	}
	return mac.Sum(nil)
}

// WIF returns the key in Wallet Import Format: Base58Check of the network
// prefix (0x80 mainnet, 0xef testnet), the 32-byte secret and, when
// compressed is set, a trailing 0x01.
func (k *PrivateKey) WIF(compressed, testnet bool) string {
	payload := make([]byte, 0, wifCompressedPayLen)
	if testnet {
		payload = append(payload, wifTestNetPrefix)
	} else {
		payload = append(payload, wifMainNetPrefix)
	}
	payload = append(payload, k.secretBytes()...)
	if compressed {
		payload = append(payload, wifCompressFlag)
	}
	return base58.EncodeCheck(payload)
}

// ParseWIF decodes a Wallet Import Format string.  It reports whether the key
// asks for a compressed public key and whether it belongs to testnet.
func ParseWIF(s string) (key *PrivateKey, compressed, testnet bool, err error) {
	payload, err := base58.DecodeCheck(s)
	if err != nil {
		return nil, false, false, err
	}

	switch len(payload) {
	case wifPayloadLen:
	case wifCompressedPayLen:
		if payload[wifPayloadLen] != wifCompressFlag {
			str := fmt.Sprintf("bad compression flag 0x%02x", payload[wifPayloadLen])
			return nil, false, false, ecerr.New(ecerr.ErrInvalidWIF, str)
		}
		compressed = true
	default:
		str := fmt.Sprintf("WIF payload is %d bytes", len(payload))
		return nil, false, false, ecerr.New(ecerr.ErrInvalidWIF, str)
	}

	switch payload[0] {
	case wifMainNetPrefix:
	case wifTestNetPrefix:
		testnet = true
	default:
		str := fmt.Sprintf("unknown WIF version byte 0x%02x", payload[0])
		return nil, false, false, ecerr.New(ecerr.ErrInvalidWIF, str)
	}

	key, err = PrivKeyFromBytes(payload[1:wifPayloadLen])
	if err != nil {
		return nil, false, false, err
	}
	return key, compressed, testnet, nil
}

// String never reveals the secret.
func (k *PrivateKey) String() string {
	return fmt.Sprintf("PrivateKey(%s)", k.point)
}

// GoString keeps the secret out of %#v output.
func (k *PrivateKey) GoString() string {
	return k.String()
}
