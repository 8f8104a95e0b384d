package s256

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/ecckit/pkg/base58"
	"github.com/mahdiidarabi/ecckit/pkg/ecerr"
	"github.com/mahdiidarabi/ecckit/pkg/hashing"
)

func mustKey(t *testing.T, secret *big.Int) *PrivateKey {
	t.Helper()
	key, err := NewPrivateKey(secret)
	require.NoError(t, err)
	return key
}

func TestNewPrivateKey(t *testing.T) {
	key := mustKey(t, big.NewInt(1))
	assert.True(t, key.PubKey().Equal(S256().G()))
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000001", key.Hex())

	for _, secret := range []*big.Int{big.NewInt(0), big.NewInt(-3), S256().N()} {
		_, err := NewPrivateKey(secret)
		assert.ErrorIs(t, err, ecerr.ErrInvalidSecret, "secret %v", secret)
	}

	_, err := PrivKeyFromBytes([]byte{0x01})
	assert.ErrorIs(t, err, ecerr.ErrInvalidSecret)
}

func TestSign_Vectors(t *testing.T) {
	tests := []struct {
		secret int64
		msg    string
		r, s   string
	}{
		{12345, "Programming Bitcoin!",
			"8eeacac05e4c29e793b5287ed044637132ce9ead7fded533e7441d87a8dc9c23",
			"36674f81f10c7fb347c1224bd546813ea24ada6f642c02f2248516e3aa8cb303"},
		{1, "hello",
			"dac18e64e55ca014e517d1633dc0db8776a3abc04f0498aa76fc3394f28e726b",
			"2e767d3c90f24355ba8949c722e562f15c5de251cff080e6448ec7180736bca5"},
		{0xdeadbeef, "",
			"645ac96ff97c492706f6a5cf667e9e8bae8e0d5c7c2bb81015dce301cef9e44a",
			"2b2391b02ca8052dfd589ddcd8d837b38904f0cf66c0a1228e4d5f07480ae129"},
	}

	for _, test := range tests {
		key := mustKey(t, big.NewInt(test.secret))
		sig, err := key.Sign([]byte(test.msg))
		require.NoError(t, err)
		assert.Equal(t, 0, sig.R().Cmp(hexInt(t, test.r)), "r for %q", test.msg)
		assert.Equal(t, 0, sig.S().Cmp(hexInt(t, test.s)), "s for %q", test.msg)

		z := new(big.Int).SetBytes(hashing.Hash256([]byte(test.msg)))
		assert.True(t, key.PubKey().Verify(z, sig))
	}
}

func TestSign_MatchesDecred(t *testing.T) {
	for i := 0; i < 8; i++ {
		key, err := GeneratePrivateKey(rand.Reader)
		require.NoError(t, err)

		msg := []byte(fmt.Sprintf("message %d", i))
		sig, err := key.Sign(msg)
		require.NoError(t, err)

		oracle := ecdsa.Sign(key.ToDecred(), hashing.Hash256(msg))
		assert.Equal(t, oracle.Serialize(), sig.DER(), "message %d", i)
	}
}

func TestSign_Deterministic(t *testing.T) {
	key := mustKey(t, big.NewInt(0xc0ffee))
	a, err := key.Sign([]byte("same message"))
	require.NoError(t, err)
	b, err := key.Sign([]byte("same message"))
	require.NoError(t, err)
	c, err := key.Sign([]byte("other message"))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestSign_LowS(t *testing.T) {
	key, err := GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		sig, err := key.Sign([]byte{byte(i)})
		require.NoError(t, err)
		assert.True(t, sig.S().Cmp(S256().HalfN()) <= 0)
	}
}

func TestVerify_BitFlips(t *testing.T) {
	key, err := GeneratePrivateKey(rand.Reader)
	require.NoError(t, err)
	msg := []byte("flip me")
	z := new(big.Int).SetBytes(hashing.Hash256(msg))
	sig, err := key.Sign(msg)
	require.NoError(t, err)
	require.True(t, key.PubKey().Verify(z, sig))

	for _, bit := range []int{0, 1, 17, 100, 200, 254} {
		r := sig.R()
		r.SetBit(r, bit, r.Bit(bit)^1)
		assert.False(t, key.PubKey().Verify(z, NewSignature(r, sig.S())), "r bit %d", bit)

		s := sig.S()
		s.SetBit(s, bit, s.Bit(bit)^1)
		assert.False(t, key.PubKey().Verify(z, NewSignature(sig.R(), s)), "s bit %d", bit)
	}
}

func TestSignHash_LargeDigest(t *testing.T) {
	key := mustKey(t, big.NewInt(777))
	n := S256().N()

	// Digests above N sign and verify like their reduced value.
	z := new(big.Int).Add(n, big.NewInt(1000))
	sig, err := key.SignHash(z)
	require.NoError(t, err)
	assert.True(t, key.PubKey().Verify(z, sig))
	assert.True(t, key.PubKey().Verify(big.NewInt(1000), sig))

	reduced, err := key.SignHash(big.NewInt(1000))
	require.NoError(t, err)
	assert.True(t, reduced.Equal(sig))

	_, err = key.SignHash(new(big.Int).Lsh(big.NewInt(1), 256))
	assert.ErrorIs(t, err, ecerr.ErrInvalidDigest)
	_, err = key.SignHash(big.NewInt(-1))
	assert.ErrorIs(t, err, ecerr.ErrInvalidDigest)
}

func TestGeneratePrivateKey(t *testing.T) {
	var stream []byte
	stream = append(stream, bytes.Repeat([]byte{0xff}, 32)...) // >= N, rejected
	stream = append(stream, make([]byte, 32)...)              // zero, rejected
	one := make([]byte, 32)
	one[31] = 0x01
	stream = append(stream, one...)

	key, err := GeneratePrivateKey(bytes.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, int64(1), key.Secret().Int64())

	_, err = GeneratePrivateKey(bytes.NewReader([]byte{0x01, 0x02}))
	assert.Error(t, err)
}

func TestWIF(t *testing.T) {
	tests := []struct {
		secret     int64
		compressed bool
		testnet    bool
		want       string
	}{
		{1, true, false, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"},
		{1, false, false, "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf"},
		{1, false, true, "91avARGdfge8E4tZfYLoxeJ5sGBdNJQH4kvjJoQFacbgwmaKkrx"},
		{12345, true, false, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFVw2pgpVHKU"},
		{12345, false, true, "91avARGdfge8E4tZfYLoxeJ5sGBdNJQH4kvjJoQFacc6xVKZXV1"},
		{0xdeadbeef, true, false, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9MAgeRFL4W8aAXW"},
	}

	for _, test := range tests {
		key := mustKey(t, big.NewInt(test.secret))
		got := key.WIF(test.compressed, test.testnet)
		assert.Equal(t, test.want, got)

		parsed, compressed, testnet, err := ParseWIF(got)
		require.NoError(t, err)
		assert.Equal(t, 0, parsed.Secret().Cmp(key.Secret()))
		assert.Equal(t, test.compressed, compressed)
		assert.Equal(t, test.testnet, testnet)
	}
}

func TestWIF_MatchesBtcutil(t *testing.T) {
	nets := []*chaincfg.Params{&chaincfg.MainNetParams, &chaincfg.TestNet3Params}
	for i := 0; i < 4; i++ {
		key, err := GeneratePrivateKey(rand.Reader)
		require.NoError(t, err)
		btcKey, _ := btcec.PrivKeyFromBytes(key.secretBytes())

		for _, net := range nets {
			for _, compressed := range []bool{true, false} {
				oracle, err := btcutil.NewWIF(btcKey, net, compressed)
				require.NoError(t, err)
				testnet := net.Name != chaincfg.MainNetParams.Name
				assert.Equal(t, oracle.String(), key.WIF(compressed, testnet))

				decoded, err := btcutil.DecodeWIF(key.WIF(compressed, testnet))
				require.NoError(t, err)
				assert.Equal(t, compressed, decoded.CompressPubKey)
				assert.True(t, decoded.IsForNet(net))
				assert.Equal(t, key.secretBytes(), decoded.PrivKey.Serialize())
			}
		}
	}
}

func TestParseWIF_Errors(t *testing.T) {
	_, _, _, err := ParseWIF("KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWo")
	assert.ErrorIs(t, err, ecerr.ErrBadChecksum)

	_, _, _, err = ParseWIF("0OIl")
	assert.ErrorIs(t, err, ecerr.ErrInvalidBase58)

	secret := make([]byte, 32)
	secret[31] = 0x01

	tests := []struct {
		name    string
		payload []byte
		kind    ecerr.ErrorKind
	}{
		{"unknown version", append([]byte{0x42}, secret...), ecerr.ErrInvalidWIF},
		{"short payload", append([]byte{0x80}, secret[:31]...), ecerr.ErrInvalidWIF},
		{"bad compression flag", append(append([]byte{0x80}, secret...), 0x02), ecerr.ErrInvalidWIF},
		{"zero secret", append([]byte{0x80}, make([]byte, 32)...), ecerr.ErrInvalidSecret},
	}

	for _, test := range tests {
		_, _, _, err := ParseWIF(base58.EncodeCheck(test.payload))
		assert.ErrorIs(t, err, test.kind, test.name)
	}
}

func TestPrivateKey_StringRedacted(t *testing.T) {
	key := mustKey(t, big.NewInt(0xabcdef))
	for _, s := range []string{key.String(), fmt.Sprintf("%v", key), fmt.Sprintf("%#v", key)} {
		assert.NotContains(t, s, "abcdef")
		assert.Contains(t, s, "PrivateKey(")
	}
}
