package batchverify

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mahdiidarabi/ecckit/pkg/s256"
)

// fixture is one signed message used to build test files.
type fixture struct {
	Message string
	Key     *s256.PrivateKey
	Sig     *s256.Signature
}

// newFixtures signs n messages with keys derived from small secrets.
func newFixtures(t *testing.T, n int) []fixture {
	t.Helper()
	out := make([]fixture, n)
	for i := range out {
		key, err := s256.NewPrivateKey(big.NewInt(int64(1000 + i)))
		if err != nil {
			t.Fatalf("Failed to create key %d: %v", i, err)
		}
		msg := fmt.Sprintf("batch message %d", i)
		sig, err := key.Sign([]byte(msg))
		if err != nil {
			t.Fatalf("Failed to sign message %d: %v", i, err)
		}
		out[i] = fixture{Message: msg, Key: key, Sig: sig}
	}
	return out
}

// writeJSONFixture writes fixtures in the mixed JSON layout: even entries use
// message/r/s with a compressed key, odd entries use z/der with an
// uncompressed key.
func writeJSONFixture(t *testing.T, fixtures []fixture) string {
	t.Helper()
	items := make([]map[string]interface{}, len(fixtures))
	for i, f := range fixtures {
		if i%2 == 0 {
			items[i] = map[string]interface{}{
				"message": f.Message,
				"r":       "0x" + f.Sig.R().Text(16),
				"s":       json.Number(f.Sig.S().Text(10)),
				"pubkey":  hex.EncodeToString(f.Key.PubKey().SEC(true)),
			}
			continue
		}
		items[i] = map[string]interface{}{
			"z":      "0x" + HashMessage([]byte(f.Message)).Text(16),
			"der":    hex.EncodeToString(f.Sig.DER()),
			"pubkey": "0x" + hex.EncodeToString(f.Key.PubKey().SEC(false)),
		}
	}

	data, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	return writeFile(t, "signatures.json", string(data))
}

func writeCSVFixture(t *testing.T, fixtures []fixture) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("message,r,s,pubkey\n")
	for _, f := range fixtures {
		fmt.Fprintf(&b, "%s,0x%x,0x%x,%x\n",
			f.Message, f.Sig.R(), f.Sig.S(), f.Key.PubKey().SEC(true))
	}
	return writeFile(t, "signatures.csv", b.String())
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func hexOf(b []byte) string {
	return hex.EncodeToString(b)
}
