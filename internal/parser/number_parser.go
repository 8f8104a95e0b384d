// Package parser holds the literal parsing shared by the batch verifier and
// the command line tool: big integers written in hex or decimal, and hex byte
// strings with an optional 0x prefix.
package parser

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// hexHeuristicLen is the length above which an unprefixed digit string is
// read as hex.  Decimal values that long only show up as JSON numbers.
const hexHeuristicLen = 20

func trimHexPrefix(s string) (string, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:], true
	}
	return s, false
}

// ParseBigInt parses a big integer from the forms found in signature files.
//
// Strings with a 0x prefix are hex.  Unprefixed strings are hex when they
// contain a hex letter or are longer than 20 characters, decimal otherwise.
// JSON numbers and Go integers are taken as is.
func ParseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s, prefixed := trimHexPrefix(strings.TrimSpace(v))
		if s == "" {
			return nil, fmt.Errorf("empty number")
		}

		base := 10
		if prefixed || strings.ContainsAny(s, "abcdefABCDEF") || len(s) > hexHeuristicLen {
			base = 16
		}
		z, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case json.Number:
		// json.Number preserves precision for large integers
		z, ok := new(big.Int).SetString(string(v), 10)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		// Loses precision above 2^53; decoders should use UseNumber.
		z, ok := new(big.Int).SetString(fmt.Sprintf("%.0f", v), 10)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %v", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	case *big.Int:
		return new(big.Int).Set(v), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}

// DecodeHex decodes a hex string, handling an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s, _ = trimHexPrefix(strings.TrimSpace(s))
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}
