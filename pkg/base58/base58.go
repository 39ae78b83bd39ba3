// Package base58 wraps mr-tron/base58 for fixed-size 32-byte identities.
package base58

import (
	"fmt"

	"github.com/mr-tron/base58"
)

func Encode(b []byte) string {
	return base58.Encode(b)
}

// DecodeFromString decodes a base58 string that must represent exactly 32 bytes.
func DecodeFromString(s string) ([32]byte, error) {
	var out [32]byte
	decoded, err := base58.Decode(s)
	if err != nil {
		return out, err
	}
	if len(decoded) != len(out) {
		return out, fmt.Errorf("invalid length %d for 32-byte address %q", len(decoded), s)
	}
	copy(out[:], decoded)
	return out, nil
}

func MustDecodeFromString(s string) [32]byte {
	out, err := DecodeFromString(s)
	if err != nil {
		panic(err)
	}
	return out
}
