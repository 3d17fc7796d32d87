package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 32

// RandomTokenGenerator draws session tokens from crypto/rand: 32 random
// bytes, hex-encoded, so tokens carry 256 bits of entropy and cannot be
// enumerated.
type RandomTokenGenerator struct{}

func (RandomTokenGenerator) Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
