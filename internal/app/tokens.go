package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenPrefix = "em-"

// NewToken mints an opaque bearer credential. 32 bytes of entropy; the
// prefix makes leaked tokens easy to attribute in logs.
func NewToken() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return tokenPrefix + hex.EncodeToString(randomBytes), nil
}
