package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateID mints the random identifiers the gateway hands out: session
// ids, and the opaque bearer tokens issued to password accounts. 32 bytes
// of system entropy, URL-safe base64, no padding.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
