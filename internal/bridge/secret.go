package bridge

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// DeviceSecretHeader carries the secret a shell received in DEVICE_SECRET when it reconnects.
const DeviceSecretHeader = "X-Device-Secret"

const (
	deviceSecretBytes  = 32
	minDeviceSecretLen = 16
)

func newDeviceSecret() (string, error) {
	buf := make([]byte, deviceSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate device secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// hashDeviceSecret is what gets stored next to the session; the secret itself never leaves the device again.
func hashDeviceSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// secretMatches reports whether a connection holding proven may see data bound to stored.
// An empty hash on either side never matches.
func secretMatches(stored, proven string) bool {
	if stored == "" || proven == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(proven)) == 1
}
