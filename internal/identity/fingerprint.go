package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// DeviceFingerprint hashes the user agent and accept-language pair into a
// stable 64 character hex string.
func DeviceFingerprint(userAgent, acceptLanguage string) string {
	sum := sha256.Sum256([]byte(userAgent + acceptLanguage))
	return hex.EncodeToString(sum[:])
}
