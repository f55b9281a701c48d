package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Hasher derives storable PIN digests keyed by a server-side secret.
//
// The digest is a deterministic HMAC-SHA256 over the raw PIN, hex encoded.
// There is no per-user salt: two users sharing a PIN under the same secret
// share a digest. That property is inherited from the stored record format
// and is documented in DESIGN.md rather than changed here.
type Hasher struct {
	secret []byte
}

// NewHasher builds a Hasher keyed with the given secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Hash returns the hex digest of the PIN under the configured secret.
func (h *Hasher) Hash(pin string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(pin))
	return hex.EncodeToString(mac.Sum(nil))
}

// Compare reports whether the PIN matches a stored digest. The comparison
// is constant-time.
func (h *Hasher) Compare(pin, digest string) bool {
	return hmac.Equal([]byte(h.Hash(pin)), []byte(digest))
}
