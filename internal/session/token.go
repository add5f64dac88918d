package session

import (
	"crypto/rand"
	"encoding/base64"
)

// NewToken generates an opaque session token
func NewToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
