package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// KeyVersion is mixed into every key. Bump it when the exported bytes change
// for the same input so that old artifacts stop matching.
const KeyVersion = "drawio/v1"

// hashKey returns kind:sha256(version, parts...). Each part is JSON encoded
// on its own line so adjacent parts cannot run together.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(KeyVersion)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
