// Package cache provides the in-memory document cache used by the
// fetch stage. A screening often re-queries the same URLs across
// overlapping queries, so extracted documents are cached by URL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"negscreen/internal/model"
)

// DocumentCache stores extracted documents keyed by source URL.
type DocumentCache interface {
	Get(url string) (*model.FetchedDocument, bool)
	Set(url string, doc *model.FetchedDocument, ttl time.Duration)
	Clear()
}

// Key hashes a URL into a stable cache key. URLs can carry long query
// strings and unfriendly characters, so the key is a digest.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "negscreen:v1:" + hex.EncodeToString(sum[:])
}
