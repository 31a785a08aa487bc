package leaderboard

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIdentity derives the one-way identity hash stored alongside scores.
// The raw identity (typically the client IP) is never persisted; the hash
// only correlates submissions from the same origin.
func HashIdentity(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:])
}
