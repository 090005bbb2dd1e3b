package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateGameID returns a random 128-bit hex identifier for a game session.
func GenerateGameID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
