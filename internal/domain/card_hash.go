package domain

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// CardHashLength is the length of a card hash in hex characters.
// Changing the hash function invalidates every stored card identity.
const CardHashLength = blake2b.Size256 * 2

// HashCard derives a card's identity from its raw segment text and line range.
// The range is mixed in as "<start>:<end>", so identical text at two positions
// never collapses into one card, and any edit to the text yields a new card.
func HashCard(content string, start, end int) string {
	// blake2b.New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	h.Write([]byte(content))
	h.Write([]byte(strconv.Itoa(start) + ":" + strconv.Itoa(end)))
	return hex.EncodeToString(h.Sum(nil))
}
