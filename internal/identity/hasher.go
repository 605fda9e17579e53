package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Length is the number of hex characters kept from the digest (40 bits).
// Collisions are possible in principle; at the scale of one charity event the
// probability is negligible and accepted.
const Length = 10

// Hasher derives stable public identifiers from secrets such as emails and
// processor transaction ids. The raw secret is never recoverable from the id.
type Hasher struct {
	salt []byte
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: []byte(salt)}
}

// Hash returns the first Length hex characters of sha256(secret || salt).
func (h *Hasher) Hash(secret []byte) string {
	sum := sha256.New()
	sum.Write(secret)
	sum.Write(h.salt)
	return hex.EncodeToString(sum.Sum(nil))[:Length]
}

func (h *Hasher) HashString(secret string) string {
	return h.Hash([]byte(secret))
}
