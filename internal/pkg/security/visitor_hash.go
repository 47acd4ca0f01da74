package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// VisitorHash derives the opaque visitor identifier from a client
// address. The digest is what gets persisted; the raw address must be
// discarded by the caller right after hashing. Same address, same hash,
// which is what makes distinct-visitor counting work without keeping
// anything reversible.
func VisitorHash(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
