package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashVendorKey returns a filesystem-safe identifier for a vendor ID.
func HashVendorKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
