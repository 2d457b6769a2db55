package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows the record layout to change without colliding
// with ids computed under an older layout.
const (
	DomainResult = "unsei/result/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator keeps domain and data boundaries unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ResultID computes the content-addressed id of a fortune record.
// Two computations for the same birth date under the same engine produce
// the same id, which is what makes store writes idempotent.
func ResultID(rec Record) (string, error) {
	canonical, err := MarshalCanonical(rec.Object())
	if err != nil {
		return "", fmt.Errorf("ResultID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResult, canonical), nil
}
