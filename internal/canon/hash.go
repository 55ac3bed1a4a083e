package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/bits/internal/packet"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm change.
const (
	DomainPacket = "bits/packet/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the content-addressed identity of a packet tree.
//
// Operator framing (bit length vs count) is not part of the identity: two
// transmissions that decode to the same versions, operators and values share
// a digest.
func Digest(p *packet.Packet) (string, error) {
	data, err := MarshalPacket(p)
	if err != nil {
		return "", fmt.Errorf("Digest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPacket, data), nil
}

// MustDigest is like Digest but panics on error.
// Use only in tests or when the tree is known to be valid.
func MustDigest(p *packet.Packet) string {
	d, err := Digest(p)
	if err != nil {
		panic(err)
	}
	return d
}
