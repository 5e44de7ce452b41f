package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests. The version suffix leaves room for
// changing the encoding later without colliding with old digests.
const (
	DomainTrace   = "nvfuse/trace/v1"
	DomainFixture = "nvfuse/fixture/v1"
)

// Digest computes SHA256(domain + 0x00 + Marshal(v)) as lowercase hex.
// The null separator keeps domain and data unambiguous.
func Digest(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", domain, err)
	}
	return digestBytes(domain, data), nil
}

func digestBytes(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
