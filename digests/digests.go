// Package digests is the digest-algorithm registry: names, wire OIDs, and
// sum functions for the hash algorithms the protocol speaks. Signature
// verification accepts only SHA-256; the other algorithms exist for wire
// interop and content digests.
package digests

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/sha3"
)

// Alg names a digest algorithm.
type Alg string

const (
	SHA256  Alg = "sha256"
	SHA512  Alg = "sha512"
	SHA3256 Alg = "sha3-256"
)

// Digest algorithm identifiers on the wire are dotted-decimal OIDs.
var oids = map[Alg]string{
	SHA256:  "2.16.840.1.101.3.4.2.1",
	SHA512:  "2.16.840.1.101.3.4.2.3",
	SHA3256: "2.16.840.1.101.3.4.2.8",
}

// OID returns the wire OID for a, or "" if a is not in the registry.
func (a Alg) OID() string { return oids[a] }

// Known reports whether a is in the registry.
func (a Alg) Known() bool {
	_, ok := oids[a]
	return ok
}

// FromOID resolves a wire OID back to its algorithm name.
func FromOID(oid string) (Alg, bool) {
	for a, o := range oids {
		if o == oid {
			return a, true
		}
	}
	return "", false
}

// Sum computes the digest of data under a.
func Sum(a Alg, data []byte) ([]byte, error) {
	switch a {
	case SHA256:
		s := sha256.Sum256(data)
		return s[:], nil
	case SHA512:
		s := sha512.Sum512(data)
		return s[:], nil
	case SHA3256:
		s := sha3.Sum256(data)
		return s[:], nil
	default:
		return nil, fmt.Errorf("digests: unknown algorithm %q", a)
	}
}

// MultihashCode returns the multihash code for a, for callers addressing
// digests as multiformat values.
func MultihashCode(a Alg) (uint64, bool) {
	switch a {
	case SHA256:
		return multihash.SHA2_256, true
	case SHA512:
		return multihash.SHA2_512, true
	case SHA3256:
		return multihash.SHA3_256, true
	default:
		return 0, false
	}
}
