// Package keys provides the public-key container used throughout the
// protocol stack: a DER-parsed key with a resolved algorithm type, plus the
// derived forms other layers need (PEM for synchronous verification
// backends, the SHA-256 publisher digest, and a CID for content-addressed
// key exchange).
package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"go.uber.org/multierr"
)

// Type is the resolved algorithm family of a parsed public key.
type Type int

const (
	TypeOther Type = iota
	TypeRSA
	TypeECDSA
)

func (t Type) String() string {
	switch t {
	case TypeRSA:
		return "RSA"
	case TypeECDSA:
		return "ECDSA"
	default:
		return "other"
	}
}

// PublicKey is an immutable parsed public key. Construct with ParseDER or
// FromStd.
type PublicKey struct {
	key   crypto.PublicKey
	der   []byte
	typ   Type
	pkcs1 bool
}

// ParseDER parses DER-encoded public key material. It accepts PKIX
// (SubjectPublicKeyInfo) encoding first and falls back to PKCS#1 RSA. Keys
// that parse but carry an algorithm this stack does not verify (Ed25519,
// DSA, ...) are returned with TypeOther; rejecting them is the verifier's
// decision, not the parser's.
func ParseDER(der []byte) (*PublicKey, error) {
	if pub, err := x509.ParsePKIXPublicKey(der); err == nil {
		return fromParsed(pub, der, false), nil
	} else if rsaPub, err1 := x509.ParsePKCS1PublicKey(der); err1 == nil {
		return fromParsed(rsaPub, der, true), nil
	} else {
		return nil, fmt.Errorf("keys: cannot decode public key material: %w", multierr.Append(err, err1))
	}
}

// FromStd wraps a runtime public key, marshaling it to PKIX DER.
func FromStd(pub crypto.PublicKey) (*PublicKey, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("keys: marshal public key: %w", err)
	}
	return fromParsed(pub, der, false), nil
}

func fromParsed(pub crypto.PublicKey, der []byte, pkcs1 bool) *PublicKey {
	k := &PublicKey{key: pub, der: append([]byte(nil), der...), pkcs1: pkcs1}
	switch pub.(type) {
	case *rsa.PublicKey:
		k.typ = TypeRSA
	case *ecdsa.PublicKey:
		k.typ = TypeECDSA
	default:
		k.typ = TypeOther
	}
	return k
}

// Type returns the resolved algorithm family.
func (k *PublicKey) Type() Type { return k.typ }

// Key returns the parsed runtime key.
func (k *PublicKey) Key() crypto.PublicKey { return k.key }

// DER returns the key material exactly as parsed.
func (k *PublicKey) DER() []byte { return append([]byte(nil), k.der...) }

// PEM re-encodes the DER bytes as a PEM block: base64 body wrapped at 64
// columns with the standard header/footer. PKCS#1-parsed input keeps its
// "RSA PUBLIC KEY" block type.
func (k *PublicKey) PEM() []byte {
	blockType := "PUBLIC KEY"
	if k.pkcs1 {
		blockType = "RSA PUBLIC KEY"
	}
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: k.der})
}

// Digest returns the 32-byte SHA-256 of the DER encoding. This is the
// publisher digest carried in identifier elements.
func (k *PublicKey) Digest() []byte {
	sum, err := multihash.Sum(k.der, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum with SHA2_256 and default length cannot fail
		// for non-nil input.
		return nil
	}
	dec, err := multihash.Decode(sum)
	if err != nil {
		return nil
	}
	return dec.Digest
}

// CID returns a CIDv1 (raw + sha2-256) of the DER encoding; keys are
// content-addressable protocol objects.
func (k *PublicKey) CID() (cid.Cid, error) {
	sum, err := multihash.Sum(k.der, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// String returns the CID string, or "" if the key is malformed.
func (k *PublicKey) String() string {
	id, err := k.CID()
	if err != nil {
		return ""
	}
	return id.String()
}
