package sigverify

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// Backend is the synchronous verification primitive. It receives the key as
// a PEM block, hashes content with SHA-256 itself, and reports whether sig
// verifies. How the backend expects the signature encoded (raw bytes or
// base64 text) is backend-specific; the Verifier discovers it with a
// one-time probe.
type Backend interface {
	Verify(keyPEM, content, sig []byte) (bool, error)
}

// StdBackend verifies with the process crypto library. It takes raw
// signature bytes.
type StdBackend struct{}

func (StdBackend) Verify(keyPEM, content, sig []byte) (bool, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return false, errors.New("sigverify: backend: no PEM block in key")
	}
	var pub any
	var err error
	switch block.Type {
	case "RSA PUBLIC KEY":
		pub, err = x509.ParsePKCS1PublicKey(block.Bytes)
	default:
		pub, err = x509.ParsePKIXPublicKey(block.Bytes)
	}
	if err != nil {
		return false, fmt.Errorf("sigverify: backend: parse key: %w", err)
	}

	digest := sha256.Sum256(content)
	switch k := pub.(type) {
	case *rsa.PublicKey:
		err := rsa.VerifyPKCS1v15(k, crypto.SHA256, digest[:], sig)
		if errors.Is(err, rsa.ErrVerification) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	case *ecdsa.PublicKey:
		// VerifyASN1 infers the curve from the key itself.
		return ecdsa.VerifyASN1(k, digest[:], sig), nil
	default:
		return false, fmt.Errorf("sigverify: backend: unsupported key type %T", pub)
	}
}
