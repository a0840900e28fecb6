package sigverify

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"

	"ccnkit.dev/go/keys"
)

// probe discovers, once per Verifier, whether the synchronous backend
// expects the signature argument as raw bytes or as base64 text. The answer
// is a property of the backend, not of any particular call, so it is cached
// for the Verifier's lifetime. Racing first callers is harmless: sync.Once
// runs the probe once and every caller observes the same outcome.
type probe struct {
	once   sync.Once
	asText bool
	err    error
}

func (p *probe) sigAsText(b Backend) (bool, error) {
	p.once.Do(func() { p.asText, p.err = runProbe(b) })
	return p.asText, p.err
}

// runProbe signs a fixed message with an ephemeral P-256 key and asks the
// backend to verify it first with raw signature bytes, then with base64
// text. Whichever encoding verifies is the backend's convention.
func runProbe(b Backend) (asText bool, err error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return false, err
	}
	key, err := keys.FromStd(&priv.PublicKey)
	if err != nil {
		return false, err
	}

	msg := []byte("sigverify encoding probe")
	digest := sha256.Sum256(msg)
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		return false, err
	}

	if ok, err := b.Verify(key.PEM(), msg, sig); err == nil && ok {
		return false, nil
	}
	text := []byte(base64.StdEncoding.EncodeToString(sig))
	if ok, err := b.Verify(key.PEM(), msg, text); err == nil && ok {
		return true, nil
	}
	return false, errors.New("sigverify: backend verified neither raw nor base64 signature encoding")
}
