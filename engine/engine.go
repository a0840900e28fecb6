// Package engine provides the host's asynchronous cryptographic engine: a
// submit/complete surface over a named-scheme registry. Callers hand in one
// verification operation and a completion callback; the callback runs
// exactly once on the engine's completion goroutine.
//
// The engine is a host capability and intentionally carries more schemes
// than any single consumer uses.
package engine

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"

	circled "github.com/cloudflare/circl/sign/ed25519"
)

// Scheme names an algorithm/hash pair the engine can verify under.
type Scheme string

const (
	SchemeRSAPKCS1SHA256 Scheme = "rsassa-pkcs1-v1_5-sha256"
	SchemeEd25519        Scheme = "ed25519"
)

// Op is one verification operation: import the key material under the
// scheme, then verify Sig over Content.
type Op struct {
	Scheme  Scheme
	KeyDER  []byte
	Content []byte
	Sig     []byte
}

// Outcome is the result of one Op. A wrong signature is OK=false with a nil
// Err; Err is reserved for import failures and unknown schemes.
type Outcome struct {
	OK  bool
	Err error
}

// Engine accepts operations and completes them later. Submit returns
// immediately; done runs exactly once on the engine's completion goroutine.
type Engine interface {
	Submit(op Op, done func(Outcome)) error
}

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("engine: closed")

// run executes one operation synchronously. Workers call it; it has no
// shared state.
func run(op Op) Outcome {
	switch op.Scheme {
	case SchemeRSAPKCS1SHA256:
		return runRSAPKCS1SHA256(op)
	case SchemeEd25519:
		return runEd25519(op)
	default:
		return Outcome{Err: fmt.Errorf("engine: unknown scheme %q", op.Scheme)}
	}
}

func runRSAPKCS1SHA256(op Op) Outcome {
	pub, err := x509.ParsePKIXPublicKey(op.KeyDER)
	if err != nil {
		// PKCS#1 is the legacy fallback import, as in the key container.
		rsaPub, err1 := x509.ParsePKCS1PublicKey(op.KeyDER)
		if err1 != nil {
			return Outcome{Err: fmt.Errorf("engine: import RSA key: %w", err)}
		}
		pub = rsaPub
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return Outcome{Err: fmt.Errorf("engine: key is %T, not RSA", pub)}
	}
	digest := sha256.Sum256(op.Content)
	if err := rsa.VerifyPKCS1v15(rsaPub, crypto.SHA256, digest[:], op.Sig); err != nil {
		return Outcome{OK: false}
	}
	return Outcome{OK: true}
}

func runEd25519(op Op) Outcome {
	if len(op.KeyDER) != circled.PublicKeySize {
		return Outcome{Err: fmt.Errorf("engine: ed25519 key must be %d raw bytes, got %d", circled.PublicKeySize, len(op.KeyDER))}
	}
	return Outcome{OK: circled.Verify(circled.PublicKey(op.KeyDER), op.Content, op.Sig)}
}
