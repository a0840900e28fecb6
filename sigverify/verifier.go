package sigverify

import (
	"encoding/base64"

	"ccnkit.dev/go/digests"
	"ccnkit.dev/go/engine"
	"ccnkit.dev/go/keys"
)

// Options selects the digest algorithm and execution mode for one
// verification. The zero value means SHA-256, asynchronous when available.
type Options struct {
	// Digest is the digest algorithm; empty means digests.SHA256, the only
	// supported value.
	Digest digests.Alg

	// Synchronous forces the synchronous path even when an asynchronous
	// engine is available.
	Synchronous bool
}

// Verifier verifies signatures over byte buffers. The zero value verifies
// synchronously with StdBackend; setting Engine enables the asynchronous
// path for RSA keys. Verifiers are safe for concurrent use.
type Verifier struct {
	// Engine, when non-nil, runs RSA verifications asynchronously unless
	// the caller requests synchronous execution. ECDSA has no asynchronous
	// path in this design.
	Engine engine.Engine

	// Backend is the synchronous primitive; nil means StdBackend.
	Backend Backend

	probe probe
}

func (v *Verifier) backend() Backend {
	if v.Backend != nil {
		return v.Backend
	}
	return StdBackend{}
}

// Verify checks sig over content under key. The outcome always travels
// through the returned Result: a wrong signature resolves false with a nil
// error, and structural or environmental problems fail the Result. Verify
// never fails synchronously.
func (v *Verifier) Verify(content, sig []byte, key *keys.PublicKey, opts Options) *Result {
	if key == nil {
		return resolvedErr(newError(KindInvalidKey, "sigverify: nil public key"))
	}
	alg := opts.Digest
	if alg == "" {
		alg = digests.SHA256
	}
	if alg != digests.SHA256 {
		return resolvedErr(newError(KindUnsupportedAlgorithm, "sigverify: digest algorithm "+string(alg)+" not supported, want sha256"))
	}

	switch key.Type() {
	case keys.TypeRSA:
		if v.Engine != nil && !opts.Synchronous {
			return v.verifyAsync(content, sig, key)
		}
		return v.verifySync(content, sig, key)
	case keys.TypeECDSA:
		return v.verifySync(content, sig, key)
	default:
		return resolvedErr(newError(KindUnsupportedKeyType, "sigverify: key type "+key.Type().String()+" not supported"))
	}
}

// VerifyDER is Verify for raw DER key material. Parse failure fails the
// Result with InvalidKey; it is not a synchronous error.
func (v *Verifier) VerifyDER(content, sig, keyDER []byte, opts Options) *Result {
	key, err := keys.ParseDER(keyDER)
	if err != nil {
		return resolvedErr(wrapError(KindInvalidKey, "sigverify: cannot decode public key material", err))
	}
	return v.Verify(content, sig, key, opts)
}

// verifyAsync submits an RSASSA-PKCS1-v1_5/SHA-256 operation to the engine.
// The Result resolves on the engine's completion goroutine.
func (v *Verifier) verifyAsync(content, sig []byte, key *keys.PublicKey) *Result {
	r := newResult()
	op := engine.Op{
		Scheme:  engine.SchemeRSAPKCS1SHA256,
		KeyDER:  key.DER(),
		Content: content,
		Sig:     sig,
	}
	err := v.Engine.Submit(op, func(out engine.Outcome) {
		if out.Err != nil {
			r.resolve(false, wrapError(KindEngineError, "sigverify: engine verification failed", out.Err))
			return
		}
		r.resolve(out.OK, nil)
	})
	if err != nil {
		return resolvedErr(wrapError(KindEngineError, "sigverify: engine rejected the operation", err))
	}
	return r
}

// verifySync reformats the key as PEM and runs the synchronous backend,
// encoding the signature the way the one-time probe determined the backend
// expects it.
func (v *Verifier) verifySync(content, sig []byte, key *keys.PublicKey) *Result {
	sigAsText, err := v.probe.sigAsText(v.backend())
	if err != nil {
		return resolvedErr(wrapError(KindEngineError, "sigverify: signature encoding probe failed", err))
	}
	if sigAsText {
		sig = []byte(base64.StdEncoding.EncodeToString(sig))
	}
	ok, err := v.backend().Verify(key.PEM(), content, sig)
	if err != nil {
		return resolvedErr(wrapError(KindEngineError, "sigverify: backend verification failed", err))
	}
	return Resolved(ok, nil)
}
