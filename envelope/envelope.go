// Package envelope carries a detached signature as a canonical ccnb
// sequence: a Signature element (digest algorithm OID and signature bits),
// an optional publisher identity, the signer's DER key, and the signed
// content. Order and structure are fixed; Parse is strict.
package envelope

import (
	"bytes"
	"fmt"

	"ccnkit.dev/go/digests"
	"ccnkit.dev/go/keys"
	"ccnkit.dev/go/pubid"
	"ccnkit.dev/go/sigverify"
	"ccnkit.dev/go/wire"
)

// Envelope is one detached-signature message.
type Envelope struct {
	// DigestAlg is the digest algorithm; empty means digests.SHA256.
	DigestAlg digests.Alg

	// Sig is the raw signature bits.
	Sig []byte

	// Publisher optionally identifies the signer. When present with the
	// Key variant, Verify checks it against the key's digest.
	Publisher *pubid.PublisherID

	// KeyDER is the signer's public key in DER encoding.
	KeyDER []byte

	// Content is the signed payload.
	Content []byte
}

// Marshal encodes env in the canonical sequence. The DigestAlgorithm
// element is omitted for the SHA-256 default, matching what conforming
// writers emit.
func (env *Envelope) Marshal() ([]byte, error) {
	if len(env.Sig) == 0 {
		return nil, fmt.Errorf("envelope: missing signature bits")
	}
	if len(env.KeyDER) == 0 {
		return nil, fmt.Errorf("envelope: missing key")
	}
	if env.DigestAlg != "" && !env.DigestAlg.Known() {
		return nil, fmt.Errorf("envelope: unknown digest algorithm %q", env.DigestAlg)
	}

	var e wire.Encoder
	if err := e.BeginDTag(wire.DTagSignature); err != nil {
		return nil, err
	}
	if env.DigestAlg != "" && env.DigestAlg != digests.SHA256 {
		if err := e.WriteDTagString(wire.DTagDigestAlgorithm, env.DigestAlg.OID()); err != nil {
			return nil, err
		}
	}
	if err := e.WriteDTagBinary(wire.DTagSignatureBits, env.Sig); err != nil {
		return nil, err
	}
	if err := e.End(); err != nil {
		return nil, err
	}

	if env.Publisher != nil {
		if err := env.Publisher.Encode(&e); err != nil {
			return nil, fmt.Errorf("envelope: publisher identity: %w", err)
		}
	}
	if err := e.WriteDTagBinary(wire.DTagKey, env.KeyDER); err != nil {
		return nil, err
	}
	if err := e.WriteDTagBinary(wire.DTagContent, env.Content); err != nil {
		return nil, err
	}
	return e.Bytes()
}

// Parse decodes one envelope. It enforces the canonical order and rejects
// trailing data.
func Parse(data []byte) (*Envelope, error) {
	d := wire.NewDecoder(data)
	env := &Envelope{}

	if err := d.BeginDTag(wire.DTagSignature); err != nil {
		return nil, fmt.Errorf("envelope: Signature element: %w", err)
	}
	if d.PeekDTag(wire.DTagDigestAlgorithm) {
		oid, err := d.ReadDTagString(wire.DTagDigestAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("envelope: DigestAlgorithm: %w", err)
		}
		alg, ok := digests.FromOID(oid)
		if !ok {
			return nil, fmt.Errorf("envelope: unknown digest algorithm OID %q", oid)
		}
		env.DigestAlg = alg
	} else {
		env.DigestAlg = digests.SHA256
	}
	sig, err := d.ReadDTagBinary(wire.DTagSignatureBits)
	if err != nil {
		return nil, fmt.Errorf("envelope: SignatureBits: %w", err)
	}
	env.Sig = sig
	if err := d.End(); err != nil {
		return nil, fmt.Errorf("envelope: Signature element: %w", err)
	}

	if pubid.CanDecode(d) {
		id, err := pubid.Decode(d)
		if err != nil {
			return nil, fmt.Errorf("envelope: publisher identity: %w", err)
		}
		env.Publisher = &id
	}

	keyDER, err := d.ReadDTagBinary(wire.DTagKey)
	if err != nil {
		return nil, fmt.Errorf("envelope: Key element: %w", err)
	}
	env.KeyDER = keyDER

	content, err := d.ReadDTagBinary(wire.DTagContent)
	if err != nil {
		return nil, fmt.Errorf("envelope: Content element: %w", err)
	}
	env.Content = content

	if !d.EOF() {
		return nil, fmt.Errorf("envelope: %d byte(s) of trailing data", len(d.Rest()))
	}
	return env, nil
}

// Verify checks the envelope's signature with v. When a Key-variant
// publisher identity is present, a digest mismatch against the carried key
// resolves false: an untrusted signer is a verification outcome, not a
// structural error. Other variants are carried but not checkable here.
// The envelope's digest algorithm overrides any opts.Digest.
func (env *Envelope) Verify(v *sigverify.Verifier, opts sigverify.Options) *sigverify.Result {
	opts.Digest = env.DigestAlg

	if env.Publisher != nil && env.Publisher.Variant == pubid.VariantKey {
		key, err := keys.ParseDER(env.KeyDER)
		if err != nil {
			// Let the verifier report the InvalidKey failure uniformly.
			return v.VerifyDER(env.Content, env.Sig, env.KeyDER, opts)
		}
		if !bytes.Equal(env.Publisher.Digest, key.Digest()) {
			return sigverify.Resolved(false, nil)
		}
	}
	return v.VerifyDER(env.Content, env.Sig, env.KeyDER, opts)
}
