package pubid

import (
	"ccnkit.dev/go/keys"
	"ccnkit.dev/go/wire"
)

// Variant distinguishes the four publisher identity kinds. The zero value
// is VariantNone, which no valid identifier carries.
type Variant int

const (
	VariantNone Variant = iota
	VariantKey
	VariantCertificate
	VariantIssuerKey
	VariantIssuerCertificate
)

// probeOrder is the fixed trial-tag order. Changing it changes which
// element a multi-candidate decoder would match; it is part of the wire
// contract.
var probeOrder = [...]Variant{
	VariantKey,
	VariantCertificate,
	VariantIssuerKey,
	VariantIssuerCertificate,
}

// DTag returns the dictionary tag for v, or 0 for VariantNone.
func (v Variant) DTag() wire.DTag {
	switch v {
	case VariantKey:
		return wire.DTagPublisherPublicKeyDigest
	case VariantCertificate:
		return wire.DTagPublisherCertificateDigest
	case VariantIssuerKey:
		return wire.DTagPublisherIssuerKeyDigest
	case VariantIssuerCertificate:
		return wire.DTagPublisherIssuerCertificateDigest
	default:
		return 0
	}
}

func (v Variant) String() string {
	switch v {
	case VariantKey:
		return "Key"
	case VariantCertificate:
		return "Certificate"
	case VariantIssuerKey:
		return "IssuerKey"
	case VariantIssuerCertificate:
		return "IssuerCertificate"
	default:
		return "None"
	}
}

// PublisherID is one decoded or constructed publisher identity: a digest
// (conventionally the 32-byte SHA-256 of the DER-encoded key) paired with
// its variant. It is immutable once decoded.
type PublisherID struct {
	Variant Variant
	Digest  []byte
}

// Valid reports whether id carries both a variant and digest bytes.
func (id PublisherID) Valid() bool {
	return id.Variant.DTag() != 0 && len(id.Digest) > 0
}

// FromKey returns a fresh Key-variant identifier whose digest is computed
// from the key.
func FromKey(k *keys.PublicKey) PublisherID {
	return PublisherID{Variant: VariantKey, Digest: k.Digest()}
}

// Peeker is the non-consuming lookahead this codec needs from a decoder.
// *wire.Decoder satisfies it.
type Peeker interface {
	PeekDTag(wire.DTag) bool
}

// Decoder adds the consuming read for one tagged binary element.
// *wire.Decoder satisfies it.
type Decoder interface {
	Peeker
	ReadDTagBinary(wire.DTag) ([]byte, error)
}

// Encoder is the write capability this codec needs. *wire.Encoder
// satisfies it.
type Encoder interface {
	WriteDTagBinary(wire.DTag, []byte) error
}

// PeekVariant probes, in the fixed order, whether the next element matches
// one of the four identifier tags. It never consumes input. The second
// return is false when none match.
func PeekVariant(d Peeker) (Variant, bool) {
	for _, v := range probeOrder {
		if d.PeekDTag(v.DTag()) {
			return v, true
		}
	}
	return VariantNone, false
}

// CanDecode reports whether a publisher identity element is next. Callers
// composing larger grammars use it to decide whether this optional field is
// present before committing to Decode.
func CanDecode(d Peeker) bool {
	_, ok := PeekVariant(d)
	return ok
}

// Decode reads one publisher identity element. The element's tag selects
// the variant; the payload is taken as-is with no length or content
// validation beyond what the decoder guarantees.
func Decode(d Decoder) (PublisherID, error) {
	v, ok := PeekVariant(d)
	if !ok {
		return PublisherID{}, newError(KindMalformedElement, "pubid: unexpected element type at this position")
	}
	digest, err := d.ReadDTagBinary(v.DTag())
	if err != nil {
		return PublisherID{}, wrapError(KindDecodeError, "pubid: cannot parse "+v.String()+" identifier", err)
	}
	if len(digest) == 0 {
		return PublisherID{}, newError(KindDecodeError, "pubid: empty "+v.String()+" identifier payload")
	}
	return PublisherID{Variant: v, Digest: digest}, nil
}

// Encode writes id as one tagged binary element. An invalid id is a
// programming error and fails loudly before anything is written.
func (id PublisherID) Encode(e Encoder) error {
	if !id.Valid() {
		return newError(KindInvalidState, "pubid: missing variant or digest bytes")
	}
	return e.WriteDTagBinary(id.Variant.DTag(), id.Digest)
}
