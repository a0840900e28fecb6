// Package wiretest is a conformance suite for ccnb decoder implementations.
// Alternative decoders (streaming, zero-copy, remote) run the same suite the
// in-memory reference decoder does, so behavioral drift shows up as a test
// failure rather than a wire incompatibility.
package wiretest

import (
	"bytes"
	"testing"

	"ccnkit.dev/go/wire"
)

// Decoder is the surface the suite exercises. *wire.Decoder satisfies it.
type Decoder interface {
	PeekDTag(wire.DTag) bool
	ReadDTagBinary(wire.DTag) ([]byte, error)
	ReadDTagString(wire.DTag) (string, error)
	BeginDTag(wire.DTag) error
	End() error
	EOF() bool
}

// NewDecoder constructs a fresh decoder over data. The returned decoder
// MUST be isolated from other tests.
type NewDecoder func(t *testing.T, data []byte) Decoder

// RunDecoderConformance runs the suite against an implementation.
func RunDecoderConformance(t *testing.T, newDecoder NewDecoder) {
	t.Helper()

	encode := func(t *testing.T, build func(e *wire.Encoder)) []byte {
		t.Helper()
		var e wire.Encoder
		build(&e)
		data, err := e.Bytes()
		if err != nil {
			t.Fatalf("encode fixture: %v", err)
		}
		return data
	}

	t.Run("BinaryElementRoundTrip", func(t *testing.T) {
		payload := bytes.Repeat([]byte{0xc3}, 32)
		data := encode(t, func(e *wire.Encoder) {
			_ = e.WriteDTagBinary(wire.DTagKey, payload)
		})
		d := newDecoder(t, data)
		got, err := d.ReadDTagBinary(wire.DTagKey)
		if err != nil {
			t.Fatalf("ReadDTagBinary: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("payload mismatch: got %x", got)
		}
		if !d.EOF() {
			t.Fatalf("expected EOF")
		}
	})

	t.Run("StringElementRoundTrip", func(t *testing.T) {
		data := encode(t, func(e *wire.Encoder) {
			_ = e.WriteDTagString(wire.DTagDigestAlgorithm, "2.16.840.1.101.3.4.2.1")
		})
		d := newDecoder(t, data)
		got, err := d.ReadDTagString(wire.DTagDigestAlgorithm)
		if err != nil {
			t.Fatalf("ReadDTagString: %v", err)
		}
		if got != "2.16.840.1.101.3.4.2.1" {
			t.Fatalf("payload mismatch: got %q", got)
		}
	})

	t.Run("PeekIsNonConsuming", func(t *testing.T) {
		data := encode(t, func(e *wire.Encoder) {
			_ = e.WriteDTagBinary(wire.DTagPublisherPublicKeyDigest, []byte{1, 2, 3})
		})
		d := newDecoder(t, data)
		for i := 0; i < 4; i++ {
			if !d.PeekDTag(wire.DTagPublisherPublicKeyDigest) {
				t.Fatalf("PeekDTag #%d: expected true", i)
			}
			if d.PeekDTag(wire.DTagPublisherCertificateDigest) {
				t.Fatalf("PeekDTag #%d: matched the wrong tag", i)
			}
		}
		if _, err := d.ReadDTagBinary(wire.DTagPublisherPublicKeyDigest); err != nil {
			t.Fatalf("ReadDTagBinary after peeks: %v", err)
		}
	})

	t.Run("MismatchDoesNotAdvance", func(t *testing.T) {
		data := encode(t, func(e *wire.Encoder) {
			_ = e.WriteDTagBinary(wire.DTagKey, []byte("kk"))
		})
		d := newDecoder(t, data)
		if _, err := d.ReadDTagBinary(wire.DTagContent); err == nil {
			t.Fatalf("ReadDTagBinary(wrong tag) succeeded")
		}
		got, err := d.ReadDTagBinary(wire.DTagKey)
		if err != nil {
			t.Fatalf("ReadDTagBinary after mismatch: %v", err)
		}
		if string(got) != "kk" {
			t.Fatalf("payload mismatch after failed read: %q", got)
		}
	})

	t.Run("NestedComposite", func(t *testing.T) {
		data := encode(t, func(e *wire.Encoder) {
			_ = e.BeginDTag(wire.DTagSignature)
			_ = e.WriteDTagBinary(wire.DTagSignatureBits, []byte{9, 9})
			_ = e.End()
		})
		d := newDecoder(t, data)
		if err := d.BeginDTag(wire.DTagSignature); err != nil {
			t.Fatalf("BeginDTag: %v", err)
		}
		if b, err := d.ReadDTagBinary(wire.DTagSignatureBits); err != nil || !bytes.Equal(b, []byte{9, 9}) {
			t.Fatalf("ReadDTagBinary: %x, %v", b, err)
		}
		if err := d.End(); err != nil {
			t.Fatalf("End: %v", err)
		}
		if !d.EOF() {
			t.Fatalf("expected EOF")
		}
	})

	t.Run("TruncatedPayloadFails", func(t *testing.T) {
		data := encode(t, func(e *wire.Encoder) {
			_ = e.WriteDTagBinary(wire.DTagKey, bytes.Repeat([]byte{7}, 64))
		})
		d := newDecoder(t, data[:len(data)-8])
		if _, err := d.ReadDTagBinary(wire.DTagKey); err == nil {
			t.Fatalf("ReadDTagBinary(truncated) succeeded")
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		d := newDecoder(t, nil)
		if !d.EOF() {
			t.Fatalf("expected EOF on empty input")
		}
		if d.PeekDTag(wire.DTagKey) {
			t.Fatalf("PeekDTag on empty input matched")
		}
		if _, err := d.ReadDTagBinary(wire.DTagKey); err == nil {
			t.Fatalf("ReadDTagBinary on empty input succeeded")
		}
	})

	t.Run("LargeTagValue", func(t *testing.T) {
		const tag wire.DTag = 1 << 20
		data := encode(t, func(e *wire.Encoder) {
			_ = e.WriteDTagBinary(tag, []byte{1})
		})
		d := newDecoder(t, data)
		if !d.PeekDTag(tag) {
			t.Fatalf("PeekDTag(large tag): expected true")
		}
		if b, err := d.ReadDTagBinary(tag); err != nil || !bytes.Equal(b, []byte{1}) {
			t.Fatalf("ReadDTagBinary(large tag): %x, %v", b, err)
		}
	})
}
