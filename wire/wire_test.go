package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestHeaderGoldenBytes(t *testing.T) {
	// Hand-checked against the encoding rule: final byte is
	// 0x80 | low4(val)<<3 | tt, preceding bytes carry 7-bit groups
	// most-significant first with the high bit clear.
	cases := []struct {
		val  uint64
		tt   TokenType
		want []byte
	}{
		{5, TypeBlob, []byte{0xad}},        // 5<<3|5 | 0x80
		{19, TypeDTag, []byte{0x01, 0x9a}}, // Content
		{60, TypeDTag, []byte{0x03, 0xe2}}, // PublisherPublicKeyDigest
		{64, TypeDTag, []byte{0x04, 0x82}}, // ContentObject
		{0, TypeUData, []byte{0x86}},       // empty UDATA
		{1<<36 - 1, TypeBlob, []byte{0x0f, 0x7f, 0x7f, 0x7f, 0x7f, 0xfd}},
	}
	for _, tc := range cases {
		got := appendHeader(nil, tc.val, tc.tt)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("appendHeader(%d, %s) = %x, want %x", tc.val, tc.tt, got, tc.want)
		}
		h, n, err := parseHeader(tc.want)
		if err != nil {
			t.Fatalf("parseHeader(%x): %v", tc.want, err)
		}
		if n != len(tc.want) || h.Val != tc.val || h.TT != tc.tt {
			t.Errorf("parseHeader(%x) = %+v (%d bytes), want val=%d tt=%s", tc.want, h, n, tc.val, tc.tt)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 15, 16, 127, 128, 2047, 2048, 1 << 20, 1 << 35, 1<<36 - 1}
	for _, val := range vals {
		for _, tt := range []TokenType{TypeExt, TypeTag, TypeDTag, TypeBlob, TypeUData} {
			enc := appendHeader(nil, val, tt)
			h, n, err := parseHeader(enc)
			if err != nil {
				t.Fatalf("parseHeader(val=%d tt=%s): %v", val, tt, err)
			}
			if n != len(enc) || h.Val != val || h.TT != tt {
				t.Fatalf("round trip val=%d tt=%s: got %+v (%d of %d bytes)", val, tt, h, n, len(enc))
			}
		}
	}
}

func TestHeaderOverflow(t *testing.T) {
	// One above the cap: 2^36 encodes, but must not decode.
	enc := appendHeader(nil, 1<<36, TypeBlob)
	if _, _, err := parseHeader(enc); !errors.Is(err, ErrOverflow) {
		t.Fatalf("parseHeader(2^36) error = %v, want ErrOverflow", err)
	}
}

func TestHeaderTruncated(t *testing.T) {
	enc := appendHeader(nil, 1<<20, TypeDTag)
	for i := 0; i < len(enc); i++ {
		if _, _, err := parseHeader(enc[:i]); !errors.Is(err, ErrTruncated) {
			t.Fatalf("parseHeader(%d of %d bytes) error = %v, want ErrTruncated", i, len(enc), err)
		}
	}
}

func TestDTagBinaryRoundTrip(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	var e Encoder
	if err := e.WriteDTagBinary(DTagPublisherPublicKeyDigest, payload); err != nil {
		t.Fatalf("WriteDTagBinary: %v", err)
	}
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	d := NewDecoder(data)
	if !d.PeekDTag(DTagPublisherPublicKeyDigest) {
		t.Fatalf("PeekDTag: expected true")
	}
	if d.PeekDTag(DTagPublisherCertificateDigest) {
		t.Fatalf("PeekDTag(wrong tag): expected false")
	}
	got, err := d.ReadDTagBinary(DTagPublisherPublicKeyDigest)
	if err != nil {
		t.Fatalf("ReadDTagBinary: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %x want %x", got, payload)
	}
	if !d.EOF() {
		t.Fatalf("expected EOF, %d bytes remain", len(d.Rest()))
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	var e Encoder
	if err := e.WriteDTagString(DTagDigestAlgorithm, "2.16.840.1.101.3.4.2.1"); err != nil {
		t.Fatalf("WriteDTagString: %v", err)
	}
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	d := NewDecoder(data)
	for i := 0; i < 3; i++ {
		if !d.PeekDTag(DTagDigestAlgorithm) {
			t.Fatalf("PeekDTag #%d: expected true", i)
		}
	}
	s, err := d.ReadDTagString(DTagDigestAlgorithm)
	if err != nil {
		t.Fatalf("ReadDTagString: %v", err)
	}
	if s != "2.16.840.1.101.3.4.2.1" {
		t.Fatalf("payload mismatch: got %q", s)
	}
}

func TestReadDTagBinaryTagMismatchDoesNotAdvance(t *testing.T) {
	var e Encoder
	if err := e.WriteDTagBinary(DTagKey, []byte("key bytes")); err != nil {
		t.Fatalf("WriteDTagBinary: %v", err)
	}
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	d := NewDecoder(data)
	if _, err := d.ReadDTagBinary(DTagContent); !errors.Is(err, ErrTagMismatch) {
		t.Fatalf("ReadDTagBinary(wrong tag) error = %v, want ErrTagMismatch", err)
	}
	// The failed read must leave the cursor untouched.
	got, err := d.ReadDTagBinary(DTagKey)
	if err != nil {
		t.Fatalf("ReadDTagBinary after mismatch: %v", err)
	}
	if string(got) != "key bytes" {
		t.Fatalf("payload mismatch: got %q", got)
	}
}

func TestNestedComposite(t *testing.T) {
	var e Encoder
	if err := e.BeginDTag(DTagSignature); err != nil {
		t.Fatalf("BeginDTag: %v", err)
	}
	if err := e.WriteDTagString(DTagDigestAlgorithm, "oid"); err != nil {
		t.Fatalf("WriteDTagString: %v", err)
	}
	if err := e.WriteDTagBinary(DTagSignatureBits, []byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteDTagBinary: %v", err)
	}
	if err := e.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	d := NewDecoder(data)
	if err := d.BeginDTag(DTagSignature); err != nil {
		t.Fatalf("BeginDTag: %v", err)
	}
	if s, err := d.ReadDTagString(DTagDigestAlgorithm); err != nil || s != "oid" {
		t.Fatalf("ReadDTagString: %q, %v", s, err)
	}
	if b, err := d.ReadDTagBinary(DTagSignatureBits); err != nil || !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Fatalf("ReadDTagBinary: %x, %v", b, err)
	}
	if err := d.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if !d.EOF() {
		t.Fatalf("expected EOF")
	}
}

func TestBytesRejectsUnclosedElement(t *testing.T) {
	var e Encoder
	if err := e.BeginDTag(DTagName); err != nil {
		t.Fatalf("BeginDTag: %v", err)
	}
	if _, err := e.Bytes(); !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("Bytes with open element error = %v, want ErrUnexpectedToken", err)
	}
}

func TestEndWithoutOpen(t *testing.T) {
	var e Encoder
	if err := e.End(); !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("End without open error = %v, want ErrUnexpectedToken", err)
	}
}

func TestDump(t *testing.T) {
	var e Encoder
	_ = e.BeginDTag(DTagSignature)
	_ = e.WriteDTagBinary(DTagSignatureBits, bytes.Repeat([]byte{0xab}, 32))
	_ = e.End()
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	var out strings.Builder
	if err := Dump(&out, data); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	s := out.String()
	for _, want := range []string{"DTAG Signature {", "DTAG SignatureBits {", "BLOB[32]", "..."} {
		if !strings.Contains(s, want) {
			t.Errorf("Dump output missing %q:\n%s", want, s)
		}
	}
}

func TestDumpRejectsMalformed(t *testing.T) {
	if err := Dump(&strings.Builder{}, []byte{0x00}); !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("Dump(top-level close) error = %v, want ErrUnexpectedToken", err)
	}
	var e Encoder
	_ = e.BeginDTag(DTagName)
	if err := Dump(&strings.Builder{}, e.buf); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Dump(unclosed) error = %v, want ErrTruncated", err)
	}
}

func TestPeekRawHeader(t *testing.T) {
	var e Encoder
	_ = e.BeginDTag(DTagInterest)
	_ = e.End()
	data, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	d := NewDecoder(data)
	h, err := d.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if h.TT != TypeDTag || h.Val != uint64(DTagInterest) {
		t.Fatalf("Peek = %+v", h)
	}
	if err := d.BeginDTag(DTagInterest); err != nil {
		t.Fatalf("BeginDTag: %v", err)
	}
	h, err = d.Peek()
	if err != nil || h.TT != TypeClose {
		t.Fatalf("Peek at closer = %+v, %v", h, err)
	}
	if _, err := NewDecoder(nil).Peek(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Peek on empty = %v, want ErrTruncated", err)
	}
}

func TestDTagString(t *testing.T) {
	if got := DTagPublisherIssuerKeyDigest.String(); got != "PublisherIssuerKeyDigest" {
		t.Fatalf("String() = %q", got)
	}
	if got := DTag(12345).String(); got != "12345" {
		t.Fatalf("String() for unknown tag = %q", got)
	}
}
