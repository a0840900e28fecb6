package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"strings"
	"testing"
)

func TestParseDERRSA(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}

	k, err := ParseDER(der)
	if err != nil {
		t.Fatalf("ParseDER: %v", err)
	}
	if k.Type() != TypeRSA {
		t.Fatalf("Type = %s, want RSA", k.Type())
	}
	if !bytes.Equal(k.DER(), der) {
		t.Fatalf("DER round trip mismatch")
	}
	if _, ok := k.Key().(*rsa.PublicKey); !ok {
		t.Fatalf("Key() = %T, want *rsa.PublicKey", k.Key())
	}
}

func TestParseDERPKCS1Fallback(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	der := x509.MarshalPKCS1PublicKey(&priv.PublicKey)

	k, err := ParseDER(der)
	if err != nil {
		t.Fatalf("ParseDER(pkcs1): %v", err)
	}
	if k.Type() != TypeRSA {
		t.Fatalf("Type = %s, want RSA", k.Type())
	}
	if !strings.HasPrefix(string(k.PEM()), "-----BEGIN RSA PUBLIC KEY-----") {
		t.Fatalf("PEM block type mismatch:\n%s", k.PEM())
	}
}

func TestParseDERECDSA(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey: %v", err)
	}
	k, err := FromStd(&priv.PublicKey)
	if err != nil {
		t.Fatalf("FromStd: %v", err)
	}
	if k.Type() != TypeECDSA {
		t.Fatalf("Type = %s, want ECDSA", k.Type())
	}

	reparsed, err := ParseDER(k.DER())
	if err != nil {
		t.Fatalf("ParseDER(FromStd DER): %v", err)
	}
	if reparsed.Type() != TypeECDSA {
		t.Fatalf("reparsed Type = %s, want ECDSA", reparsed.Type())
	}
}

func TestParseDEREd25519IsOther(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519.GenerateKey: %v", err)
	}
	k, err := FromStd(pub)
	if err != nil {
		t.Fatalf("FromStd: %v", err)
	}
	if k.Type() != TypeOther {
		t.Fatalf("Type = %s, want other", k.Type())
	}
}

func TestParseDERGarbage(t *testing.T) {
	if _, err := ParseDER([]byte("definitely not DER")); err == nil {
		t.Fatalf("ParseDER(garbage): expected error")
	}
}

func TestPEMWrapping(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	k, err := FromStd(&priv.PublicKey)
	if err != nil {
		t.Fatalf("FromStd: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(k.PEM())), "\n")
	if lines[0] != "-----BEGIN PUBLIC KEY-----" {
		t.Fatalf("PEM header = %q", lines[0])
	}
	if lines[len(lines)-1] != "-----END PUBLIC KEY-----" {
		t.Fatalf("PEM footer = %q", lines[len(lines)-1])
	}
	for i, line := range lines[1 : len(lines)-1] {
		if len(line) > 64 {
			t.Fatalf("PEM body line %d is %d columns, want <= 64", i, len(line))
		}
	}
}

func TestDigestAndCID(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey: %v", err)
	}
	k, err := FromStd(&priv.PublicKey)
	if err != nil {
		t.Fatalf("FromStd: %v", err)
	}

	want := sha256.Sum256(k.DER())
	if got := k.Digest(); !bytes.Equal(got, want[:]) {
		t.Fatalf("Digest = %x, want %x", got, want)
	}

	id, err := k.CID()
	if err != nil {
		t.Fatalf("CID: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if k.String() != id.String() {
		t.Fatalf("String() = %q, want %q", k.String(), id.String())
	}
	// CIDv1 strings are base32 multibase, prefix "b".
	if !strings.HasPrefix(k.String(), "b") {
		t.Fatalf("CID string %q not CIDv1 base32", k.String())
	}
}
