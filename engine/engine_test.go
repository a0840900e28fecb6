package engine

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"sync"
	"testing"
	"time"

	circled "github.com/cloudflare/circl/sign/ed25519"
)

func rsaOp(t *testing.T, mutate bool) Op {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}
	content := []byte("signed content")
	digest := sha256.Sum256(content)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		t.Fatalf("SignPKCS1v15: %v", err)
	}
	if mutate {
		sig[0] ^= 0x01
	}
	return Op{Scheme: SchemeRSAPKCS1SHA256, KeyDER: der, Content: content, Sig: sig}
}

func submitAndWait(t *testing.T, p *Pool, op Op) Outcome {
	t.Helper()
	ch := make(chan Outcome, 1)
	if err := p.Submit(op, func(out Outcome) { ch <- out }); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	select {
	case out := <-ch:
		return out
	case <-time.After(10 * time.Second):
		t.Fatalf("completion never ran")
		return Outcome{}
	}
}

func TestPoolRSAVerify(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	if out := submitAndWait(t, p, rsaOp(t, false)); out.Err != nil || !out.OK {
		t.Fatalf("good signature: %+v", out)
	}
	if out := submitAndWait(t, p, rsaOp(t, true)); out.Err != nil || out.OK {
		t.Fatalf("mutated signature: %+v", out)
	}
}

func TestPoolRSABadKey(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	op := rsaOp(t, false)
	op.KeyDER = []byte("not a key")
	if out := submitAndWait(t, p, op); out.Err == nil {
		t.Fatalf("expected import error, got %+v", out)
	}
}

func TestPoolEd25519(t *testing.T) {
	pub, priv, err := circled.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	content := []byte("ed25519 content")
	sig := circled.Sign(priv, content)

	p := NewPool(1)
	defer p.Close()

	op := Op{Scheme: SchemeEd25519, KeyDER: pub, Content: content, Sig: sig}
	if out := submitAndWait(t, p, op); out.Err != nil || !out.OK {
		t.Fatalf("good signature: %+v", out)
	}

	sig[0] ^= 0x01
	op.Sig = sig
	if out := submitAndWait(t, p, op); out.Err != nil || out.OK {
		t.Fatalf("mutated signature: %+v", out)
	}

	op.KeyDER = pub[:16]
	if out := submitAndWait(t, p, op); out.Err == nil {
		t.Fatalf("short key: expected error, got %+v", out)
	}
}

func TestPoolUnknownScheme(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	op := Op{Scheme: "hmac-md5", Content: []byte("x"), Sig: []byte("y")}
	if out := submitAndWait(t, p, op); out.Err == nil {
		t.Fatalf("expected unknown-scheme error, got %+v", out)
	}
}

func TestPoolSubmitAfterClose(t *testing.T) {
	p := NewPool(1)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	err := p.Submit(Op{Scheme: SchemeEd25519}, func(Outcome) {})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("Submit after Close = %v, want ErrClosed", err)
	}
	// Idempotent.
	if err := p.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestPoolCloseDrainsPending(t *testing.T) {
	p := NewPool(4)

	const n = 32
	op := rsaOp(t, false)
	var mu sync.Mutex
	completed := 0
	for i := 0; i < n; i++ {
		if err := p.Submit(op, func(out Outcome) {
			mu.Lock()
			completed++
			mu.Unlock()
		}); err != nil {
			t.Fatalf("Submit #%d: %v", i, err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if completed != n {
		t.Fatalf("completed = %d, want %d", completed, n)
	}
}
