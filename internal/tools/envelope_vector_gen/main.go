// envelope_vector_gen writes a signed envelope plus its inputs (content,
// signature, DER key) into a directory, for exercising the CLI and daemon
// by hand. Signing lives here, outside the production API.
package main

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"ccnkit.dev/go/envelope"
	"ccnkit.dev/go/keys"
	"ccnkit.dev/go/pubid"
)

func main() {
	dir := flag.String("dir", "testdata", "output directory")
	content := flag.String("content", "hello, ccnkit", "content to sign")
	withPublisher := flag.Bool("publisher", true, "include a Key publisher identity")
	flag.Parse()

	if err := generate(*dir, []byte(*content), *withPublisher); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(dir string, content []byte, withPublisher bool) error {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return err
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return err
	}
	key, err := keys.ParseDER(der)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(content)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		return err
	}

	env := &envelope.Envelope{Sig: sig, KeyDER: der, Content: content}
	if withPublisher {
		id := pubid.FromKey(key)
		env.Publisher = &id
	}
	data, err := env.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := map[string][]byte{
		"content.bin":  content,
		"sig.bin":      sig,
		"key.der":      der,
		"envelope.bin": data,
	}
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %s (key %s)\n", dir, key)
	return nil
}
