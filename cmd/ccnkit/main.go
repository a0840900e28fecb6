// ccnkit is the protocol toolbox CLI: key inspection, wire dumps, envelope
// inspection, and local or remote signature verification.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"ccnkit.dev/go/digests"
	"ccnkit.dev/go/engine"
	"ccnkit.dev/go/envelope"
	"ccnkit.dev/go/grpcverify"
	"ccnkit.dev/go/keys"
	"ccnkit.dev/go/sigverify"
	"ccnkit.dev/go/wire"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "wire":
		return cmdWire(args[1:], out, errOut)
	case "envelope":
		return cmdEnvelope(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "ccnkit: wire codec and signature verification CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ccnkit key info <key.der>")
	fmt.Fprintln(w, "  ccnkit wire dump <file>")
	fmt.Fprintln(w, "  ccnkit envelope info <file>")
	fmt.Fprintln(w, "  ccnkit verify --content <file> --sig <file> --key <key.der> [--digest <alg>] [--sync] [--remote <addr>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 verified/ok, 1 failed or error, 2 usage.")
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) != 2 || args[0] != "info" {
		fmt.Fprintln(errOut, "usage: ccnkit key info <key.der>")
		return 2
	}
	der, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	key, err := keys.ParseDER(der)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintf(out, "Type:   %s\n", key.Type())
	fmt.Fprintf(out, "CID:    %s\n", key)
	fmt.Fprintf(out, "Digest: %s\n", hex.EncodeToString(key.Digest()))
	fmt.Fprintf(out, "%s", key.PEM())
	return 0
}

func cmdWire(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) != 2 || args[0] != "dump" {
		fmt.Fprintln(errOut, "usage: ccnkit wire dump <file>")
		return 2
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if err := wire.Dump(out, data); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}

func cmdEnvelope(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) != 2 || args[0] != "info" {
		fmt.Fprintln(errOut, "usage: ccnkit envelope info <file>")
		return 2
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	env, err := envelope.Parse(data)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintf(out, "DigestAlg: %s\n", env.DigestAlg)
	fmt.Fprintf(out, "Signature: %d bytes\n", len(env.Sig))
	if env.Publisher != nil {
		fmt.Fprintf(out, "Publisher: %s %s\n", env.Publisher.Variant, hex.EncodeToString(env.Publisher.Digest))
	} else {
		fmt.Fprintln(out, "Publisher: (none)")
	}
	if key, err := keys.ParseDER(env.KeyDER); err == nil {
		fmt.Fprintf(out, "Key:       %s %s\n", key.Type(), key)
	} else {
		fmt.Fprintf(out, "Key:       unparsable (%d bytes)\n", len(env.KeyDER))
	}
	fmt.Fprintf(out, "Content:   %d bytes\n", len(env.Content))
	return 0
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	contentPath := fs.String("content", "", "content file")
	sigPath := fs.String("sig", "", "signature file (raw bytes)")
	keyPath := fs.String("key", "", "public key file (DER)")
	digest := fs.String("digest", string(digests.SHA256), "digest algorithm")
	sync := fs.Bool("sync", false, "force the synchronous path")
	remote := fs.String("remote", "", "verify against a remote daemon at this address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *contentPath == "" || *sigPath == "" || *keyPath == "" {
		fmt.Fprintln(errOut, "verify: --content, --sig and --key are required")
		return 2
	}

	content, err := os.ReadFile(*contentPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	sig, err := os.ReadFile(*sigPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	keyDER, err := os.ReadFile(*keyPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	var ok bool
	if *remote != "" {
		ok, err = verifyRemote(*remote, content, sig, keyDER, digests.Alg(*digest))
	} else {
		ok, err = verifyLocal(content, sig, keyDER, digests.Alg(*digest), *sync)
	}
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if !ok {
		fmt.Fprintln(out, "NOT VERIFIED")
		return 1
	}
	fmt.Fprintln(out, "VERIFIED")
	return 0
}

func verifyLocal(content, sig, keyDER []byte, alg digests.Alg, sync bool) (bool, error) {
	verifier := &sigverify.Verifier{}
	if !sync {
		pool := engine.NewPool(2)
		defer pool.Close()
		verifier.Engine = pool
	}
	opts := sigverify.Options{Digest: alg, Synchronous: sync}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return verifier.VerifyDER(content, sig, keyDER, opts).Wait(ctx)
}

func verifyRemote(addr string, content, sig, keyDER []byte, alg digests.Alg) (bool, error) {
	client, err := grpcverify.Dial(addr, grpcverify.DialOptions{Timeout: 10 * time.Second})
	if err != nil {
		return false, err
	}
	defer client.Close()
	client.Timeout = 30 * time.Second

	env := &envelope.Envelope{DigestAlg: alg, Sig: sig, KeyDER: keyDER, Content: content}
	return client.Verify(context.Background(), env)
}
