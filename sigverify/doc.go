// Package sigverify decides whether a signature is a valid signature over a
// buffer under a given public key. The decision tree spans key types (RSA,
// ECDSA), the SHA-256 digest requirement, and two execution models: a
// synchronous backend working on PEM-formatted keys and an optional
// host-provided asynchronous engine.
//
// Both models surface through one deferred Result. A wrong signature
// resolves false with a nil error; only structural or environmental
// problems (bad key material, unsupported algorithm or key type, engine
// faults) fail the Result. Verify never fails synchronously: callers always
// program against the Result, even when it happens to be resolved already.
package sigverify
