// Package pubid encodes and decodes the publisher identity element: one of
// four wire-indistinguishable variants (key digest, certificate digest,
// issuer key digest, issuer certificate digest) that share a payload shape
// and differ only by dictionary tag.
//
// Because the surrounding grammar permits any one of the four at this
// position with no discriminator other than the tag, decoding is an ordered
// non-consuming trial-tag lookup. The probing order Key, Certificate,
// IssuerKey, IssuerCertificate is a wire-compatibility invariant.
package pubid
