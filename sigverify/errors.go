package sigverify

import "errors"

// Kind is a stable category for programmatic error handling. Callers should
// branch on Kind rather than matching error strings.
type Kind string

const (
	// KindInvalidKey: the key material does not decode.
	KindInvalidKey Kind = "InvalidKey"
	// KindUnsupportedAlgorithm: the requested digest algorithm is not
	// SHA-256.
	KindUnsupportedAlgorithm Kind = "UnsupportedAlgorithm"
	// KindUnsupportedKeyType: the key parsed but is neither RSA nor ECDSA.
	KindUnsupportedKeyType Kind = "UnsupportedKeyType"
	// KindEngineError: the underlying primitive or engine failed.
	KindEngineError Kind = "EngineError"
)

// Error is the package's structured error type. It travels through the
// Result, never through a synchronous return. Message is intended for
// humans; do not match on it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) error {
	if cause == nil {
		return newError(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
