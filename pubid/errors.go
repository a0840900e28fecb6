package pubid

import "errors"

// Kind is a stable category for programmatic error handling. Callers should
// branch on Kind rather than matching error strings.
type Kind string

const (
	// KindMalformedElement: the element at the cursor matches none of the
	// four identifier tags.
	KindMalformedElement Kind = "MalformedElement"
	// KindDecodeError: a tag matched but its payload is absent or
	// unreadable.
	KindDecodeError Kind = "DecodeError"
	// KindInvalidState: encoding was attempted on an invalid value.
	KindInvalidState Kind = "InvalidState"
)

// Error is the package's structured error type. Message is intended for
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
