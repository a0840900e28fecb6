package wire

import "fmt"

// Encoder appends ccnb tokens to an in-memory buffer. The zero value is
// ready to use. Encoders are not safe for concurrent use.
type Encoder struct {
	buf  []byte
	open int // composite elements begun and not yet ended
}

// BeginDTag opens a composite element with the given dictionary tag.
func (e *Encoder) BeginDTag(tag DTag) error {
	e.buf = appendHeader(e.buf, uint64(tag), TypeDTag)
	e.open++
	return nil
}

// End closes the most recently opened composite element.
func (e *Encoder) End() error {
	if e.open == 0 {
		return fmt.Errorf("%w: End without open element", ErrUnexpectedToken)
	}
	e.buf = append(e.buf, 0)
	e.open--
	return nil
}

// WriteBlob appends one BLOB token carrying b.
func (e *Encoder) WriteBlob(b []byte) error {
	e.buf = appendHeader(e.buf, uint64(len(b)), TypeBlob)
	e.buf = append(e.buf, b...)
	return nil
}

// WriteUData appends one UDATA token carrying s.
func (e *Encoder) WriteUData(s string) error {
	e.buf = appendHeader(e.buf, uint64(len(s)), TypeUData)
	e.buf = append(e.buf, s...)
	return nil
}

// WriteDTagBinary writes the production DTAG(tag){ BLOB b } as one element.
func (e *Encoder) WriteDTagBinary(tag DTag, b []byte) error {
	if err := e.BeginDTag(tag); err != nil {
		return err
	}
	if err := e.WriteBlob(b); err != nil {
		return err
	}
	return e.End()
}

// WriteDTagString writes the production DTAG(tag){ UDATA s } as one element.
func (e *Encoder) WriteDTagString(tag DTag, s string) error {
	if err := e.BeginDTag(tag); err != nil {
		return err
	}
	if err := e.WriteUData(s); err != nil {
		return err
	}
	return e.End()
}

// Len reports the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

// Bytes returns the encoded stream. Open composite elements are a caller
// bug; Bytes reports them as an error rather than emitting an unbalanced
// stream.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.open != 0 {
		return nil, fmt.Errorf("%w: %d unclosed element(s)", ErrUnexpectedToken, e.open)
	}
	return e.buf, nil
}
