package wire

import "fmt"

// Decoder reads ccnb tokens from an in-memory buffer. All lookahead is
// non-consuming; reads advance the cursor only on success of the whole
// production. Decoders are not safe for concurrent use.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a Decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// Peek decodes the token header at the cursor without consuming it.
func (d *Decoder) Peek() (Header, error) {
	h, _, err := parseHeader(d.buf[d.off:])
	return h, err
}

// EOF reports whether the cursor is at the end of the stream.
func (d *Decoder) EOF() bool { return d.off >= len(d.buf) }

// Rest returns the unconsumed remainder of the stream.
func (d *Decoder) Rest() []byte { return d.buf[d.off:] }

// PeekDTag reports whether the next element is a composite with the given
// dictionary tag. It never consumes input.
func (d *Decoder) PeekDTag(tag DTag) bool {
	h, _, err := parseHeader(d.buf[d.off:])
	return err == nil && h.TT == TypeDTag && h.Val == uint64(tag)
}

// BeginDTag consumes the opening header of a composite element with the
// given tag.
func (d *Decoder) BeginDTag(tag DTag) error {
	h, n, err := parseHeader(d.buf[d.off:])
	if err != nil {
		return err
	}
	if h.TT != TypeDTag {
		return fmt.Errorf("%w: want DTAG %s, got %s", ErrUnexpectedToken, tag, h.TT)
	}
	if h.Val != uint64(tag) {
		return fmt.Errorf("%w: want DTAG %s, got DTAG %s", ErrTagMismatch, tag, DTag(h.Val))
	}
	d.off += n
	return nil
}

// End consumes the closer of the current composite element.
func (d *Decoder) End() error {
	h, n, err := parseHeader(d.buf[d.off:])
	if err != nil {
		return err
	}
	if h.TT != TypeClose {
		return fmt.Errorf("%w: want CLOSE, got %s", ErrUnexpectedToken, h.TT)
	}
	d.off += n
	return nil
}

// readPayload consumes one BLOB or UDATA token and returns its payload.
func (d *Decoder) readPayload(want TokenType) ([]byte, error) {
	h, n, err := parseHeader(d.buf[d.off:])
	if err != nil {
		return nil, err
	}
	if h.TT != want {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrUnexpectedToken, want, h.TT)
	}
	start := d.off + n
	end := start + int(h.Val)
	if uint64(len(d.buf)-start) < h.Val {
		return nil, ErrTruncated
	}
	d.off = end
	return d.buf[start:end], nil
}

// ReadDTagBinary consumes the production DTAG(tag){ BLOB } and returns the
// payload. The cursor does not move unless the whole production parses.
func (d *Decoder) ReadDTagBinary(tag DTag) ([]byte, error) {
	save := d.off
	if err := d.BeginDTag(tag); err != nil {
		return nil, err
	}
	b, err := d.readPayload(TypeBlob)
	if err != nil {
		d.off = save
		return nil, err
	}
	if err := d.End(); err != nil {
		d.off = save
		return nil, err
	}
	return b, nil
}

// ReadDTagString consumes the production DTAG(tag){ UDATA } and returns the
// payload as a string. The cursor does not move unless the whole production
// parses.
func (d *Decoder) ReadDTagString(tag DTag) (string, error) {
	save := d.off
	if err := d.BeginDTag(tag); err != nil {
		return "", err
	}
	b, err := d.readPayload(TypeUData)
	if err != nil {
		d.off = save
		return "", err
	}
	if err := d.End(); err != nil {
		d.off = save
		return "", err
	}
	return string(b), nil
}
