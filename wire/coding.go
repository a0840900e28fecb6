package wire

import (
	"errors"
	"fmt"
)

// TokenType is the 3-bit type carried in every ccnb token header.
type TokenType uint8

const (
	TypeExt   TokenType = 0
	TypeTag   TokenType = 1
	TypeDTag  TokenType = 2
	TypeAttr  TokenType = 3
	TypeDAttr TokenType = 4
	TypeBlob  TokenType = 5
	TypeUData TokenType = 6

	// TypeClose is not a real token type; Peek reports it for the single
	// zero byte that closes a composite element.
	TypeClose TokenType = 7
)

func (tt TokenType) String() string {
	switch tt {
	case TypeExt:
		return "EXT"
	case TypeTag:
		return "TAG"
	case TypeDTag:
		return "DTAG"
	case TypeAttr:
		return "ATTR"
	case TypeDAttr:
		return "DATTR"
	case TypeBlob:
		return "BLOB"
	case TypeUData:
		return "UDATA"
	case TypeClose:
		return "CLOSE"
	default:
		return fmt.Sprintf("TT(%d)", uint8(tt))
	}
}

const (
	ttBits  = 3
	ttMask  = (1 << ttBits) - 1
	valMask = 0x0f // value bits in the final header byte
	hbit    = 0x80 // set on the final header byte only

	// maxVal caps decoded header values. Larger values are rejected rather
	// than silently truncated.
	maxVal = 1<<36 - 1
)

var (
	ErrTruncated       = errors.New("wire: truncated input")
	ErrOverflow        = errors.New("wire: header value overflow")
	ErrUnexpectedToken = errors.New("wire: unexpected token")
	ErrTagMismatch     = errors.New("wire: tag mismatch")
)

// Header is one decoded token header.
type Header struct {
	TT  TokenType
	Val uint64
}

// appendHeader encodes val/tt in ccnb header form: the final byte has the
// high bit set and carries the low 4 value bits above the 3-bit token type;
// preceding bytes carry the remaining 7-bit groups most-significant first
// with the high bit clear.
func appendHeader(dst []byte, val uint64, tt TokenType) []byte {
	var buf [10]byte
	i := len(buf) - 1
	buf[i] = hbit | byte(val&valMask)<<ttBits | byte(tt)
	val >>= 4
	for val != 0 {
		i--
		buf[i] = byte(val & 0x7f)
		val >>= 7
	}
	return append(dst, buf[i:]...)
}

// parseHeader decodes one token header (or closer) at the start of data.
// It returns the header and the number of bytes consumed.
func parseHeader(data []byte) (Header, int, error) {
	if len(data) == 0 {
		return Header{}, 0, ErrTruncated
	}
	if data[0] == 0 {
		return Header{TT: TypeClose}, 1, nil
	}
	var val uint64
	for i, b := range data {
		if b&hbit != 0 {
			val = val<<4 | uint64(b>>ttBits&valMask)
			if val > maxVal {
				return Header{}, 0, ErrOverflow
			}
			return Header{TT: TokenType(b & ttMask), Val: val}, i + 1, nil
		}
		val = val<<7 | uint64(b&0x7f)
		if val > maxVal {
			return Header{}, 0, ErrOverflow
		}
	}
	return Header{}, 0, ErrTruncated
}
