package wire

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Dump writes a human-readable, indented listing of the token stream in
// data. It is a debugging aid for the CLI; output format is not stable.
func Dump(w io.Writer, data []byte) error {
	depth := 0
	off := 0
	for off < len(data) {
		h, n, err := parseHeader(data[off:])
		if err != nil {
			return fmt.Errorf("at offset %d: %w", off, err)
		}
		off += n
		switch h.TT {
		case TypeClose:
			if depth == 0 {
				return fmt.Errorf("at offset %d: %w: CLOSE at top level", off-n, ErrUnexpectedToken)
			}
			depth--
			fmt.Fprintf(w, "%s}\n", indent(depth))
		case TypeDTag:
			fmt.Fprintf(w, "%sDTAG %s {\n", indent(depth), DTag(h.Val))
			depth++
		case TypeBlob, TypeUData:
			if uint64(len(data)-off) < h.Val {
				return fmt.Errorf("at offset %d: %w", off, ErrTruncated)
			}
			payload := data[off : off+int(h.Val)]
			off += int(h.Val)
			if h.TT == TypeUData && utf8.Valid(payload) {
				fmt.Fprintf(w, "%sUDATA %q\n", indent(depth), payload)
			} else {
				fmt.Fprintf(w, "%s%s[%d] %s\n", indent(depth), h.TT, h.Val, hexPrefix(payload, 16))
			}
		default:
			fmt.Fprintf(w, "%s%s %d\n", indent(depth), h.TT, h.Val)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed element(s)", ErrTruncated, depth)
	}
	return nil
}

func indent(depth int) string { return strings.Repeat("  ", depth) }

// hexPrefix renders up to max bytes of b as hex, with an ellipsis when
// truncated.
func hexPrefix(b []byte, max int) string {
	if len(b) <= max {
		return hex.EncodeToString(b)
	}
	return hex.EncodeToString(b[:max]) + "..."
}
