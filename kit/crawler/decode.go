package crawler

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText turns raw file content into text. A UTF-8 byte order mark is
// dropped and UTF-16 content with a byte order mark is transcoded; anything
// else must already be valid UTF-8. NUL bytes mark content as binary.
func decodeText(data []byte) (string, error) {
	if order := utf16Order(data); order != nil {
		if i := invalidUTF16Offset(data[2:], order); i >= 0 {
			return "", fmt.Errorf("invalid UTF-16 at byte %d", i+2)
		}
	}

	decoder := unicode.BOMOverride(encoding.Nop.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to transcode content: %w", err)
	}

	if i := invalidUTF8Offset(out); i >= 0 {
		return "", fmt.Errorf("invalid UTF-8 at byte %d", i)
	}
	if i := bytes.IndexByte(out, 0); i >= 0 {
		return "", fmt.Errorf("NUL byte at offset %d", i)
	}
	return string(out), nil
}

// invalidUTF8Offset returns the offset of the first invalid sequence, or -1.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// utf16Order returns the byte order announced by a UTF-16 byte order mark,
// or nil when data has none.
func utf16Order(data []byte) binary.ByteOrder {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return binary.LittleEndian
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return binary.BigEndian
	}
	return nil
}

// invalidUTF16Offset returns the offset of the first code unit that is
// truncated or an unpaired surrogate, or -1. The x/text decoder would
// substitute U+FFFD for these instead of failing.
func invalidUTF16Offset(b []byte, order binary.ByteOrder) int {
	for i := 0; i < len(b); i += 2 {
		if i+1 >= len(b) {
			return i
		}
		r := rune(order.Uint16(b[i:]))
		if !utf16.IsSurrogate(r) {
			continue
		}
		if r >= 0xDC00 || i+3 >= len(b) {
			return i
		}
		if low := rune(order.Uint16(b[i+2:])); low < 0xDC00 || low > 0xDFFF {
			return i
		}
		i += 2
	}
	return -1
}
