package parsequery

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DefaultDecode is the baseline decoder and the built-in default for
// Options.Decode. An absent input decodes to the empty string. Otherwise
// the first literal '+' becomes a space (only the first; a percent-encoded
// "%2B" is never touched), then the text is percent-decoded and the
// resulting bytes interpreted as CESU-8. Malformed escapes and byte
// sequences that are not valid CESU-8 fail the decode with a *DecodeError.
//
// Being a package-level function rather than an Options field, it cannot
// be reassigned; custom Decode overrides delegate to it directly.
func DefaultDecode(in Input, _ Input, _ *Options) (any, error) {
	if !in.Present {
		return "", nil
	}
	s := strings.Replace(in.Text, "+", " ", 1)
	return percentDecode(s)
}

// LenientDecode is an alternative decoder that never fails: every '+'
// becomes a space, malformed percent-escapes are kept as literal text,
// and decoded bytes are passed through without CESU-8 validation. Not the
// default; useful for PHP-style inputs where a broken escape should not
// abort the parse.
func LenientDecode(in Input, _ Input, _ *Options) (any, error) {
	if !in.Present {
		return "", nil
	}
	var out []byte
	b := []byte(in.Text)
	for i := 0; i < len(b); i++ {
		switch c := b[i]; c {
		case '+':
			out = append(out, ' ')
		case '%':
			if i+2 < len(b) && isHex(b[i+1]) && isHex(b[i+2]) {
				out = append(out, unHex(b[i+1])<<4|unHex(b[i+2]))
				i += 2
			} else {
				// invalid percent; keep literal '%', following bytes
				// are appended normally
				out = append(out, '%')
			}
		default:
			out = append(out, c)
		}
	}
	return string(out), nil
}

// percentDecode resolves %XX escapes in s and decodes the byte sequence
// as CESU-8. Offsets in returned errors point into s.
func percentDecode(s string) (string, error) {
	var buf []byte
	var pos []int // source offset of each decoded byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			buf = append(buf, c)
			pos = append(pos, i)
			continue
		}
		if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
			return "", &DecodeError{Kind: DecodeErrorMalformedEscape, Input: s, Offset: i}
		}
		buf = append(buf, unHex(s[i+1])<<4|unHex(s[i+2]))
		pos = append(pos, i)
		i += 2
	}
	return decodeCESU8(buf, pos, s)
}

// decodeCESU8 converts b to a UTF-8 string, recombining CESU-8 encoded
// surrogate pairs. pos maps each byte of b back to its offset in input,
// for error reporting.
func decodeCESU8(b []byte, pos []int, input string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			sb.WriteByte(b[i])
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r != utf8.RuneError || size > 1 {
			sb.WriteRune(r)
			i += size
			continue
		}
		// Not valid UTF-8 here. The only acceptable shape is a CESU-8
		// surrogate pair: two 3-byte sequences encoding a high then a
		// low UTF-16 surrogate.
		hi, ok := surrogateAt(b, i)
		if !ok || hi >= 0xDC00 {
			return "", &DecodeError{Kind: DecodeErrorInvalidBytes, Input: input, Offset: pos[i]}
		}
		lo, ok := surrogateAt(b, i+3)
		if !ok || lo < 0xDC00 {
			return "", &DecodeError{Kind: DecodeErrorInvalidBytes, Input: input, Offset: pos[i]}
		}
		sb.WriteRune(utf16.DecodeRune(hi, lo))
		i += 6
	}
	return sb.String(), nil
}

// surrogateAt reads a 3-byte sequence at b[i:] and reports whether it
// encodes a UTF-16 surrogate code point.
func surrogateAt(b []byte, i int) (rune, bool) {
	if i+3 > len(b) {
		return 0, false
	}
	if b[i] != 0xED || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
		return 0, false
	}
	r := rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
	return r, utf16.IsSurrogate(r)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unHex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
