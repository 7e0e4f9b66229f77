package sbuf

import "unicode/utf8"

// rawPlaneBase is the start of the private-use range (U+EE000..U+EE0FF)
// repline reserves to losslessly round-trip bytes that are not valid UTF-8.
const rawPlaneBase = 0xEE000

// EncodeRaw scans s and re-encodes any byte sequence that is not valid
// UTF-8 as a private-use code point in the raw plane, one code point per
// rogue byte. Valid UTF-8 passes through unchanged.
func EncodeRaw(s string) []byte {
	if utf8.ValidString(s) {
		return []byte(s)
	}
	out := make([]byte, 0, len(s)+4)
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], rune(rawPlaneBase)+rune(s[i]))
			out = append(out, buf[:n]...)
			i++
			continue
		}
		out = append(out, s[i:i+size]...)
		i += size
	}
	return out
}

// DecodeRaw reverses EncodeRaw: any code point in U+EE000..U+EE0FF is
// replaced by the single raw byte it encodes.
func DecodeRaw(s string) string {
	hasRaw := false
	for _, r := range s {
		if isRawPlane(r) {
			hasRaw = true
			break
		}
	}
	if !hasRaw {
		return s
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if isRawPlane(r) {
			out = append(out, byte(r-rawPlaneBase))
			continue
		}
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], r)
		out = append(out, buf[:n]...)
	}
	return string(out)
}

func isRawPlane(r rune) bool {
	return r >= rawPlaneBase && r <= rawPlaneBase+0xFF
}
