// Package sbuf implements the editor's in-memory text buffer: a
// byte-addressable UTF-8 string with insert/delete, code-point stepping,
// qUTF-8 raw-byte round-trip, and row/column geometry under a terminal
// width. It is the Go counterpart of jorbakk/repline's stringbuf.c/.h,
// adapted to Go's garbage-collected slices (growth never fails).
package sbuf

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Buffer is a mutable byte sequence addressed by byte offset, always kept
// on UTF-8 code-point boundaries at its public seams.
type Buffer struct {
	b []byte
}

// New returns an empty buffer.
func New() *Buffer { return &Buffer{} }

// NewFromString returns a buffer seeded with s.
func NewFromString(s string) *Buffer {
	b := &Buffer{}
	b.Replace(s)
	return b
}

// Len returns the byte length of the buffer.
func (s *Buffer) Len() int { return len(s.b) }

// String returns the buffer contents, decoding any qUTF-8 raw-plane escapes
// back to their original raw bytes.
func (s *Buffer) String() string { return DecodeRaw(string(s.b)) }

// RawString returns the buffer's internal qUTF-8 representation, unchanged.
func (s *Buffer) RawString() string { return string(s.b) }

// ByteAt returns the raw byte at pos (not a decoded rune); callers that need
// code points should use Next/Prev.
func (s *Buffer) ByteAt(pos int) byte { return s.b[pos] }

// Clear empties the buffer.
func (s *Buffer) Clear() { s.b = s.b[:0] }

// Replace discards the current contents and sets the buffer to s, encoding
// any invalid UTF-8 via the qUTF-8 raw plane.
func (s *Buffer) Replace(str string) {
	s.b = append(s.b[:0], EncodeRaw(str)...)
}

// SplitAt splits the buffer at pos: the receiver keeps [0, pos) and the
// returned Buffer holds [pos, len).
func (s *Buffer) SplitAt(pos int) *Buffer {
	tail := append([]byte(nil), s.b[pos:]...)
	s.b = s.b[:pos]
	return &Buffer{b: tail}
}

// InsertAt inserts the qUTF-8 encoding of str at pos (clamped to the
// buffer) and returns the new cursor position: pos plus the encoded length,
// which equals len(str) when str is valid UTF-8.
func (s *Buffer) InsertAt(pos int, str string) int {
	enc := EncodeRaw(str)
	return s.insertRawAt(pos, enc)
}

func (s *Buffer) insertRawAt(pos int, enc []byte) int {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.b) {
		pos = len(s.b)
	}
	grown := make([]byte, 0, len(s.b)+len(enc))
	grown = append(grown, s.b[:pos]...)
	grown = append(grown, enc...)
	grown = append(grown, s.b[pos:]...)
	s.b = grown
	return pos + len(enc)
}

// InsertCharAt inserts a single ASCII byte at pos.
func (s *Buffer) InsertCharAt(pos int, c byte) int {
	return s.insertRawAt(pos, []byte{c})
}

// InsertUnicodeAt inserts a single code point (which may be an invalid raw
// byte smuggled through the qUTF-8 raw plane) at pos.
func (s *Buffer) InsertUnicodeAt(pos int, r rune) int {
	var buf [4]byte
	n := utf8.EncodeRune(buf[:], r)
	return s.insertRawAt(pos, buf[:n])
}

// AppendN appends n bytes of s.
func (s *Buffer) AppendN(str string, n int) int {
	if n > len(str) {
		n = len(str)
	}
	return s.InsertAt(len(s.b), str[:n])
}

// Append appends str to the end of the buffer.
func (s *Buffer) Append(str string) int { return s.InsertAt(len(s.b), str) }

// DeleteAt deletes n bytes starting at pos.
func (s *Buffer) DeleteAt(pos, n int) {
	if pos < 0 || n <= 0 {
		return
	}
	end := pos + n
	if end > len(s.b) {
		end = len(s.b)
	}
	if pos >= end {
		return
	}
	s.b = append(s.b[:pos], s.b[end:]...)
}

// DeleteFromTo deletes the half-open byte range [a, b).
func (s *Buffer) DeleteFromTo(a, b int) { s.DeleteAt(a, b-a) }

// DeleteFrom deletes from pos to the end of the buffer.
func (s *Buffer) DeleteFrom(pos int) { s.DeleteAt(pos, len(s.b)-pos) }

// Next steps forward one code point from pos, returning the new position
// and the point's display width (0 combining/zero-width, 1 normal, 2 wide).
// If pos is already at the end it returns (pos, 0).
func (s *Buffer) Next(pos int) (newPos int, width int) {
	if pos >= len(s.b) {
		return pos, 0
	}
	r, size := utf8.DecodeRune(s.b[pos:])
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	return pos + size, RuneWidth(r)
}

// Prev steps backward one code point ending at pos, returning the new
// (earlier) position and the point's display width.
func (s *Buffer) Prev(pos int) (newPos int, width int) {
	if pos <= 0 {
		return 0, 0
	}
	r, size := utf8.DecodeLastRune(s.b[:pos])
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	start := pos - size
	return start, RuneWidth(r)
}

// DeleteCharBefore deletes the code point ending at pos (backspace) and
// returns the new cursor position.
func (s *Buffer) DeleteCharBefore(pos int) int {
	start, _ := s.Prev(pos)
	s.DeleteAt(start, pos-start)
	return start
}

// DeleteCharAt deletes the code point starting at pos (delete-forward).
func (s *Buffer) DeleteCharAt(pos int) {
	end, _ := s.Next(pos)
	s.DeleteAt(pos, end-pos)
}

// SwapChar swaps the code point ending at pos with the one starting at pos
// (Ctrl-T transpose) and returns the new cursor position.
func (s *Buffer) SwapChar(pos int) int {
	before, _ := s.Prev(pos)
	after, _ := s.Next(pos)
	if before >= pos || pos >= after {
		return pos
	}
	first := append([]byte(nil), s.b[before:pos]...)
	second := append([]byte(nil), s.b[pos:after]...)
	out := append([]byte(nil), second...)
	out = append(out, first...)
	copy(s.b[before:after], out)
	return after
}

// FindLineStart returns the byte offset of the start of the line pos is on
// (the character after the previous '\n', or 0).
func (s *Buffer) FindLineStart(pos int) int {
	if pos > len(s.b) {
		pos = len(s.b)
	}
	i := pos
	for i > 0 && s.b[i-1] != '\n' {
		i--
	}
	return i
}

// FindLineEnd returns the byte offset of the end of the line pos is on (the
// position of the next '\n', or len(buffer)).
func (s *Buffer) FindLineEnd(pos int) int {
	i := pos
	for i < len(s.b) && s.b[i] != '\n' {
		i++
	}
	return i
}

// isWordByte reports whether r belongs to an identifier/letter run.
func isWordByte(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// FindWordStart returns the byte offset of the start of the identifier word
// ending at or containing pos.
func (s *Buffer) FindWordStart(pos int) int {
	i := pos
	for i > 0 {
		prev, w := s.Prev(i)
		_ = w
		r, _ := utf8.DecodeRune(s.b[prev:i])
		if !isWordByte(r) {
			break
		}
		i = prev
	}
	return i
}

// FindWordEnd returns the byte offset of the end of the identifier word
// starting at or containing pos.
func (s *Buffer) FindWordEnd(pos int) int {
	i := pos
	for i < len(s.b) {
		r, size := utf8.DecodeRune(s.b[i:])
		if !isWordByte(r) {
			break
		}
		i += size
	}
	return i
}

// FindWsWordStart returns the byte offset of the start of the
// whitespace-delimited token ending at or containing pos.
func (s *Buffer) FindWsWordStart(pos int) int {
	i := pos
	for i > 0 {
		prev, _ := s.Prev(i)
		r, _ := utf8.DecodeRune(s.b[prev:i])
		if unicode.IsSpace(r) {
			break
		}
		i = prev
	}
	return i
}

// FindWsWordEnd returns the byte offset of the end of the
// whitespace-delimited token starting at or containing pos.
func (s *Buffer) FindWsWordEnd(pos int) int {
	i := pos
	for i < len(s.b) {
		r, size := utf8.DecodeRune(s.b[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// ExpandEnvVars expands $NAME and ${NAME} references against the given
// lookup function in place. It is a supplement to the distilled core,
// carried over from repline's sbuf_expand_envars.
func (s *Buffer) ExpandEnvVars(lookup func(string) (string, bool)) bool {
	str := s.String()
	var out strings.Builder
	changed := false
	for i := 0; i < len(str); {
		if str[i] == '$' && i+1 < len(str) {
			name, size, ok := parseEnvName(str[i+1:])
			if ok {
				if val, found := lookup(name); found {
					out.WriteString(val)
					i += 1 + size
					changed = true
					continue
				}
			}
		}
		out.WriteByte(str[i])
		i++
	}
	if changed {
		s.Replace(out.String())
	}
	return changed
}

func parseEnvName(s string) (name string, consumed int, ok bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0, false
		}
		return s[1:end], end + 1, true
	}
	i := 0
	for i < len(s) && (isWordByte(rune(s[i])) && s[i] != ' ') {
		i++
	}
	if i == 0 {
		return "", 0, false
	}
	return s[:i], i, true
}
