package attrbuf

// Buffer is a parallel array of Attr, kept aligned to the bytes of a
// companion sbuf.Buffer. A nil *Buffer behaves like an empty one everywhere
// (mirrors repline's "ab can be NULL" contract on every attrbuf_* call).
type Buffer struct {
	attrs []Attr
}

// NewBuffer returns an empty attribute buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Len returns the number of attributes stored (0 for a nil receiver).
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.attrs)
}

// Clear empties the buffer in place.
func (b *Buffer) Clear() {
	if b == nil {
		return
	}
	b.attrs = b.attrs[:0]
}

func (b *Buffer) ensure(n int) {
	for len(b.attrs) < n {
		b.attrs = append(b.attrs, None())
	}
}

// SetAt overwrites the span [pos, pos+n) with attr, growing as needed.
func (b *Buffer) SetAt(pos, n int, attr Attr) {
	if b == nil || n <= 0 {
		return
	}
	b.ensure(pos + n)
	for i := pos; i < pos+n; i++ {
		b.attrs[i] = attr
	}
}

// UpdateAt merges attr's non-none fields onto the existing span
// [pos, pos+n), growing as needed.
func (b *Buffer) UpdateAt(pos, n int, attr Attr) {
	if b == nil || n <= 0 {
		return
	}
	b.ensure(pos + n)
	for i := pos; i < pos+n; i++ {
		b.attrs[i] = b.attrs[i].UpdateWith(attr)
	}
}

// InsertAt shifts the tail right by n and fills the opened span with attr.
func (b *Buffer) InsertAt(pos, n int, attr Attr) {
	if b == nil || n <= 0 {
		return
	}
	if pos > len(b.attrs) {
		pos = len(b.attrs)
	}
	grown := make([]Attr, 0, len(b.attrs)+n)
	grown = append(grown, b.attrs[:pos]...)
	for i := 0; i < n; i++ {
		grown = append(grown, attr)
	}
	grown = append(grown, b.attrs[pos:]...)
	b.attrs = grown
}

// DeleteAt shifts the tail left, removing the span [pos, pos+n).
func (b *Buffer) DeleteAt(pos, n int) {
	if b == nil || n <= 0 || pos >= len(b.attrs) {
		return
	}
	end := pos + n
	if end > len(b.attrs) {
		end = len(b.attrs)
	}
	b.attrs = append(b.attrs[:pos], b.attrs[end:]...)
}

// AttrAt returns the attribute at pos, or None if out of range.
func (b *Buffer) AttrAt(pos int) Attr {
	if b == nil || pos < 0 || pos >= len(b.attrs) {
		return None()
	}
	return b.attrs[pos]
}

// Attrs returns a slice of exactly expectedLen attributes: the stored
// contents, zero-padded on the right if shorter, truncated if longer.
func (b *Buffer) Attrs(expectedLen int) []Attr {
	out := make([]Attr, expectedLen)
	if b == nil {
		return out
	}
	n := len(b.attrs)
	if n > expectedLen {
		n = expectedLen
	}
	copy(out, b.attrs[:n])
	return out
}
