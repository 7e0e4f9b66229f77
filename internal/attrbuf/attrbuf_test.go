package attrbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackedRoundTrip(t *testing.T) {
	a := New(101, 202, TriOn, TriOff, TriNone, TriOn)
	assert.Equal(t, Color(101), a.Fg())
	assert.Equal(t, Color(202), a.Bg())
	assert.Equal(t, TriOn, a.Bold())
	assert.Equal(t, TriOff, a.Italic())
	assert.Equal(t, TriNone, a.Underline())
	assert.Equal(t, TriOn, a.Reverse())
}

func TestUpdateWithMergesNonNoneOnly(t *testing.T) {
	base := FromColor(5).WithBold(TriOn)
	overlay := New(ColorDefault, ColorDefault, TriNone, TriNone, TriNone, TriOff)
	merged := base.UpdateWith(overlay)
	assert.Equal(t, Color(5), merged.Fg())
	assert.Equal(t, TriOn, merged.Bold())
	assert.Equal(t, TriOff, merged.Reverse())
}

func TestBufferSetUpdateInsertDelete(t *testing.T) {
	b := NewBuffer()
	b.SetAt(0, 5, FromColor(1))
	assert.Equal(t, 5, b.Len())

	b.UpdateAt(2, 2, New(ColorDefault, ColorDefault, TriOn, TriNone, TriNone, TriNone))
	assert.Equal(t, TriOn, b.AttrAt(2).Bold())
	assert.Equal(t, Color(1), b.AttrAt(2).Fg())

	b.InsertAt(2, 2, FromColor(9))
	assert.Equal(t, 7, b.Len())
	assert.Equal(t, Color(9), b.AttrAt(2).Fg())

	b.DeleteAt(0, 2)
	assert.Equal(t, 5, b.Len())
}

func TestAttrsZeroPads(t *testing.T) {
	b := NewBuffer()
	b.SetAt(0, 2, FromColor(3))
	out := b.Attrs(5)
	assert.Len(t, out, 5)
	assert.Equal(t, Color(3), out[0].Fg())
	assert.True(t, out[4].IsNone())
}

func TestNilBufferIsEmpty(t *testing.T) {
	var b *Buffer
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.AttrAt(0).IsNone())
	out := b.Attrs(3)
	assert.Len(t, out, 3)
}
