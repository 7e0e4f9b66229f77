package sbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertDeleteRoundTrip(t *testing.T) {
	b := NewFromString("hello")
	pos := b.InsertAt(5, " world")
	assert.Equal(t, 11, pos)
	assert.Equal(t, "hello world", b.String())

	b.DeleteFromTo(5, 11)
	assert.Equal(t, "hello", b.String())
}

func TestNextPrevRoundTrip(t *testing.T) {
	b := NewFromString("aéb") // a, e-acute, b
	pos := 0
	for pos < b.Len() {
		next, _ := b.Next(pos)
		require.Greater(t, next, pos)
		back, _ := b.Prev(next)
		assert.Equal(t, pos, back)
		pos = next
	}
}

func TestWideCharWidth(t *testing.T) {
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 0, RuneWidth(0x0301)) // combining acute accent
}

func TestQUTF8RawPlaneRoundTrip(t *testing.T) {
	raw := string([]byte{0x41, 0xff, 0x42, 0x80})
	enc := EncodeRaw(raw)
	dec := DecodeRaw(string(enc))
	assert.Equal(t, raw, dec)
}

func TestInvalidUTF8BufferRoundTrip(t *testing.T) {
	raw := string([]byte{'h', 'i', 0xfe, 0xfd, 'x'})
	b := NewFromString(raw)
	assert.Equal(t, raw, b.String())
}

func TestSwapChar(t *testing.T) {
	b := NewFromString("ab")
	newPos := b.SwapChar(1)
	assert.Equal(t, "ba", b.String())
	assert.Equal(t, 2, newPos)
}

func TestFindWordBoundaries(t *testing.T) {
	b := NewFromString("foo bar baz")
	assert.Equal(t, 7, b.FindWordEnd(4)) // "bar" spans [4,7)
	assert.Equal(t, 0, b.FindWordStart(3))
	assert.Equal(t, 3, b.FindWordEnd(0))
}

func TestFindLineStartEnd(t *testing.T) {
	b := NewFromString("foo\nbar\nbaz")
	assert.Equal(t, 4, b.FindLineStart(5))
	assert.Equal(t, 7, b.FindLineEnd(5))
}

func TestDeleteCharBeforeAndAt(t *testing.T) {
	b := NewFromString("abc")
	newPos := b.DeleteCharBefore(3)
	assert.Equal(t, 2, newPos)
	assert.Equal(t, "ab", b.String())

	b.DeleteCharAt(0)
	assert.Equal(t, "b", b.String())
}

func TestExpandEnvVars(t *testing.T) {
	b := NewFromString("hello $NAME and ${OTHER}!")
	changed := b.ExpandEnvVars(func(name string) (string, bool) {
		switch name {
		case "NAME":
			return "world", true
		case "OTHER":
			return "you", true
		}
		return "", false
	})
	assert.True(t, changed)
	assert.Equal(t, "hello world and you!", b.String())
}

func TestGeometryWrapping(t *testing.T) {
	b := NewFromString("abcdefgh")
	g := Geometry{Termw: 4, PromptW: 0, CPromptW: 0}
	rows := 0
	g.ForEachRow(b, func(info RowInfo) { rows++ })
	assert.Equal(t, 2, rows)
}

func TestGeometryNewlineForcesRow(t *testing.T) {
	b := NewFromString("foo\nbar")
	g := Geometry{Termw: 80, PromptW: 2, CPromptW: 0}
	rc := g.GetRCAtPos(b, b.Len())
	assert.Equal(t, 2, rc.RowCount)
}

func TestGetRCAtPosAndBack(t *testing.T) {
	b := NewFromString("hello world")
	g := Geometry{Termw: 80, PromptW: 0, CPromptW: 0}
	rc := g.GetRCAtPos(b, 6)
	assert.Equal(t, 0, rc.Row)
	assert.Equal(t, 6, rc.Col)
	pos := g.GetPosAtRC(b, rc.Row, rc.Col)
	assert.Equal(t, 6, pos)
}
