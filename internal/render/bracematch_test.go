package render

import (
	"testing"

	"github.com/ovity/goline/internal/attrbuf"
	"github.com/stretchr/testify/assert"
)

func TestBraceMatchBalancedPair(t *testing.T) {
	braceOff, matchOff, ok, matched := BraceMatch("foo(bar)baz", 3, defaultMatchBraces)
	assert.True(t, ok)
	assert.True(t, matched)
	assert.Equal(t, 3, braceOff)
	assert.Equal(t, 7, matchOff)
}

func TestBraceMatchFromClosingSide(t *testing.T) {
	braceOff, matchOff, ok, matched := BraceMatch("foo(bar)baz", 8, defaultMatchBraces)
	assert.True(t, ok)
	assert.True(t, matched)
	assert.Equal(t, 7, braceOff)
	assert.Equal(t, 3, matchOff)
}

func TestBraceMatchUnbalanced(t *testing.T) {
	_, _, ok, matched := BraceMatch("foo(bar", 3, defaultMatchBraces)
	assert.True(t, ok)
	assert.False(t, matched)
}

func TestBraceMatchNoBraceAtCursor(t *testing.T) {
	_, _, ok, _ := BraceMatch("foo bar", 2, defaultMatchBraces)
	assert.False(t, ok)
}

func TestApplyBraceMatchMarksBothSides(t *testing.T) {
	ab := attrbuf.NewBuffer()
	matchAttr := attrbuf.FromColor(5)
	errAttr := attrbuf.FromColor(9)
	ApplyBraceMatch(ab, "(x)", 0, "", matchAttr, errAttr)
	assert.Equal(t, matchAttr, ab.AttrAt(0))
	assert.Equal(t, matchAttr, ab.AttrAt(2))
}
