package termio

import (
	"bytes"
	"testing"

	"github.com/ovity/goline/internal/attrbuf"
	"github.com/stretchr/testify/assert"
)

func TestOutputBufferedModeDefersWrites(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf, 80, 24, func() (int, int) { return 80, 24 })
	o.SetBufferMode(true)
	o.Write("hello")
	assert.Empty(t, buf.String())
	o.SetBufferMode(false)
	assert.Equal(t, "hello", buf.String())
}

func TestOutputMoveSequences(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf, 80, 24, func() (int, int) { return 80, 24 })
	o.Up(2)
	o.Down(0) // no-op
	o.Right(3)
	assert.Equal(t, "\x1b[2A\x1b[3C", buf.String())
}

func TestOutputUpdateDimUsesLookup(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf, 80, 24, func() (int, int) { return 120, 40 })
	assert.Equal(t, 120, o.GetWidth())
	assert.Equal(t, 40, o.GetHeight())
}

func TestOutputSetAttrEmitsSGR(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf, 80, 24, func() (int, int) { return 80, 24 })
	attr := attrbuf.New(1, attrbuf.ColorDefault, attrbuf.TriOn, attrbuf.TriNone, attrbuf.TriNone, attrbuf.TriNone)
	o.SetAttr(attr)
	assert.Equal(t, "\x1b[0;38;5;1;1m", buf.String())
}

func TestOutputWriteFormattedNCoalescesRuns(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput(&buf, 80, 24, func() (int, int) { return 80, 24 })
	red := attrbuf.FromColor(2)
	attrs := []attrbuf.Attr{red, red, attrbuf.None()}
	o.WriteFormattedN("abc", attrs, 3)
	assert.Equal(t, "\x1b[0;38;5;2mab\x1b[0mc\x1b[0m", buf.String())
}
