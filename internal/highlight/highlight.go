// Package highlight defines the highlighter callback contract (spec.md
// §6): the syntax-coloring logic itself is out of scope, but the sink it
// writes through and the brace-match overlay the renderer applies on top
// of it are in scope.
package highlight

import "github.com/ovity/goline/internal/attrbuf"

// Sink receives highlight spans as (offset, length, style name) triples,
// mapped onto attribute-buffer updates by the caller.
type Sink interface {
	Span(offset, length int, style string)
}

// Highlighter colors a full input string by calling back into a Sink.
// Implementations are provided by the embedding application; the core
// only depends on this interface.
type Highlighter interface {
	Highlight(input string, sink Sink)
}

// None is a Highlighter that emits no spans.
var None Highlighter = noneHighlighter{}

type noneHighlighter struct{}

func (noneHighlighter) Highlight(string, Sink) {}

// ApplyBuffer adapts a Sink onto an attrbuf.Buffer, resolving style names
// to attributes via styleAttr. Unrecognized styles are ignored.
func ApplyBuffer(buf *attrbuf.Buffer, styleAttr func(style string) attrbuf.Attr) Sink {
	return &bufferSink{buf: buf, styleAttr: styleAttr}
}

type bufferSink struct {
	buf       *attrbuf.Buffer
	styleAttr func(style string) attrbuf.Attr
}

func (s *bufferSink) Span(offset, length int, style string) {
	if length <= 0 || s.styleAttr == nil {
		return
	}
	attr := s.styleAttr(style)
	if attr.IsNone() {
		return
	}
	s.buf.UpdateAt(offset, length, attr)
}
