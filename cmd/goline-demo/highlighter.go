package main

import (
	"github.com/ovity/goline/internal/attrbuf"
	"github.com/ovity/goline/internal/highlight"
)

// keywordHighlighter colors a fixed keyword list, mirroring
// original_source/example.c's highlighter (which marks "fun"/"int" style
// tokens) with Go's reserved words instead.
type keywordHighlighter struct {
	words map[string]bool
}

func newKeywordHighlighter(words ...string) *keywordHighlighter {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &keywordHighlighter{words: m}
}

func (h *keywordHighlighter) Highlight(input string, sink highlight.Sink) {
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if h.words[input[start:end]] {
			sink.Span(start, end-start, "keyword")
		}
		start = -1
	}
	for i, r := range input {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(input))
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func styleAttr(style string) attrbuf.Attr {
	switch style {
	case "keyword":
		return attrbuf.New(attrbuf.Color(4), attrbuf.ColorDefault, attrbuf.TriOn, attrbuf.TriNone, attrbuf.TriNone, attrbuf.TriNone)
	case attrbuf.StyleBraceMatch:
		return attrbuf.New(attrbuf.Color(2), attrbuf.ColorDefault, attrbuf.TriNone, attrbuf.TriNone, attrbuf.TriOn, attrbuf.TriNone)
	case attrbuf.StyleError:
		return attrbuf.New(attrbuf.Color(1), attrbuf.ColorDefault, attrbuf.TriNone, attrbuf.TriNone, attrbuf.TriNone, attrbuf.TriOn)
	default:
		return attrbuf.Attr{}
	}
}
