package render

import "github.com/ovity/goline/internal/attrbuf"

// defaultMatchBraces is the default brace-pair set (spec.md §6); each pair
// is (open, close) adjacent in the string, as repline's match_braces config
// string represents them.
const defaultMatchBraces = "()[]{}"

// BraceMatch scans text for the brace under/before pos and returns its
// offset and the offset of its match. ok reports whether a brace was found
// at all; matched reports whether it balanced. The offsets are meaningful
// only when ok (braceOffset) and matched (matchOffset) are true; otherwise
// they are 0.
func BraceMatch(text string, pos int, pairs string) (braceOffset, matchOffset int, ok, matched bool) {
	if pos < 0 || pos > len(text) {
		return 0, 0, false, false
	}
	// prefer the brace exactly at pos, else the one just before it.
	at := -1
	if pos < len(text) && isBrace(text[pos], pairs) {
		at = pos
	} else if pos > 0 && isBrace(text[pos-1], pairs) {
		at = pos - 1
	}
	if at < 0 {
		return 0, 0, false, false
	}
	idx := indexByte(pairs, text[at])
	isOpen := idx%2 == 0
	var open, close byte
	if isOpen {
		open, close = text[at], pairs[idx+1]
	} else {
		open, close = pairs[idx-1], text[at]
	}

	if isOpen {
		depth := 0
		for i := at; i < len(text); i++ {
			if text[i] == open {
				depth++
			} else if text[i] == close {
				depth--
				if depth == 0 {
					return at, i, true, true
				}
			}
		}
	} else {
		depth := 0
		for i := at; i >= 0; i-- {
			if text[i] == close {
				depth++
			} else if text[i] == open {
				depth--
				if depth == 0 {
					return at, i, true, true
				}
			}
		}
	}
	return at, 0, true, false
}

func isBrace(b byte, pairs string) bool { return indexByte(pairs, b) >= 0 }

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// ApplyBraceMatch overlays the rpl-bracematch/rpl-error styles onto ab for
// the brace pair found around pos, per spec.md §6's highlighter contract:
// "find the matching brace of the one under the cursor; mark both... or
// mark the unmatched one... if unbalanced."
func ApplyBraceMatch(ab *attrbuf.Buffer, text string, pos int, pairs string, matchAttr, errAttr attrbuf.Attr) {
	if pairs == "" {
		pairs = defaultMatchBraces
	}
	braceOff, matchOff, ok, matched := BraceMatch(text, pos, pairs)
	if !ok {
		return
	}
	if matched {
		ab.UpdateAt(braceOff, 1, matchAttr)
		ab.UpdateAt(matchOff, 1, matchAttr)
		return
	}
	ab.UpdateAt(braceOff, 1, errAttr)
}
