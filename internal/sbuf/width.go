package sbuf

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// DisplayWidth returns the total terminal column width of a plain (non-qUTF-8)
// UTF-8 string, summing RuneWidth over its code points. Used for fixed prompt
// text, which never contains raw-plane escapes.
func DisplayWidth(s string) int {
	total := 0
	for _, r := range s {
		if r == utf8.RuneError {
			total++
			continue
		}
		total += RuneWidth(r)
	}
	return total
}

// RuneWidth returns the terminal column width of r: 0 for combining marks,
// variation selectors and the zero-width joiner, 2 for East-Asian
// wide/fullwidth code points and common emoji, 0 for C0 control characters
// and DEL, 1 otherwise. Ported from the
// teacher's internal/interactive/input.go runeDisplayWidth, which this
// package now backs the string buffer's row/column geometry with instead of
// the terminal-input editor.
func RuneWidth(r rune) int {
	if isCombining(r) || isVariationSelector(r) || r == 0x200D {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	}
	if isEmoji(r) {
		return 2
	}
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return 1
}

func isCombining(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r)
}

func isVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}

func isEmoji(r rune) bool {
	return inRanges(r, emojiRanges)
}

type runeRange struct{ lo, hi rune }

func inRanges(r rune, ranges []runeRange) bool {
	for _, rg := range ranges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

var emojiRanges = []runeRange{
	{0x1F300, 0x1F5FF},
	{0x1F600, 0x1F64F},
	{0x1F680, 0x1F6FF},
	{0x1F700, 0x1F77F},
	{0x1F780, 0x1F7FF},
	{0x1F800, 0x1F8FF},
	{0x1F900, 0x1F9FF},
	{0x1FA00, 0x1FAFF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
	{0x1F1E6, 0x1F1FF}, // regional indicators (flags)
}
