package editor

import (
	"strconv"
	"strings"

	"github.com/ovity/goline/internal/completion"
	"github.com/ovity/goline/internal/keys"
	"github.com/ovity/goline/internal/ui"
)

// runCompletionMenu drives the completion menu (C9) once generateCompletions
// has found 2+ candidates, ported from editline_completion.c's
// edit_completion_menu.
func (e *Editor) runCompletionMenu(moreAvailable bool) {
	count := e.store.Len()
	selected := -1
	if e.cfg.CompletionPreview {
		selected = 0
	}
	previewApplied := false

	for {
		displayed := e.renderMenu(selected, count, moreAvailable)

		if e.cfg.CompletionPreview && selected >= 0 && selected < displayed {
			if previewApplied {
				e.undoRestore()
			}
			previewApplied = e.applyCompletion(selected)
		} else {
			e.refresh()
		}

		ev, ok, err := e.keys.ReadBlocking()
		if err != nil || !ok {
			e.store.Reset(0, 0, e.cfg.MaxCompletionsToTry)
			e.extra = ""
			return
		}

		if ev.Mods.Has(keys.WithAlt) && ev.Rune >= '1' && ev.Rune <= '9' {
			idx := int(ev.Rune - '1')
			if idx < count {
				selected = idx
				ev = keys.Event{Code: keys.CodeEnter}
			}
		}

		switch {
		case ev.Code == keys.CodeDown, ev.Code == keys.CodeTab:
			selected++
			if selected >= displayed {
				selected = 0
			}
			e.hint = ""
			continue
		case ev.Code == keys.CodeUp, ev.Code == keys.CodeShiftTab:
			selected--
			if selected < 0 {
				selected = displayed - 1
			}
			continue
		case ev.Code == keys.CodeF1:
			continue
		case ev.Code == keys.CodeEscape:
			if previewApplied {
				e.undoRestore()
			}
			e.store.Reset(0, 0, e.cfg.MaxCompletionsToTry)
			e.extra = ""
			e.refresh()
			return
		case selected >= 0 && (ev.Code == keys.CodeEnter || ev.Code == keys.CodeRight || ev.Code == keys.CodeEnd):
			if previewApplied {
				e.undoRestore()
			}
			e.applyCompletion(selected)
			e.extra = ""
			e.store.Reset(0, 0, e.cfg.MaxCompletionsToTry)
			return
		case !e.cfg.CompletionPreview && !isMenuControlKey(ev):
			e.applyCompletion(selected)
			e.extra = ""
			e.store.Reset(0, 0, e.cfg.MaxCompletionsToTry)
			e.keys.Pushback(ev)
			return
		case (ev.Code == keys.CodePageDown || ev.Rune == '\n') && count > 9:
			displayed = e.expandAllCompletions(count, moreAvailable)
			count = displayed
			continue
		default:
			if previewApplied {
				e.undoRestore()
			}
			e.extra = ""
			e.store.Reset(0, 0, e.cfg.MaxCompletionsToTry)
			e.refresh()
			e.keys.Pushback(ev)
			return
		}
	}
}

func isMenuControlKey(ev keys.Event) bool {
	switch ev.Code {
	case keys.CodeDown, keys.CodeUp, keys.CodeTab, keys.CodeShiftTab, keys.CodeF1,
		keys.CodeEscape, keys.CodeEnter, keys.CodeRight, keys.CodeEnd,
		keys.CodePageDown, keys.CodeResize, keys.CodeStop:
		return true
	}
	return ev.Rune == '\n'
}

// renderMenu lays out up to 9 candidates as a 3-column, 2-column, or
// numbered-list block depending on terminal width and candidate widths
// (spec.md §4.9), writes it to e.extra, and returns how many are displayed.
func (e *Editor) renderMenu(selected, count int, moreAvailable bool) int {
	elems := e.store.Elems()
	maxWidth := func(n int) int {
		w := 0
		for i := 0; i < n && i < len(elems); i++ {
			if l := len(elems[i].DisplayText()); l > w {
				w = l
			}
		}
		return w
	}

	tw := e.out.GetWidth() - 1
	var sb strings.Builder
	displayed := count
	if count > 9 {
		displayed = 9
	}

	colWidth3 := 3 + maxWidth(9)
	colWidth2 := 3 + maxWidth(8)

	switch {
	case count > 3 && colWidth3*3+2*2 < tw:
		percol := 3
		if count < 9 {
			displayed = count
		} else {
			displayed = 9
		}
		for row := 0; row < percol; row++ {
			if row > 0 {
				sb.WriteString("\n")
			}
			writeItem(&sb, elems, row, colWidth3, selected)
			sb.WriteString("  ")
			writeItem(&sb, elems, percol+row, colWidth3, selected)
			sb.WriteString("  ")
			writeItem(&sb, elems, 2*percol+row, colWidth3, selected)
		}
	case count > 4 && colWidth2*2+2 < tw:
		if count > 8 {
			displayed = 8
		} else {
			displayed = count
		}
		percol := 3
		if displayed > 6 {
			percol = 4
		}
		for row := 0; row < percol; row++ {
			if row > 0 {
				sb.WriteString("\n")
			}
			writeItem(&sb, elems, row, colWidth2, selected)
			sb.WriteString("  ")
			writeItem(&sb, elems, percol+row, colWidth2, selected)
		}
	default:
		if count > 9 {
			displayed = 9
		} else {
			displayed = count
		}
		for i := 0; i < displayed; i++ {
			if i > 0 {
				sb.WriteString("\n")
			}
			marker := "  "
			if i == selected {
				marker = "→ "
			}
			sb.WriteString(marker)
			sb.WriteString(strconv.Itoa(i + 1))
			sb.WriteString(" ")
			sb.WriteString(elems[i].DisplayText())
			if elems[i].Help != "" {
				sb.WriteString("  ")
				sb.WriteString(elems[i].Help)
			}
		}
	}

	if count > displayed {
		if moreAvailable {
			sb.WriteString("\n(press page-down to see all further completions)")
		} else {
			sb.WriteString("\n(press page-down to see all " + strconv.Itoa(count) + " completions)")
		}
	}
	e.extra = sb.String()
	return displayed
}

// writeItem writes one candidate padded to width, marked with an arrow if
// it is the current selection. Out-of-range idx writes blank padding so
// columns stay aligned.
func writeItem(sb *strings.Builder, elems []completion.Elem, idx, width, selected int) {
	if idx >= len(elems) {
		sb.WriteString(strings.Repeat(" ", width))
		return
	}
	marker := "  "
	if idx == selected {
		marker = "→ "
	}
	const markerCols = 2 // both markers occupy two terminal columns
	text := ui.Ellipsis(elems[idx].DisplayText(), width-markerCols)
	sb.WriteString(marker)
	sb.WriteString(text)
	if pad := width - markerCols - len(text); pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
}

// expandAllCompletions regenerates up to MaxCompletionsShown candidates and
// dumps them as a scrollable list above the prompt (spec.md §4.9 "PageDown/LF
// expand").
func (e *Editor) expandAllCompletions(count int, moreAvailable bool) int {
	if moreAvailable && e.generator != nil {
		e.store.Reset(e.pos, e.pos, e.cfg.MaxCompletionsShown)
		e.generator(e.input, e.pos, e.store)
		count = e.store.Len()
	}
	var sb strings.Builder
	for i, el := range e.store.Elems() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(el.DisplayText())
	}
	if count >= e.cfg.MaxCompletionsShown {
		sb.WriteString("\n... and more.")
	} else {
		sb.WriteString("\n(" + strconv.Itoa(count) + " possible completions)")
	}
	e.extra = sb.String()
	e.refresh()
	return count
}
