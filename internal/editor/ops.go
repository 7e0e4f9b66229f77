package editor

import (
	"github.com/ovity/goline/internal/completion/filename"
	"github.com/ovity/goline/internal/render"
	"github.com/ovity/goline/internal/sbuf"
	"github.com/ovity/goline/internal/undo"
)

func (e *Editor) geometry() sbuf.Geometry {
	p := render.Prompt{Text: e.cfg.PromptText, Marker: e.cfg.PromptMarker, Continuation: e.cfg.ContinuationMarker, TwoLine: e.cfg.TwoLinePrompt}
	return sbuf.Geometry{Termw: e.out.GetWidth(), PromptW: p.Width(), CPromptW: p.ContinuationWidth()}
}

// --- cursor movement (ported from editline.c's edit_cursor_*) ---

func (e *Editor) cursorLeft() {
	prev, _ := e.input.Prev(e.pos)
	if prev == e.pos {
		return
	}
	e.pos = prev
	e.refresh()
}

func (e *Editor) cursorRight() {
	next, _ := e.input.Next(e.pos)
	if next == e.pos {
		return
	}
	e.pos = next
	e.refresh()
}

func (e *Editor) cursorLineStart() {
	e.pos = e.input.FindLineStart(e.pos)
	e.refresh()
}

func (e *Editor) cursorLineEnd() {
	e.pos = e.input.FindLineEnd(e.pos)
	e.refresh()
}

func (e *Editor) cursorNextWord() {
	e.pos = e.input.FindWordEnd(e.pos)
	e.refresh()
}

func (e *Editor) cursorPrevWord() {
	e.pos = e.input.FindWordStart(e.pos)
	e.refresh()
}

func (e *Editor) cursorToStart() {
	e.pos = 0
	e.refresh()
}

func (e *Editor) cursorToEnd() {
	e.pos = e.input.Len()
	e.refresh()
}

func (e *Editor) cursorRowUp() {
	rc := e.geometry().GetRCAtPos(e.input, e.pos)
	if rc.Row == 0 {
		e.historyAt(1)
		return
	}
	e.pos = e.geometry().GetPosAtRC(e.input, rc.Row-1, rc.Col)
	e.refresh()
}

func (e *Editor) cursorRowDown() {
	rc := e.geometry().GetRCAtPos(e.input, e.pos)
	if rc.Row+1 >= rc.RowCount {
		e.historyAt(-1)
		return
	}
	e.pos = e.geometry().GetPosAtRC(e.input, rc.Row+1, rc.Col)
	e.refresh()
}

func (e *Editor) cursorMatchBrace() {
	_, matchOff, ok, matched := render.BraceMatch(e.input.String(), e.pos, e.cfg.MatchBraces)
	if !ok || !matched {
		return
	}
	e.pos = matchOff
	e.refresh()
}

// --- deletion ---

func (e *Editor) backspace() {
	if e.pos <= 0 {
		return
	}
	e.startModify()
	e.pos = e.input.DeleteCharBefore(e.pos)
	e.refresh()
}

func (e *Editor) deleteChar() {
	if e.pos >= e.input.Len() {
		return
	}
	e.startModify()
	e.input.DeleteCharAt(e.pos)
	e.refresh()
}

func (e *Editor) deleteAll() {
	if e.input.Len() > 0 {
		e.startModify()
		e.input.Clear()
	}
	e.hint = ""
	e.pos = 0
	e.historyIdx, e.historyWidx, e.historyWpos = 0, 0, 0
	e.refresh()
}

func (e *Editor) deleteToEndOfLine() {
	start := e.input.FindLineStart(e.pos)
	end := e.input.FindLineEnd(e.pos)
	e.startModify()
	e.input.DeleteFromTo(e.pos, end)
	e.refresh()
	_ = start
}

func (e *Editor) deleteToStartOfLine() {
	start := e.input.FindLineStart(e.pos)
	e.startModify()
	e.input.DeleteFromTo(start, e.pos)
	e.pos = start
	e.refresh()
}

func (e *Editor) deleteToStartOfWord() {
	start := e.input.FindWordStart(e.pos)
	e.startModify()
	e.input.DeleteFromTo(start, e.pos)
	e.pos = start
	e.refresh()
}

func (e *Editor) deleteToEndOfWord() {
	end := e.input.FindWordEnd(e.pos)
	e.startModify()
	e.input.DeleteFromTo(e.pos, end)
	e.refresh()
}

func (e *Editor) deleteToStartOfWsWord() {
	start := e.input.FindWsWordStart(e.pos)
	e.startModify()
	e.input.DeleteFromTo(start, e.pos)
	e.pos = start
	e.refresh()
}

func (e *Editor) deleteToEndOfWsWord() {
	end := e.input.FindWsWordEnd(e.pos)
	e.startModify()
	e.input.DeleteFromTo(e.pos, end)
	e.refresh()
}

func (e *Editor) swapChar() {
	if e.pos <= 0 || e.pos == e.input.Len() {
		return
	}
	e.startModify()
	e.pos = e.input.SwapChar(e.pos)
	e.refresh()
}

// --- insertion ---

func (e *Editor) multilineEOL() {
	if e.pos <= 0 || e.input.ByteAt(e.pos-1) != e.cfg.MultilineEOL {
		return
	}
	e.startModify()
	e.input.DeleteAt(e.pos-1, 1)
	e.input.InsertCharAt(e.pos-1, '\n')
	e.refresh()
}

func (e *Editor) insertUnicode(r rune) {
	e.startModify()
	e.pos = e.input.InsertUnicodeAt(e.pos, r)
	e.refreshHint()
}

func (e *Editor) insertChar(c byte) {
	e.startModify()
	e.pos = e.input.InsertCharAt(e.pos, c)
	e.autoBrace(c)
	if c == '\n' && !e.cfg.NoMultilineIndent {
		e.autoIndent()
	}
	e.refreshHint()
}

func (e *Editor) autoBrace(c byte) {
	if !e.cfg.BraceInsertionEnable {
		return
	}
	pairs := e.cfg.AutoBraces
	for i := 0; i+1 < len(pairs); i += 2 {
		open, close := pairs[i], pairs[i+1]
		if open == c {
			e.input.InsertCharAt(e.pos, close)
			_, _, _, matched := render.BraceMatch(e.input.String(), e.pos-1, e.cfg.MatchBraces)
			if !matched {
				e.input.DeleteCharAt(e.pos)
			}
			return
		}
		if close == c {
			if e.pos < e.input.Len() && e.input.ByteAt(e.pos) == c {
				e.input.DeleteCharAt(e.pos)
			}
			return
		}
	}
}

// autoIndent mirrors repline's editor_auto_indent for "{" / "}" pairs: when
// a newline is typed right after '{' and right before '}', it splits into
// an indented blank line between them.
func (e *Editor) autoIndent() {
	if e.pos <= 0 || e.input.ByteAt(e.pos-1) != '\n' {
		return
	}
	if e.pos-2 < 0 || e.input.ByteAt(e.pos-2) != '{' {
		return
	}
	if e.pos >= e.input.Len() || e.input.ByteAt(e.pos) != '}' {
		return
	}
	e.pos = e.input.InsertAt(e.pos, "  ")
	e.input.InsertCharAt(e.pos, '\n')
}

// --- hints ---

func (e *Editor) moveHintToInput() {
	if e.hint == "" {
		return
	}
	e.input.Append(e.hint[:1])
	e.hint = e.hint[1:]
	e.pos++
	e.modified = true
	e.refresh()
}

func (e *Editor) moveWordHintToInput() {
	if e.hint == "" {
		return
	}
	hb := sbuf.NewFromString(e.hint)
	start := hb.FindWordStart(0)
	end := hb.FindWordEnd(start)
	if end > len(e.hint) {
		return
	}
	e.input.Append(e.hint[:end])
	e.hint = e.hint[end:]
	e.pos += end
	e.modified = true
	e.refresh()
}

func (e *Editor) moveLineHintToInput() {
	if e.hint == "" {
		return
	}
	e.input.Append(e.hint)
	e.hint = ""
	e.pos = e.input.Len()
	e.modified = true
	e.refresh()
}

func (e *Editor) refreshHint() {
	if e.cfg.HintDelayMs > 0 {
		e.refresh()
	}
	if !e.cfg.HintEnable {
		return
	}
	if e.store.Len() > 0 {
		elem := e.store.Elems()[0]
		e.hint = elem.Replacement
		e.hintHelp = elem.Help
	}
	if e.cfg.HintDelayMs <= 0 {
		e.refresh()
	}
}

func (e *Editor) refreshHistoryHint() {
	if e.modified {
		e.historyIdx, e.historyWidx, e.historyWpos = 0, 0, 0
	}
	if e.modified && e.input.Len() == 0 {
		e.hint = ""
		e.refresh()
		return
	}
	if e.history == nil {
		e.refresh()
		return
	}
	text := e.input.String()
	entry, found := e.history.GetWithPrefix(1, text)
	if found {
		e.hint = entry[len(text):]
		if e.historyIdx == 0 {
			e.historyIdx++
		}
	} else {
		e.hint = ""
		e.historyIdx, e.historyWidx, e.historyWpos = 0, 0, 0
	}
	e.refresh()
}

// --- history navigation (ported from editline_history.c) ---

func (e *Editor) historyAt(ofs int) {
	if e.history == nil {
		return
	}
	if ofs < 0 && e.historyIdx+ofs < 0 {
		return
	}
	text := e.input.String()
	if ofs > 0 && e.historyIdx+ofs > e.history.CountWithPrefix(text) {
		return
	}
	entry, found := e.history.GetWithPrefix(e.historyIdx+ofs, text)
	if !found {
		e.out.Beep()
		e.hint = ""
	} else {
		e.hint = entry[len(text):]
	}
	e.refresh()
	e.historyIdx += ofs
}

func (e *Editor) historyPrevWord() {
	if e.history == nil {
		return
	}
	if e.historyWpos == 0 {
		e.historyWidx++
	}
	entry, found := e.history.GetWithPrefix(e.historyWidx, "")
	if !found {
		e.out.Beep()
		return
	}
	entryBuf := sbuf.NewFromString(entry)
	wordEnd := e.historyWpos
	if wordEnd == 0 {
		wordEnd = entryBuf.Len()
	}
	wordStart := entryBuf.FindWordStart(wordEnd)
	wordStartWs := entryBuf.FindWsWordStart(wordEnd)
	e.hint = entry[wordStartWs:wordEnd]
	e.historyWpos = wordStart
	e.refresh()
}

// --- undo/redo ---

func (e *Editor) undoRestore() {
	snap, ok := undo.Restore(e.undo, e.redo, e.input.String(), e.pos)
	if !ok {
		return
	}
	e.input.Replace(snap.Text)
	e.pos = snap.Cursor
	e.modified = false
	e.refresh()
}

func (e *Editor) redoRestore() {
	snap, ok := undo.Restore(e.redo, e.undo, e.input.String(), e.pos)
	if !ok {
		return
	}
	e.input.Replace(snap.Text)
	e.pos = snap.Cursor
	e.modified = false
	e.refresh()
}

// --- misc ---

func (e *Editor) clearScreen() {
	e.out.Write("\x1b[2J\x1b[H")
	e.curRows = 0
	e.curRow = 0
	e.refresh()
}

func (e *Editor) resize() {
	e.out.UpdateDim()
	p := render.Prompt{Text: e.cfg.PromptText, Marker: e.cfg.PromptMarker, Continuation: e.cfg.ContinuationMarker, TwoLine: e.cfg.TwoLinePrompt}
	rc := sbuf.Rewrapped(e.input, p.Width(), p.ContinuationWidth(), e.out.GetWidth(), e.pos)
	e.curRow = rc.Row
	// Only grow cur_rows here; if the new layout is shorter, leave the old
	// (larger) value in place so refresh's stale-row-clear check still
	// fires (render.go step 11 compares rowsTotal against it).
	if rc.RowCount > e.curRows {
		e.curRows = rc.RowCount
	}
	e.refresh()
}

// --- completion ---

func (e *Editor) generateCompletions() {
	e.store.Reset(e.pos, e.pos, e.cfg.MaxCompletionsToTry)
	if e.generator != nil {
		newPos := e.generator(e.input, e.pos, e.store)
		e.pos = newPos
	} else {
		e.pos = filename.Complete(&editorBuffer{e.input}, e.pos, e.store, e.cfg.MaxCompletionsToTry, nil)
	}
	moreAvailable := e.store.MoreAvailable()

	switch e.store.Len() {
	case 0:
		e.out.Beep()
	case 1:
		e.applyCompletion(0)
	default:
		e.hint = ""
		e.store.Sort()
		e.runCompletionMenu(moreAvailable)
	}
}

func (e *Editor) applyCompletion(idx int) bool {
	e.startModify()
	newPos, changed := e.store.Apply(idx, e.input)
	if !changed {
		e.undoRestore()
		return false
	}
	e.pos = newPos
	e.hint = ""
	e.refresh()
	return true
}

// helpText renders the static F1 help block into extra, ported from
// editline.c's help overlay in edit_line.
func (e *Editor) helpText() string {
	return "" +
		"Ctrl-A/E   start/end of line       Ctrl-P/N   previous/next history\n" +
		"Ctrl-B/F   left/right              Alt-./Ctrl-Left  word history/word left\n" +
		"Ctrl-W     delete word left        Ctrl-U/K   delete to start/end of line\n" +
		"Ctrl-T     transpose char          Ctrl-Z/Ctrl-_  undo    Ctrl-Y  redo\n" +
		"Tab        complete                Ctrl-L     clear screen\n" +
		"Alt-m      jump to matching brace  F1         close this help\n"
}

// editorBuffer adapts *sbuf.Buffer to filename.Buffer.
type editorBuffer struct{ b *sbuf.Buffer }

func (e *editorBuffer) RawString() string       { return e.b.RawString() }
func (e *editorBuffer) DeleteFromTo(a, b int)   { e.b.DeleteFromTo(a, b) }
func (e *editorBuffer) InsertAt(pos int, s string) int { return e.b.InsertAt(pos, s) }
func (e *editorBuffer) Len() int                { return e.b.Len() }

