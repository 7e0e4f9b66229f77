package editor

import (
	"github.com/ovity/goline/internal/attrbuf"
	"github.com/ovity/goline/internal/completion"
	"github.com/ovity/goline/internal/highlight"
	"github.com/ovity/goline/internal/history"
	"github.com/ovity/goline/internal/keybindings"
	"github.com/ovity/goline/internal/keys"
	"github.com/ovity/goline/internal/render"
	"github.com/ovity/goline/internal/sbuf"
	"github.com/ovity/goline/internal/termio"
	"github.com/ovity/goline/internal/undo"
)

// Generator produces completion candidates for the word around pos into
// store, and may splice an auto-prefix into input, returning the
// (possibly advanced) cursor position (spec.md §4.6's filename completer
// is one such Generator; callers may compose several).
type Generator func(input *sbuf.Buffer, pos int, store *completion.Store) (newPos int)

// Editor is the per-read-line-call state machine (C8). One Editor exists
// per active ReadLine call and is discarded when it returns.
type Editor struct {
	input     *sbuf.Buffer
	hint      string
	hintHelp  string
	extra     string
	pos       int
	curRows   int
	curRow    int
	modified  bool

	historyIdx  int
	historyWidx int
	historyWpos int

	undo *undo.Stack
	redo *undo.Stack

	inputAttr *attrbuf.Buffer

	cfg Config

	history     history.History
	keys        keys.Reader
	out         *termio.Output
	renderer    *render.Renderer
	generator   Generator
	highlighter highlight.Highlighter
	styleAttr   func(style string) attrbuf.Attr
	keymap      *keybindings.Resolver

	store *completion.Store
}

// SetKeymap installs a keybinding profile resolver; incoming physical
// keystrokes matching a profile override are rewritten to their canonical
// chord before the dispatch loop sees them. A nil resolver restores the
// built-in default chords.
func (e *Editor) SetKeymap(r *keybindings.Resolver) {
	e.keymap = r
}

// New constructs an Editor bound to the given collaborators.
func New(cfg Config, h history.History, kr keys.Reader, out *termio.Output, gen Generator) *Editor {
	prompt := render.Prompt{
		Text:         cfg.PromptText,
		Marker:       cfg.PromptMarker,
		Continuation: cfg.ContinuationMarker,
		TwoLine:      cfg.TwoLinePrompt,
	}
	return &Editor{
		input:     sbuf.New(),
		undo:      undo.New(),
		redo:      undo.New(),
		inputAttr: attrbuf.NewBuffer(),
		cfg:       cfg,
		history:   h,
		keys:      kr,
		out:       out,
		renderer:  render.New(out, prompt),
		generator: gen,
		store:     completion.New(cfg.MaxCompletionsToTry),
		curRows:   1,
	}
}

// SetHighlighter installs the syntax highlighter callback (out of core
// scope itself; spec.md §6).
func (e *Editor) SetHighlighter(h highlight.Highlighter, styleAttr func(string) attrbuf.Attr) {
	e.highlighter = h
	e.styleAttr = styleAttr
}

func (e *Editor) startModify() {
	undo.StartModify(e.undo, e.redo, e.input.String(), e.pos)
	e.modified = true
}

func (e *Editor) refresh() {
	st := &render.State{
		Input:          e.input,
		InputAttr:      e.inputAttr,
		Pos:            e.pos,
		Hint:           e.hint,
		HintHelp:       e.hintHelp,
		Extra:          e.extra,
		BracePairs:     e.cfg.MatchBraces,
		BraceMatchOn:   e.cfg.BraceMatchEnable,
		BraceMatchAttr: e.cfg.BraceMatchAttr,
		BraceErrorAttr: e.cfg.BraceErrorAttr,
		HintAttr:       e.cfg.HintAttr,
		CurRows:        e.curRows,
		CurRow:         e.curRow,
	}
	if e.cfg.HighlightEnable {
		st.Highlighter = e.highlighter
		st.StyleAttr = e.styleAttr
	}
	e.curRows, e.curRow = e.renderer.Render(st)
}

// ReadLine runs the key-dispatch loop until the user commits or cancels,
// per spec.md §4.8/§6's "read_line(prompt_text) -> option<text>" contract.
func (e *Editor) ReadLine(promptText string) (string, bool, error) {
	e.cfg.PromptText = promptText
	e.renderer.SetPrompt(render.Prompt{
		Text:         promptText,
		Marker:       e.cfg.PromptMarker,
		Continuation: e.cfg.ContinuationMarker,
		TwoLine:      e.cfg.TwoLinePrompt,
	})
	if e.cfg.TwoLinePrompt && promptText != "" {
		// Written once up front, per original_source/editline.c's edit_line:
		// the two-line prompt text scrolls off with the rest of the
		// terminal's scrollback rather than being repainted every frame.
		e.out.Writeln(promptText)
	}
	e.refresh()

	committed := false
	canceled := false

loop:
	for {
		ev, ok, err := e.nextEvent()
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}

		switch {
		case ev.Code == keys.CodeEnter:
			if !e.cfg.SinglelineOnly && e.atMultilineContinuation() {
				e.multilineEOL()
				continue loop
			}
			committed = true
			break loop

		case ev == keys.Ctrl('d'):
			if e.pos == 0 && e.input.Len() == 0 {
				canceled = true
				break loop
			}
			e.deleteChar()

		case ev.Code == keys.CodeStop:
			canceled = true
			break loop

		case ev == keys.Ctrl('c'):
			e.deleteAll()

		case ev == keys.Ctrl('g'):
			e.deleteAll()
			committed = true
			break loop

		case ev.Code == keys.CodeResize:
			e.resize()

		case ev.Code == keys.CodeTab && ev.Mods == 0:
			e.generateCompletions()

		case ev == keys.Ctrl('p'):
			e.historyAt(1)
		case ev == keys.Ctrl('n'):
			e.historyAt(-1)
		case ev == (keys.Event{Rune: '.', Mods: keys.WithAlt}):
			e.historyPrevWord()
		case ev == keys.Ctrl('l'):
			e.clearScreen()
		case ev == keys.Ctrl('z'), ev == (keys.Event{Rune: '_', Mods: keys.WithCtrl}):
			e.undoRestore()
		case ev == keys.Ctrl('y'):
			e.redoRestore()
		case ev.Code == keys.CodeF1:
			if e.extra == "" {
				e.extra = e.helpText()
			} else {
				e.extra = ""
			}
			e.refresh()

		case (ev.Code == keys.CodeRight && ev.Mods.Has(keys.WithCtrl)),
			(ev.Code == keys.CodeRight && ev.Mods.Has(keys.WithShift)),
			ev == (keys.Event{Rune: 'f', Mods: keys.WithAlt}):
			if e.pos == e.input.Len() {
				e.moveWordHintToInput()
			} else {
				e.cursorNextWord()
			}
		case (ev.Code == keys.CodeLeft && ev.Mods.Has(keys.WithCtrl)),
			(ev.Code == keys.CodeLeft && ev.Mods.Has(keys.WithShift)),
			ev == (keys.Event{Rune: 'b', Mods: keys.WithAlt}):
			e.cursorPrevWord()
		case ev.Code == keys.CodeLeft, ev == keys.Ctrl('b'):
			e.cursorLeft()
		case ev.Code == keys.CodeRight, ev == keys.Ctrl('f'):
			if e.pos == e.input.Len() {
				e.moveHintToInput()
			} else {
				e.cursorRight()
			}
		case ev.Code == keys.CodeUp:
			e.cursorRowUp()
		case ev.Code == keys.CodeDown:
			e.cursorRowDown()
		case ev.Code == keys.CodeHome, ev == keys.Ctrl('a'):
			e.cursorLineStart()
		case ev.Code == keys.CodeEnd, ev == keys.Ctrl('e'):
			if e.pos == e.input.Len() {
				e.moveLineHintToInput()
			}
			e.cursorLineEnd()
		case ev.Code == keys.CodePageUp:
			e.cursorToStart()
		case ev.Code == keys.CodePageDown:
			e.cursorToEnd()
		case ev == (keys.Event{Rune: 'm', Mods: keys.WithAlt}):
			e.cursorMatchBrace()

		case ev.Code == keys.CodeBackspace && !ev.Mods.Has(keys.WithAlt):
			e.backspace()
			e.refreshHistoryHint()
		case ev.Code == keys.CodeDelete && !ev.Mods.Has(keys.WithAlt):
			e.deleteChar()
			e.refreshHistoryHint()
		case ev == (keys.Event{Rune: 'd', Mods: keys.WithAlt}):
			e.deleteToEndOfWord()
			e.refreshHistoryHint()
		case ev == keys.Ctrl('w'):
			e.deleteToStartOfWsWord()
			e.refreshHistoryHint()
		case (ev.Code == keys.CodeDelete || ev.Code == keys.CodeBackspace) && ev.Mods.Has(keys.WithAlt):
			e.deleteToStartOfWord()
			e.refreshHistoryHint()
		case ev == keys.Ctrl('u'):
			e.deleteToStartOfLine()
			e.refreshHistoryHint()
		case ev == keys.Ctrl('k'):
			e.deleteToEndOfLine()
			e.refreshHistoryHint()
		case ev == keys.Ctrl('t'):
			e.swapChar()
			e.refreshHistoryHint()

		case ev.Code == keys.CodeShiftTab, ev.Rune == '\n':
			if !e.cfg.SinglelineOnly {
				e.insertChar('\n')
			}

		case ev.IsRune():
			if ev.Rune >= 0x20 || ev.Rune == '\t' {
				if ev.Rune < 0x80 {
					e.insertChar(byte(ev.Rune))
				} else {
					e.insertUnicode(ev.Rune)
				}
				e.refreshHistoryHint()
			}
		}
	}

	e.pos = e.input.Len()
	bm := e.cfg.BraceMatchEnable
	e.cfg.BraceMatchEnable = false
	e.refresh()
	e.cfg.BraceMatchEnable = bm

	if canceled {
		return "", false, nil
	}
	text := e.input.String()
	if e.history != nil {
		e.history.Push(text)
	}
	return text, committed, nil
}

func (e *Editor) nextEvent() (keys.Event, bool, error) {
	if e.cfg.HintDelayMs <= 0 || e.hint == "" {
		ev, err := e.keys.ReadBlocking()
		return e.resolveKeymap(ev), true, err
	}
	ev, ok, err := e.keys.ReadTimeout(e.cfg.HintDelayMs)
	if err != nil {
		return keys.Event{}, false, err
	}
	if !ok {
		if e.hint != "" {
			e.refresh()
		}
		ev, err = e.keys.ReadBlocking()
		return e.resolveKeymap(ev), true, err
	}
	e.hint = ""
	e.hintHelp = ""
	return e.resolveKeymap(ev), true, nil
}

func (e *Editor) resolveKeymap(ev keys.Event) keys.Event {
	if e.keymap == nil {
		return ev
	}
	return e.keymap.Resolve(ev)
}

func (e *Editor) atMultilineContinuation() bool {
	if e.pos <= 0 {
		return false
	}
	if e.input.ByteAt(e.pos-1) != e.cfg.MultilineEOL {
		return false
	}
	return e.posIsAtRowEnd()
}

func (e *Editor) posIsAtRowEnd() bool {
	geo := sbuf.Geometry{Termw: e.out.GetWidth(), PromptW: render.Prompt{Text: e.cfg.PromptText, Marker: e.cfg.PromptMarker, Continuation: e.cfg.ContinuationMarker, TwoLine: e.cfg.TwoLinePrompt}.Width(), CPromptW: render.Prompt{Continuation: e.cfg.ContinuationMarker}.ContinuationWidth()}
	rc := geo.GetRCAtPos(e.input, e.pos)
	return rc.Last
}
