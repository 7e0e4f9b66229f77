// Package keybindings lets a caller remap the editor's fixed emacs-style
// chords to different physical keystrokes without touching the dispatch
// loop itself: a Profile binds each Action to a physical keys.Event, and a
// Resolver built from that profile rewrites incoming events back to the
// canonical chord the editor's switch in internal/editor recognizes.
// Ported from the teacher's internal/keybindings Profile/Resolver split,
// trimmed to a single non-modal action set (this editor has no vi-style
// modes) and its export/import YAML round trip (internal/keybindings/
// export.go, import.go).
package keybindings

import "github.com/ovity/goline/internal/keys"

// Action names one of the editor's fixed, non-rebindable-in-meaning
// operations. The physical key triggering it is what a Profile rebinds.
type Action string

// The action set the core's dispatch loop recognizes (internal/editor's
// ReadLine switch), per spec.md §4.8.
const (
	ActionDeleteWordLeft  Action = "delete_word_left"
	ActionClearLine       Action = "clear_line"
	ActionDeleteToEnd     Action = "delete_to_end"
	ActionMoveToBeginning Action = "move_to_beginning"
	ActionMoveToEnd       Action = "move_to_end"
	ActionHistoryPrev     Action = "history_prev"
	ActionHistoryNext     Action = "history_next"
	ActionHistoryPrevWord Action = "history_prev_word"
	ActionUndo            Action = "undo"
	ActionRedo            Action = "redo"
	ActionTranspose       Action = "transpose_char"
	ActionClearScreen     Action = "clear_screen"
	ActionComplete        Action = "complete"
	ActionMatchBrace      Action = "match_brace"
	ActionHelp            Action = "help"
)

// canonical gives the keys.Event the editor's switch natively recognizes
// for each action — the defaults before any profile override.
var canonical = map[Action]keys.Event{
	ActionDeleteWordLeft:  keys.Ctrl('w'),
	ActionClearLine:       keys.Ctrl('u'),
	ActionDeleteToEnd:     keys.Ctrl('k'),
	ActionMoveToBeginning: keys.Ctrl('a'),
	ActionMoveToEnd:       keys.Ctrl('e'),
	ActionHistoryPrev:     keys.Ctrl('p'),
	ActionHistoryNext:     keys.Ctrl('n'),
	ActionHistoryPrevWord: {Rune: '.', Mods: keys.WithAlt},
	ActionUndo:            keys.Ctrl('z'),
	ActionRedo:            keys.Ctrl('y'),
	ActionTranspose:       keys.Ctrl('t'),
	ActionClearScreen:     keys.Ctrl('l'),
	ActionComplete:        {Code: keys.CodeTab},
	ActionMatchBrace:      {Rune: 'm', Mods: keys.WithAlt},
	ActionHelp:            {Code: keys.CodeF1},
}

// Actions returns every rebindable action, in a stable order.
func Actions() []Action {
	return []Action{
		ActionDeleteWordLeft, ActionClearLine, ActionDeleteToEnd,
		ActionMoveToBeginning, ActionMoveToEnd, ActionHistoryPrev,
		ActionHistoryNext, ActionHistoryPrevWord, ActionUndo, ActionRedo,
		ActionTranspose, ActionClearScreen, ActionComplete, ActionMatchBrace,
		ActionHelp,
	}
}

// Canonical returns the action's native, un-rebound chord.
func Canonical(a Action) (keys.Event, bool) {
	ev, ok := canonical[a]
	return ev, ok
}
