// Package undo implements the editor's undo/redo snapshot stacks (spec.md
// §4.3), ported from jorbakk/repline's undo.c/undo.h editstate_t list.
package undo

// Snapshot is one captured (text, cursor) pair.
type Snapshot struct {
	Text   string
	Cursor int
}

// Stack is a LIFO list of snapshots, owned by the editor.
type Stack struct {
	items []Snapshot
}

// New returns an empty stack.
func New() *Stack { return &Stack{} }

// Len reports how many snapshots are stored.
func (s *Stack) Len() int { return len(s.items) }

// Capture pushes (text, cursor) onto the stack.
func (s *Stack) Capture(text string, cursor int) {
	s.items = append(s.items, Snapshot{Text: text, Cursor: cursor})
}

// Peek returns the top snapshot without popping it.
func (s *Stack) Peek() (Snapshot, bool) {
	if len(s.items) == 0 {
		return Snapshot{}, false
	}
	return s.items[len(s.items)-1], true
}

// Pop removes and returns the top snapshot.
func (s *Stack) Pop() (Snapshot, bool) {
	if len(s.items) == 0 {
		return Snapshot{}, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Clear discards all snapshots.
func (s *Stack) Clear() { s.items = s.items[:0] }

// Restore pops the top snapshot off s, optionally capturing the given
// current (text, cursor) onto other first — the move used to shuttle a
// state from undo to redo (or vice versa) on every undo/redo key press.
func Restore(s, other *Stack, curText string, curCursor int) (Snapshot, bool) {
	top, ok := s.Pop()
	if !ok {
		return Snapshot{}, false
	}
	if other != nil {
		other.Capture(curText, curCursor)
	}
	return top, true
}

// StartModify captures the current (text, cursor) onto undo and clears
// redo, the operation every mutating editor action performs before it
// changes the buffer (spec.md §4.3 / §8 invariant: "the top of the undo
// stack equals the pre-mutation (input, pos)").
func StartModify(undoStack, redoStack *Stack, curText string, curCursor int) {
	undoStack.Capture(curText, curCursor)
	redoStack.Clear()
}
