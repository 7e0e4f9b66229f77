package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureAndPop(t *testing.T) {
	s := New()
	s.Capture("abc", 3)
	s.Capture("abcd", 4)
	assert.Equal(t, 2, s.Len())

	top, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "abcd", top.Text)
	assert.Equal(t, 4, top.Cursor)
	assert.Equal(t, 1, s.Len())
}

func TestStartModifyClearsRedo(t *testing.T) {
	undoStack, redoStack := New(), New()
	redoStack.Capture("stale", 0)
	StartModify(undoStack, redoStack, "current", 5)
	assert.Equal(t, 0, redoStack.Len())
	top, _ := undoStack.Peek()
	assert.Equal(t, "current", top.Text)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	undoStack, redoStack := New(), New()

	// Initial state "foo", mutate to "foobar".
	StartModify(undoStack, redoStack, "foo", 3)
	current, curPos := "foobar", 6

	// Undo: pop undo, push current onto redo.
	snap, ok := Restore(undoStack, redoStack, current, curPos)
	require.True(t, ok)
	assert.Equal(t, "foo", snap.Text)
	current, curPos = snap.Text, snap.Cursor

	// Redo: pop redo, push current onto undo.
	snap, ok = Restore(redoStack, undoStack, current, curPos)
	require.True(t, ok)
	assert.Equal(t, "foobar", snap.Text)
}

func TestPopEmptyStack(t *testing.T) {
	s := New()
	_, ok := s.Pop()
	assert.False(t, ok)
}
