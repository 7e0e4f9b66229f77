package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPushDedupMovesToFront(t *testing.T) {
	m := NewMemory()
	m.Push("ls -la")
	m.Push("ls /tmp")
	m.Push("ls -la") // re-push an older entry: moves to front, not duplicated

	assert.Equal(t, 2, m.CountWithPrefix("ls"))
	top, ok := m.GetWithPrefix(1, "ls")
	require.True(t, ok)
	assert.Equal(t, "ls -la", top)
}

func TestMemoryPushSameAsTopIsNoop(t *testing.T) {
	m := NewMemory()
	m.Push("echo hi")
	m.Push("echo hi")
	assert.Equal(t, 1, m.CountWithPrefix("echo"))
}

func TestMemoryGetWithPrefixOrdering(t *testing.T) {
	m := NewMemory()
	m.Push("ls -la")
	m.Push("ls /tmp")
	second, ok := m.GetWithPrefix(2, "ls")
	require.True(t, ok)
	assert.Equal(t, "ls -la", second)

	_, ok = m.GetWithPrefix(3, "ls")
	assert.False(t, ok)
}

func TestMemoryLoadMissingFileIsEmpty(t *testing.T) {
	m := NewMemory()
	err := m.LoadFile(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.CountWithPrefix(""))
}

func TestMemorySaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	m := NewMemory()
	m.Push("first")
	m.Push("second")
	require.NoError(t, m.SaveFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))

	m2 := NewMemory()
	require.NoError(t, m2.LoadFile(path))
	top, ok := m2.GetWithPrefix(1, "")
	require.True(t, ok)
	assert.Equal(t, "second", top)
}

func TestMemoryMaxEntriesClamps(t *testing.T) {
	m := NewMemory(WithMaxEntries(2))
	m.Push("a")
	m.Push("b")
	m.Push("c")
	assert.Equal(t, 2, m.CountWithPrefix(""))
	top, _ := m.GetWithPrefix(1, "")
	assert.Equal(t, "c", top)
}

func TestMemoryAllowDuplicates(t *testing.T) {
	m := NewMemory(WithDuplicates(true))
	m.Push("dup")
	m.Push("dup")
	assert.Equal(t, 2, m.CountWithPrefix("dup"))
}
