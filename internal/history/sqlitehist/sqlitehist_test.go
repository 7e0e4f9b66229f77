package sqlitehist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushDedupRefreshesTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.db")
	b, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	b.Push("ls -la")
	b.Push("ls /tmp")
	b.Push("ls -la")

	assert.Equal(t, 2, b.CountWithPrefix("ls"))
	top, ok := b.GetWithPrefix(1, "ls")
	require.True(t, ok)
	assert.Equal(t, "ls -la", top)
}

func TestGetWithPrefixOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.db")
	b, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	b.Push("only")
	_, ok := b.GetWithPrefix(2, "only")
	assert.False(t, ok)
}
