package filename

import (
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/ovity/goline/internal/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuf struct{ s string }

func (f *fakeBuf) RawString() string { return f.s }
func (f *fakeBuf) DeleteFromTo(a, b int) {
	f.s = f.s[:a] + f.s[b:]
}
func (f *fakeBuf) InsertAt(pos int, s string) int {
	f.s = f.s[:pos] + s + f.s[pos:]
	return pos + len(s)
}
func (f *fakeBuf) Len() int { return len(f.s) }

type fakeEntry struct {
	name  string
	isDir bool
}

func (e fakeEntry) Name() string { return e.name }
func (e fakeEntry) IsDir() bool  { return e.isDir }
func (e fakeEntry) Type() fs.FileMode {
	if e.isDir {
		return fs.ModeDir
	}
	return 0
}
func (e fakeEntry) Info() (fs.FileInfo, error) { return fakeInfo(e), nil }

type fakeInfo fakeEntry

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return fakeEntry(i).Type() }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.isDir }
func (i fakeInfo) Sys() any           { return nil }

func fakeReadDir(entries map[string][]os.DirEntry) ReadDir {
	return func(dir string) ([]os.DirEntry, error) {
		ents, ok := entries[dir]
		if !ok {
			return nil, os.ErrNotExist
		}
		return ents, nil
	}
}

func TestCompleteSingleMatchAutoPrefix(t *testing.T) {
	buf := &fakeBuf{s: "tes"}
	store := completion.New(10)
	rd := fakeReadDir(map[string][]os.DirEntry{
		".": {fakeEntry{name: "testdir", isDir: true}},
	})
	pos := Complete(buf, 3, store, 10, rd)
	assert.Equal(t, "testdir/", buf.s)
	assert.Equal(t, 8, pos)
	assert.Equal(t, 1, store.Len())
}

func TestCompleteMidPathApply(t *testing.T) {
	buf := &fakeBuf{s: "testdir/file"}
	store := completion.New(10)
	rd := fakeReadDir(map[string][]os.DirEntry{
		"testdir": {
			fakeEntry{name: "file_01"},
			fakeEntry{name: "file_02"},
		},
	})
	pos := Complete(buf, 12, store, 10, rd)
	// both matches share the longer prefix "file_0", so "_0" is auto-filled
	assert.Equal(t, "testdir/file_0", buf.s)
	assert.Equal(t, 14, pos)
	require.Equal(t, 2, store.Len())

	newPos, changed := store.Apply(0, buf)
	require.True(t, changed)
	assert.Equal(t, "testdir/file_01", buf.s)
	assert.Equal(t, 15, newPos)
}

func TestCompleteSkipsDotEntries(t *testing.T) {
	buf := &fakeBuf{s: ""}
	store := completion.New(10)
	rd := fakeReadDir(map[string][]os.DirEntry{
		".": {
			fakeEntry{name: ".", isDir: true},
			fakeEntry{name: "..", isDir: true},
			fakeEntry{name: "visible.txt"},
		},
	})
	Complete(buf, 0, store, 10, rd)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "visible.txt", store.Elems()[0].Replacement)
}

func TestCompleteMissingDirIsEmpty(t *testing.T) {
	buf := &fakeBuf{s: "nope/thing"}
	store := completion.New(10)
	rd := fakeReadDir(map[string][]os.DirEntry{})
	pos := Complete(buf, 10, store, 10, rd)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 10, pos)
}

func TestCompleteQuotesEntriesWithSpaces(t *testing.T) {
	buf := &fakeBuf{s: ""}
	store := completion.New(10)
	rd := fakeReadDir(map[string][]os.DirEntry{
		".": {fakeEntry{name: "my file.txt"}},
	})
	Complete(buf, 0, store, 10, rd)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "'my file.txt'", store.Elems()[0].Replacement)
}
