package editor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ovity/goline/internal/keys"
	"github.com/ovity/goline/internal/termio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memHistory struct{ entries []string }

func (h *memHistory) CountWithPrefix(prefix string) int { return 0 }
func (h *memHistory) GetWithPrefix(n int, prefix string) (string, bool) {
	return "", false
}
func (h *memHistory) Push(entry string) { h.entries = append(h.entries, entry) }

type scriptedKeys struct {
	events []keys.Event
	idx    int
	pushed []keys.Event
}

func (k *scriptedKeys) ReadBlocking() (keys.Event, error) {
	if len(k.pushed) > 0 {
		ev := k.pushed[0]
		k.pushed = k.pushed[1:]
		return ev, nil
	}
	if k.idx >= len(k.events) {
		return keys.Event{}, errors.New("no more scripted events")
	}
	ev := k.events[k.idx]
	k.idx++
	return ev, nil
}

func (k *scriptedKeys) ReadTimeout(ms int) (keys.Event, bool, error) {
	ev, err := k.ReadBlocking()
	return ev, true, err
}

func (k *scriptedKeys) Pushback(ev keys.Event) {
	k.pushed = append([]keys.Event{ev}, k.pushed...)
}

func newTestEditor(t *testing.T, width, height int, kr keys.Reader) (*Editor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	out := termio.NewOutput(&buf, width, height, func() (int, int) { return width, height })
	cfg := DefaultConfig()
	cfg.CompletionPreview = true
	ed := New(cfg, &memHistory{}, kr, out, nil)
	return ed, &buf
}

func TestRunCompletionMenuDownThenEnterApplies(t *testing.T) {
	kr := &scriptedKeys{events: []keys.Event{
		{Code: keys.CodeDown},
		{Code: keys.CodeEnter},
	}}
	ed, _ := newTestEditor(t, 80, 24, kr)
	ed.pos = 0
	ed.store.Reset(0, 0, 10)
	ed.store.Add("file_01", "", "")
	ed.store.Add("file_02", "", "")
	ed.store.Sort()

	ed.runCompletionMenu(false)

	assert.Equal(t, "file_02", ed.input.String())
	assert.Equal(t, len("file_02"), ed.pos)
}

func TestRunCompletionMenuEscapeRestoresOriginalText(t *testing.T) {
	kr := &scriptedKeys{events: []keys.Event{
		{Code: keys.CodeEscape},
	}}
	ed, _ := newTestEditor(t, 80, 24, kr)
	ed.input.Replace("ab")
	ed.pos = 2
	ed.store.Reset(2, 2, 10)
	ed.store.Add("abcdef", "", "")
	ed.store.Add("abxyz", "", "")
	ed.store.Sort()

	ed.runCompletionMenu(false)

	assert.Equal(t, "ab", ed.input.String())
	assert.Equal(t, "", ed.extra)
}

func TestRunCompletionMenuAltDigitSelectsDirectly(t *testing.T) {
	kr := &scriptedKeys{events: []keys.Event{
		{Rune: '2', Mods: keys.WithAlt},
	}}
	ed, _ := newTestEditor(t, 80, 24, kr)
	ed.pos = 0
	ed.store.Reset(0, 0, 10)
	ed.store.Add("alpha", "", "")
	ed.store.Add("beta", "", "")
	ed.store.Add("gamma", "", "")
	ed.store.Sort()

	ed.runCompletionMenu(false)

	assert.Equal(t, "beta", ed.input.String())
}

func TestRunCompletionMenuOtherKeyPushesBackAndExits(t *testing.T) {
	kr := &scriptedKeys{events: []keys.Event{
		{Rune: 'x'},
	}}
	ed, _ := newTestEditor(t, 80, 24, kr)
	cfg := ed.cfg
	cfg.CompletionPreview = false
	ed.cfg = cfg
	ed.pos = 0
	ed.store.Reset(0, 0, 10)
	ed.store.Add("alpha", "", "")
	ed.store.Add("beta", "", "")
	ed.store.Sort()

	ed.runCompletionMenu(false)

	require.Len(t, kr.pushed, 1)
	assert.Equal(t, 'x', kr.pushed[0].Rune)
}

func TestRenderMenuNumberedListForFewCandidates(t *testing.T) {
	kr := &scriptedKeys{}
	ed, _ := newTestEditor(t, 80, 24, kr)
	ed.store.Reset(0, 0, 10)
	ed.store.Add("one", "", "")
	ed.store.Add("two", "", "")
	ed.store.Sort()

	displayed := ed.renderMenu(-1, ed.store.Len(), false)

	assert.Equal(t, 2, displayed)
	assert.Contains(t, ed.extra, "1 one")
	assert.Contains(t, ed.extra, "2 two")
}

func TestRenderMenuThreeColumnLayoutForManyCandidates(t *testing.T) {
	kr := &scriptedKeys{}
	ed, _ := newTestEditor(t, 120, 24, kr)
	ed.store.Reset(0, 0, 20)
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		ed.store.Add(name, "", "")
	}
	ed.store.Sort()

	displayed := ed.renderMenu(0, ed.store.Len(), false)

	assert.Equal(t, 6, displayed)
	assert.Contains(t, ed.extra, "→ a")
}
