package keybindings

import (
	"testing"

	"github.com/ovity/goline/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverRewritesOverriddenChordToCanonical(t *testing.T) {
	p := DefaultProfile()
	p.Bindings[ActionDeleteWordLeft] = keys.Sym(keys.CodeF1, keys.WithAlt)
	r := NewResolver(p)

	resolved := r.Resolve(keys.Sym(keys.CodeF1, keys.WithAlt))
	assert.Equal(t, keys.Ctrl('w'), resolved)

	assert.Equal(t, keys.Ctrl('a'), r.Resolve(keys.Ctrl('a')))
}

func TestResolverDefaultProfileIsIdentity(t *testing.T) {
	r := NewResolver(nil)
	for _, action := range Actions() {
		canon, _ := Canonical(action)
		assert.Equal(t, canon, r.Resolve(canon))
	}
}

func TestEncodeDecodeEventRoundTrip(t *testing.T) {
	cases := []keys.Event{
		keys.Ctrl('w'),
		{Rune: '.', Mods: keys.WithAlt},
		{Code: keys.CodeTab},
		{Code: keys.CodeF1},
	}
	for _, ev := range cases {
		s := EncodeEvent(ev)
		got, err := DecodeEvent(s)
		require.NoError(t, err)
		assert.Equal(t, ev, got, "round trip of %q", s)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	p := DefaultProfile()
	p.Name = "custom"
	p.Bindings[ActionUndo] = keys.Sym(keys.CodeF1, 0)

	data, err := Export(p)
	require.NoError(t, err)

	got, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, "custom", got.Name)
	assert.Equal(t, keys.Sym(keys.CodeF1, 0), got.Bindings[ActionUndo])
}

func TestImportRejectsUnknownAction(t *testing.T) {
	_, err := Import([]byte("name: bad\nbindings:\n  not_a_real_action: ctrl+w\n"))
	require.Error(t, err)
}
