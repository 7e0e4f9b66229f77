// Package goline is the public entry point for the line-editing core: it
// wires internal/editor, internal/history, internal/termio and
// internal/keybindings together behind a small caller-facing Editor type,
// mirroring the split between the teacher's cmd/ commands and its
// pkg/ui helpers (spec.md §6 calls the library surface itself out of
// scope, but a runnable module still needs one caller-facing type).
package goline

import (
	"io"

	"github.com/ovity/goline/internal/attrbuf"
	"github.com/ovity/goline/internal/editor"
	"github.com/ovity/goline/internal/highlight"
	"github.com/ovity/goline/internal/history"
	"github.com/ovity/goline/internal/keybindings"
	"github.com/ovity/goline/internal/keys"
	"github.com/ovity/goline/internal/termio"
)

// Editor is the caller-facing handle for one long-lived line-editing
// session (spec.md §9's replacement for the C source's lazy-init global:
// callers own an explicit value instead).
type Editor struct {
	cfg     editor.Config
	history history.History
	keys    keys.Reader
	out     *termio.Output
	gen     editor.Generator

	highlighter highlight.Highlighter
	styleAttr   func(string) attrbuf.Attr
	keymap      *keybindings.Resolver
}

// Option configures an Editor at construction.
type Option func(*Editor)

// WithHistory installs a history backend (internal/history.Memory or
// internal/history/sqlitehist.Backend both satisfy history.History).
func WithHistory(h history.History) Option {
	return func(e *Editor) { e.history = h }
}

// WithGenerator installs the completion candidate provider. Omitting it
// falls back to the built-in filename completer (spec.md §4.6).
func WithGenerator(gen editor.Generator) Option {
	return func(e *Editor) { e.gen = gen }
}

// WithHighlighter installs a syntax highlighter and its style resolver
// (spec.md §6 — out of core scope, consumed via a callback).
func WithHighlighter(h highlight.Highlighter, styleAttr func(string) attrbuf.Attr) Option {
	return func(e *Editor) {
		e.highlighter = h
		e.styleAttr = styleAttr
	}
}

// WithKeymap installs a keybinding profile resolver (internal/keybindings).
func WithKeymap(r *keybindings.Resolver) Option {
	return func(e *Editor) { e.keymap = r }
}

// WithConfig overrides the starting Config (defaults to editor.DefaultConfig()).
func WithConfig(cfg editor.Config) Option {
	return func(e *Editor) { e.cfg = cfg }
}

// New constructs an Editor. w is the terminal output stream, kr the
// caller-supplied key decoder (spec.md §6 — decoding raw escape sequences
// is out of the core's scope), and dimensionLookup returns the current
// terminal size (typically golang.org/x/term.GetSize).
func New(w io.Writer, kr keys.Reader, fallbackWidth, fallbackHeight int, dimensionLookup func() (int, int), opts ...Option) *Editor {
	e := &Editor{
		cfg:     editor.DefaultConfig(),
		history: history.NewMemory(),
		keys:    kr,
		out:     termio.NewOutput(w, fallbackWidth, fallbackHeight, dimensionLookup),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ReadLine prompts promptText and runs the editor state machine until the
// user commits or cancels, per spec.md §6's `read_line(prompt_text) ->
// option<text>` contract: ok is false for Ctrl-D-on-empty or STOP, which
// are not errors; err is non-nil only when the key reader fails.
func (e *Editor) ReadLine(promptText string) (text string, ok bool, err error) {
	ed := editor.New(e.cfg, e.history, e.keys, e.out, e.gen)
	if e.highlighter != nil {
		ed.SetHighlighter(e.highlighter, e.styleAttr)
	}
	if e.keymap != nil {
		ed.SetKeymap(e.keymap)
	}
	return ed.ReadLine(promptText)
}

// SetConfig replaces the configuration used by subsequent ReadLine calls.
func (e *Editor) SetConfig(cfg editor.Config) { e.cfg = cfg }

// Config returns the current configuration.
func (e *Editor) Config() editor.Config { return e.cfg }

// SetKeymap installs a keybinding profile resolver for subsequent ReadLine
// calls (see internal/keybindings for profile load/save via YAML).
func (e *Editor) SetKeymap(r *keybindings.Resolver) { e.keymap = r }
