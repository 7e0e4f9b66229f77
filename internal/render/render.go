// Package render implements the renderer (C7, spec.md §4.7): given editor
// state and an attribute buffer, it emits the terminal output needed to
// move from the previous frame to the current one, flicker-free. Ported
// from jorbakk/repline's term_render / refresh_line logic.
package render

import (
	"github.com/ovity/goline/internal/attrbuf"
	"github.com/ovity/goline/internal/highlight"
	"github.com/ovity/goline/internal/sbuf"
	"github.com/ovity/goline/internal/termio"
)

// Prompt carries the fixed text the renderer puts on row 0 and on
// continuation rows of a multi-line buffer.
type Prompt struct {
	Text          string // row-0 prompt text
	Marker        string // row-0 marker appended after Text (e.g. "> ")
	Continuation  string // continuation-row marker
	TwoLine       bool   // spec.md §4: prompt text on its own row above input
}

// Width returns the column width consumed by the row-0 prompt.
func (p Prompt) Width() int {
	if p.TwoLine {
		return sbuf.DisplayWidth(p.Marker)
	}
	return sbuf.DisplayWidth(p.Text) + sbuf.DisplayWidth(p.Marker)
}

// ContinuationWidth returns the column width consumed by continuation rows.
func (p Prompt) ContinuationWidth() int { return sbuf.DisplayWidth(p.Continuation) }

// State is the subset of editor state the renderer reads. It never
// mutates Input/Pos — see the hint-visibility contract below.
type State struct {
	Input     *sbuf.Buffer
	InputAttr *attrbuf.Buffer
	Pos       int

	Hint     string // suggested completion tail, not part of the logical input
	HintHelp string // short help text shown below input, if any
	Extra    string // completion-menu contents overlay, if any

	Highlighter highlight.Highlighter
	StyleAttr   func(style string) attrbuf.Attr

	BracePairs     string
	BraceMatchOn   bool
	BraceMatchAttr attrbuf.Attr
	BraceErrorAttr attrbuf.Attr
	HintAttr       attrbuf.Attr

	CurRows int // rows_total from the previous render
	CurRow  int // cursor_row from the previous render
}

// Renderer owns the frame-to-frame cursor bookkeeping (cur_rows/cur_row)
// and writes frames to an Output.
type Renderer struct {
	out    *termio.Output
	prompt Prompt
}

// New returns a Renderer writing frames to out under the given prompt.
func New(out *termio.Output, prompt Prompt) *Renderer {
	return &Renderer{out: out, prompt: prompt}
}

// SetPrompt updates the active prompt (e.g. when switching profiles).
func (r *Renderer) SetPrompt(p Prompt) { r.prompt = p }

// Render repaints the terminal for st, per spec.md §4.7's 14-step
// algorithm, and returns the updated cur_rows/cur_row to store back onto
// the caller's editor state.
func (r *Renderer) Render(st *State) (curRows, curRow int) {
	termw := r.out.GetWidth()
	termh := r.out.GetHeight()
	promptw := r.prompt.Width()
	cpromptw := r.prompt.ContinuationWidth()

	// step 1: populate attribute buffer from highlighter + brace-match overlay.
	inputStr := st.Input.String()
	if st.InputAttr != nil {
		st.InputAttr.Clear()
	}
	if st.Highlighter != nil && st.StyleAttr != nil {
		st.Highlighter.Highlight(inputStr, highlight.ApplyBuffer(st.InputAttr, st.StyleAttr))
	}
	if st.BraceMatchOn {
		ApplyBraceMatch(st.InputAttr, inputStr, st.Pos, st.BracePairs, st.BraceMatchAttr, st.BraceErrorAttr)
	}

	// step 2: view = input ++ hint, with hint's attribute over hint's bytes.
	view := inputStr + st.Hint
	viewAttrs := st.InputAttr.Attrs(len(inputStr))
	for i := 0; i < len(st.Hint); i++ {
		viewAttrs = append(viewAttrs, st.HintAttr)
	}

	viewBuf := sbuf.NewFromString(view)
	geo := sbuf.Geometry{Termw: termw, PromptW: promptw, CPromptW: cpromptw}

	// steps 4-5: rows_input/(cursor_row,cursor_col), rows_extra.
	cursorRC := geo.GetRCAtPos(viewBuf, st.Pos)
	rowsInput := geo.RowCount(viewBuf)

	extra := st.HintHelp
	if st.Extra != "" {
		if extra != "" {
			extra += "\n"
		}
		extra += st.Extra
	}
	rowsExtra := 0
	if extra != "" {
		extraGeo := sbuf.Geometry{Termw: termw, PromptW: 0, CPromptW: 0}
		rowsExtra = extraGeo.RowCount(sbuf.NewFromString(extra))
	}

	rowsTotal := rowsInput + rowsExtra
	cursorRow := cursorRC.Row
	cursorCol := cursorRC.Col

	// step 7: clamp the visible window so the cursor stays on screen.
	windowStart := 0
	if termh > 0 && rowsTotal > termh {
		windowStart = cursorRow - termh + 1
		if windowStart < 0 {
			windowStart = 0
		}
	}

	r.out.SetBufferMode(true)

	// step 9: move cursor to start of previous frame.
	r.out.StartOfLine()
	up := st.CurRow
	if termh > 0 && up > termh-1 {
		up = termh - 1
	}
	r.out.Up(up)

	// step 10: emit each visible row.
	rowIdx := 0
	geo.ForEachRow(viewBuf, func(info sbuf.RowInfo) {
		defer func() { rowIdx++ }()
		if rowIdx < windowStart {
			return
		}
		if termh > 0 && rowIdx-windowStart >= termh {
			return
		}
		switch {
		case rowIdx == 0:
			if !r.prompt.TwoLine {
				r.out.Write(r.prompt.Text)
			}
			r.out.Write(r.prompt.Marker)
		case info.IsWrap:
			r.out.Write(r.prompt.Continuation)
		default:
			r.out.WriteN(spaces, sbuf.DisplayWidth(r.prompt.Continuation))
		}
		r.out.WriteFormattedN(view[info.Start:info.Start+info.Len], viewAttrs[info.Start:info.Start+info.Len], info.Len)
		if info.IsWrap {
			r.out.Write(wrapGlyph)
		}
		r.out.ClearToEndOfLine()
		if rowIdx != rowsTotal-1 {
			r.out.Write("\n")
		}
	})

	if extra != "" {
		r.out.Write("\n")
		r.out.Write(extra)
		r.out.ClearToEndOfLine()
	}

	// step 11: clear stale trailing rows from the previous, taller frame.
	if rowsTotal < st.CurRows {
		for i := rowsTotal; i < st.CurRows; i++ {
			r.out.Write("\n")
			r.out.ClearLine()
		}
		for i := rowsTotal; i < st.CurRows; i++ {
			r.out.Up(1)
		}
	}

	// step 12: move cursor back to (cursor_row, cursor_col + prompt_offset).
	r.out.StartOfLine()
	lastRow := rowsTotal - 1
	if lastRow > termh-1 && termh > 0 {
		lastRow = termh - 1
	}
	r.out.Up(lastRow - (cursorRow - windowStart))
	r.out.Right(cursorCol)

	r.out.Flush()
	r.out.SetBufferMode(false)

	return rowsTotal, cursorRow - windowStart
}

const spaces = "                                                                "
const wrapGlyph = "↵"
