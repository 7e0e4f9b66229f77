package sbuf

import "unicode/utf8"

// RowCol describes a cursor position in the rendered layout of a buffer.
type RowCol struct {
	Row, Col       int
	First, Last    bool // first/last code point on its row
	RowCount       int  // total rows in the layout pos was computed under
}

// RowInfo describes one visual row produced by ForEachRow.
type RowInfo struct {
	Start, Len int  // byte range [Start, Start+Len) of the row's content
	StartCol   int  // column the row's content begins at (cpromptw on wraps)
	IsWrap     bool // true if this row is a continuation of a mid-line wrap
}

// Geometry computes row/column layout of the buffer's decoded (qUTF-8
// round-tripped) contents under a terminal width termw, a first-row prompt
// width promptw and a continuation-row prompt width cpromptw. A '\n' forces
// a new row; otherwise code points wrap when they would exceed termw.
type Geometry struct {
	Termw, PromptW, CPromptW int
}

// rowWalk replays the buffer's rows, invoking visit for each one. visit
// returns false to stop early.
func (g Geometry) rowWalk(s *Buffer, visit func(info RowInfo, rowIdx int) bool) {
	str := s.String()
	n := len(str)
	col := g.PromptW
	rowStart := 0
	rowIdx := 0
	isWrap := false

	emit := func(end int, wrap bool) bool {
		ok := visit(RowInfo{Start: rowStart, Len: end - rowStart, StartCol: startColFor(rowIdx, g), IsWrap: wrap}, rowIdx)
		rowIdx++
		rowStart = end
		return ok
	}

	i := 0
	for i < n {
		if str[i] == '\n' {
			if !emit(i+1, isWrap) {
				return
			}
			col = g.CPromptW
			isWrap = false
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(str[i:])
		w := RuneWidth(r)
		if g.Termw > 0 && col+w > g.Termw && col > startColFor(rowIdx, g) {
			if !emit(i, isWrap) {
				return
			}
			col = g.CPromptW
			isWrap = true
		}
		col += w
		i += size
	}
	visit(RowInfo{Start: rowStart, Len: n - rowStart, StartCol: startColFor(rowIdx, g), IsWrap: isWrap}, rowIdx)
}

func startColFor(rowIdx int, g Geometry) int {
	if rowIdx == 0 {
		return g.PromptW
	}
	return g.CPromptW
}

// ForEachRow iterates the rows of the current layout, calling fn for each.
func (g Geometry) ForEachRow(s *Buffer, fn func(info RowInfo)) {
	g.rowWalk(s, func(info RowInfo, _ int) bool {
		fn(info)
		return true
	})
}

// RowCount returns the number of rows the buffer occupies under this
// geometry.
func (g Geometry) RowCount(s *Buffer) int {
	n := 0
	g.ForEachRow(s, func(RowInfo) { n++ })
	if n == 0 {
		n = 1
	}
	return n
}

// GetRCAtPos returns the row/column of byte offset pos plus the total row
// count of the layout.
func (g Geometry) GetRCAtPos(s *Buffer, pos int) RowCol {
	str := s.String()
	if pos < 0 {
		pos = 0
	}
	if pos > len(str) {
		pos = len(str)
	}

	var rc RowCol
	found := false
	total := 0
	g.rowWalk(s, func(info RowInfo, rowIdx int) bool {
		total++
		end := info.Start + info.Len
		if !found && pos >= info.Start && pos <= end {
			col := info.StartCol
			i := info.Start
			for i < pos {
				r, size := utf8.DecodeRuneInString(str[i:])
				col += RuneWidth(r)
				i += size
			}
			rc = RowCol{Row: rowIdx, Col: col, First: pos == info.Start, Last: pos == end}
			found = true
		}
		return true
	})
	rc.RowCount = total
	return rc
}

// GetPosAtRC returns the byte offset at, or just before, the visual
// position (row, col).
func (g Geometry) GetPosAtRC(s *Buffer, row, col int) int {
	str := s.String()
	pos := len(str)
	g.rowWalk(s, func(info RowInfo, rowIdx int) bool {
		if rowIdx != row {
			return true
		}
		c := info.StartCol
		i := info.Start
		end := info.Start + info.Len
		for i < end {
			if c >= col {
				pos = i
				return false
			}
			r, size := utf8.DecodeRuneInString(str[i:])
			c += RuneWidth(r)
			i += size
		}
		pos = end
		return false
	})
	return pos
}

// Rewrapped recomputes the row count and the row/col of pos as if the
// layout were redrawn with a new terminal width, without mutating the
// buffer or performing any actual render. Used to adjust cur_rows across a
// RESIZE event (spec.md §4.1 get_wrapped_rc_at_pos).
func Rewrapped(s *Buffer, promptw, cpromptw, newTermw, pos int) (rc RowCol) {
	g := Geometry{Termw: newTermw, PromptW: promptw, CPromptW: cpromptw}
	return g.GetRCAtPos(s, pos)
}
