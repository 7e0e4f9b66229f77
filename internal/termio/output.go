package termio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ovity/goline/internal/attrbuf"
	"github.com/ovity/goline/pkg/ui"
)

// Output is the terminal capability surface the editor core uses (spec.md
// §6): writes, cursor movement, line clearing, buffered-output mode, and
// attribute (SGR) control. Grounded on pkg/ui/terminal.go's escape-sequence
// helpers and pkg/ui/colors.go's palette, generalized from one-shot
// fmt.Fprint calls into a buffered writer the renderer can flush once per
// frame.
type Output struct {
	w               io.Writer
	bw              *bufio.Writer
	buffered        bool
	width, height   int
	fallbackW       int
	fallbackH       int
	dimensionLookup func() (w, h int)
}

// NewOutput wraps w. dimensionLookup supplies GetWidth/GetHeight/UpdateDim;
// when nil, defaults to ui.Dimensions against w if it is an *os.File.
func NewOutput(w io.Writer, fallbackWidth, fallbackHeight int, dimensionLookup func() (int, int)) *Output {
	o := &Output{
		w:               w,
		fallbackW:       fallbackWidth,
		fallbackH:       fallbackHeight,
		dimensionLookup: dimensionLookup,
	}
	o.UpdateDim()
	return o
}

func (o *Output) target() io.Writer {
	if o.buffered {
		return o.bw
	}
	return o.w
}

// Write emits s verbatim.
func (o *Output) Write(s string) { _, _ = io.WriteString(o.target(), s) }

// WriteN emits the first n bytes of s (or all of s if shorter).
func (o *Output) WriteN(s string, n int) {
	if n < len(s) {
		s = s[:n]
	}
	o.Write(s)
}

// Writeln emits s followed by a newline.
func (o *Output) Writeln(s string) { o.Write(s); o.Write("\n") }

// StartOfLine moves the cursor to column 0 of the current row.
func (o *Output) StartOfLine() { o.Write("\r") }

// Up moves the cursor up n rows (n <= 0 is a no-op).
func (o *Output) Up(n int) { o.move(n, 'A') }

// Down moves the cursor down n rows.
func (o *Output) Down(n int) { o.move(n, 'B') }

// Left moves the cursor left n columns.
func (o *Output) Left(n int) { o.move(n, 'D') }

// Right moves the cursor right n columns.
func (o *Output) Right(n int) { o.move(n, 'C') }

func (o *Output) move(n int, code byte) {
	if n <= 0 {
		return
	}
	o.Write("\x1b[" + strconv.Itoa(n) + string(code))
}

// ClearLine clears the entire current line.
func (o *Output) ClearLine() { o.Write("\x1b[2K") }

// ClearToEndOfLine clears from the cursor to the end of the current line.
func (o *Output) ClearToEndOfLine() { o.Write("\x1b[K") }

// SetBufferMode enters or exits buffered-output mode (spec.md §4.7 step 8 /
// §5 "buffered output mode is entered at the start of every render"). On
// exiting, pending writes flush automatically.
func (o *Output) SetBufferMode(on bool) {
	if on == o.buffered {
		return
	}
	if on {
		o.bw = bufio.NewWriter(o.w)
		o.buffered = true
		return
	}
	_ = o.bw.Flush()
	o.buffered = false
	o.bw = nil
}

// Flush forces any buffered writes out immediately.
func (o *Output) Flush() {
	if o.buffered {
		_ = o.bw.Flush()
	}
}

// GetWidth returns the last-known terminal width in columns.
func (o *Output) GetWidth() int { return o.width }

// GetHeight returns the last-known terminal height in rows.
func (o *Output) GetHeight() int { return o.height }

// UpdateDim re-queries terminal dimensions, used on RESIZE (spec.md §4.8).
func (o *Output) UpdateDim() {
	if o.dimensionLookup != nil {
		o.width, o.height = o.dimensionLookup()
		return
	}
	o.width, o.height = ui.Dimensions(o.w, o.fallbackW, o.fallbackH)
}

// Beep emits the terminal bell (spec.md §7: failures reduce to "beep and
// repaint").
func (o *Output) Beep() { o.Write("\a") }

// SetAttr emits the SGR sequence for attr, resetting first so tri-state
// "off" fields are honored (repline always resets before setting, per
// attr.c's attr_set).
func (o *Output) SetAttr(attr attrbuf.Attr) {
	if attr.IsNone() {
		o.AttrReset()
		return
	}
	var codes []string
	if fg := attr.Fg(); fg != attrbuf.ColorDefault {
		codes = append(codes, "38;5;"+strconv.Itoa(int(fg)))
	}
	if bg := attr.Bg(); bg != attrbuf.ColorDefault {
		codes = append(codes, "48;5;"+strconv.Itoa(int(bg)))
	}
	if attr.Bold() == attrbuf.TriOn {
		codes = append(codes, "1")
	}
	if attr.Italic() == attrbuf.TriOn {
		codes = append(codes, "3")
	}
	if attr.Underline() == attrbuf.TriOn {
		codes = append(codes, "4")
	}
	if attr.Reverse() == attrbuf.TriOn {
		codes = append(codes, "7")
	}
	if len(codes) == 0 {
		o.AttrReset()
		return
	}
	o.Write("\x1b[0;" + strings.Join(codes, ";") + "m")
}

// AttrReset clears all SGR attributes back to terminal default.
func (o *Output) AttrReset() { o.Write("\x1b[0m") }

// WriteFormattedN writes the first n bytes of s, applying attrs[i] before
// byte i whenever it differs from the previously applied attribute
// (starting from attrbuf.None()), then resets at the end if any attribute
// was applied. attrs shorter than n is treated as attrbuf.None() for
// the remaining bytes.
func (o *Output) WriteFormattedN(s string, attrs []attrbuf.Attr, n int) {
	if n > len(s) {
		n = len(s)
	}
	cur := attrbuf.None()
	applied := false
	for i := 0; i < n; i++ {
		a := attrbuf.None()
		if i < len(attrs) {
			a = attrs[i]
		}
		if !a.Equal(cur) {
			o.SetAttr(a)
			cur = a
			applied = true
		}
		o.Write(s[i : i+1])
	}
	if applied {
		o.AttrReset()
	}
}
