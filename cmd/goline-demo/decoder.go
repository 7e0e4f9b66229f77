package main

import (
	"bufio"
	"io"
	"time"
	"unicode/utf8"

	"github.com/ovity/goline/internal/keys"
	"github.com/ovity/goline/internal/termio"
)

// ttyDecoder is a best-effort raw-ASCII/CSI decoder satisfying keys.Reader,
// scoped exactly as spec.md §1 draws the line for a demo: it only decodes
// the common arrow/Home/End/Delete/PageUp/PageDown/Shift-Tab/F1 escape
// sequences needed to exercise the core, matching the teacher's internal/interactive/keys_csi.go boundary —
// full escape-sequence decoding stays out of the core's scope.
type ttyDecoder struct {
	r      *bufio.Reader
	fd     uintptr
	pushed []keys.Event
}

func newTTYDecoder(r io.Reader, fd uintptr) *ttyDecoder {
	return &ttyDecoder{r: bufio.NewReader(r), fd: fd}
}

func (d *ttyDecoder) Pushback(ev keys.Event) {
	d.pushed = append([]keys.Event{ev}, d.pushed...)
}

func (d *ttyDecoder) ReadTimeout(ms int) (keys.Event, bool, error) {
	if len(d.pushed) > 0 {
		ev, err := d.ReadBlocking()
		return ev, true, err
	}
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	for {
		n, err := termio.PendingInput(d.fd)
		if err != nil {
			return keys.Event{}, false, err
		}
		if n > 0 || d.r.Buffered() > 0 {
			ev, err := d.ReadBlocking()
			return ev, true, err
		}
		if time.Now().After(deadline) {
			return keys.Event{}, false, nil
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (d *ttyDecoder) ReadBlocking() (keys.Event, error) {
	if len(d.pushed) > 0 {
		ev := d.pushed[0]
		d.pushed = d.pushed[1:]
		return ev, nil
	}

	b, err := d.r.ReadByte()
	if err != nil {
		return keys.Event{}, err
	}

	switch b {
	case 0x1b:
		return d.decodeEscape()
	case '\r', '\n':
		return keys.Event{Code: keys.CodeEnter}, nil
	case 0x7f, 0x08:
		return keys.Event{Code: keys.CodeBackspace}, nil
	case '\t':
		return keys.Event{Code: keys.CodeTab}, nil
	}
	if b < 0x20 {
		return keys.Event{Rune: rune(b), Mods: keys.WithCtrl}, nil
	}
	if b < 0x80 {
		return keys.Event{Rune: rune(b)}, nil
	}

	// Multi-byte UTF-8 rune: b is the lead byte, already consumed.
	n := utf8RuneLen(b)
	buf := make([]byte, n)
	buf[0] = b
	for i := 1; i < n; i++ {
		nb, err := d.r.ReadByte()
		if err != nil {
			return keys.Event{}, err
		}
		buf[i] = nb
	}
	r, _ := utf8.DecodeRune(buf)
	return keys.Event{Rune: r}, nil
}

func utf8RuneLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// decodeEscape handles a lone Escape, an Alt-modified key (ESC immediately
// followed by a printable byte), and the CSI/SS3 arrow/Home/End/Delete/
// PageUp/PageDown/Shift-Tab/F1 sequences (`ESC [ A/B/C/D/H/F/3~/5~/6~/Z`,
// `ESC O P`).
func (d *ttyDecoder) decodeEscape() (keys.Event, error) {
	if d.r.Buffered() == 0 {
		return keys.Event{Code: keys.CodeEscape}, nil
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return keys.Event{}, err
	}
	if b != '[' && b != 'O' {
		if b < 0x80 {
			return keys.Event{Rune: rune(b), Mods: keys.WithAlt}, nil
		}
		return keys.Event{Code: keys.CodeEscape}, nil
	}

	c, err := d.r.ReadByte()
	if err != nil {
		return keys.Event{}, err
	}
	switch c {
	case 'A':
		return keys.Event{Code: keys.CodeUp}, nil
	case 'B':
		return keys.Event{Code: keys.CodeDown}, nil
	case 'C':
		return keys.Event{Code: keys.CodeRight}, nil
	case 'D':
		return keys.Event{Code: keys.CodeLeft}, nil
	case 'H':
		return keys.Event{Code: keys.CodeHome}, nil
	case 'F':
		return keys.Event{Code: keys.CodeEnd}, nil
	case '3':
		if nb, err := d.r.ReadByte(); err == nil && nb != '~' {
			d.pushed = append(d.pushed, keys.Event{Rune: rune(nb)})
		}
		return keys.Event{Code: keys.CodeDelete}, nil
	case '5':
		_, _ = d.r.ReadByte() // trailing '~'
		return keys.Event{Code: keys.CodePageUp}, nil
	case '6':
		_, _ = d.r.ReadByte() // trailing '~'
		return keys.Event{Code: keys.CodePageDown}, nil
	case 'Z':
		return keys.Event{Code: keys.CodeShiftTab}, nil
	case 'P':
		return keys.Event{Code: keys.CodeF1}, nil
	default:
		return keys.Event{Code: keys.CodeEscape}, nil
	}
}
