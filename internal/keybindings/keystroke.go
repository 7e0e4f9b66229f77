package keybindings

import (
	"fmt"
	"strings"

	"github.com/ovity/goline/internal/keys"
)

var codeNames = map[keys.Code]string{
	keys.CodeUp: "up", keys.CodeDown: "down", keys.CodeLeft: "left",
	keys.CodeRight: "right", keys.CodeHome: "home", keys.CodeEnd: "end",
	keys.CodePageUp: "pageup", keys.CodePageDown: "pagedown",
	keys.CodeDelete: "delete", keys.CodeBackspace: "backspace",
	keys.CodeTab: "tab", keys.CodeShiftTab: "shift+tab",
	keys.CodeEnter: "enter", keys.CodeEscape: "escape", keys.CodeF1: "f1",
}

var namesToCode = func() map[string]keys.Code {
	m := make(map[string]keys.Code, len(codeNames))
	for c, n := range codeNames {
		m[n] = c
	}
	return m
}()

// EncodeEvent renders ev as a human-readable chord string such as
// "ctrl+w", "alt+.", "tab", matching the teacher's KeyStroke.String() idiom
// but addressed at keys.Event instead of a raw escape-sequence kind.
func EncodeEvent(ev keys.Event) string {
	var parts []string
	if ev.Mods.Has(keys.WithAlt) {
		parts = append(parts, "alt")
	}
	if ev.Mods.Has(keys.WithShift) {
		parts = append(parts, "shift")
	}

	if ev.Code != keys.CodeNone {
		if ev.Mods.Has(keys.WithCtrl) {
			parts = append(parts, "ctrl")
		}
		name, ok := codeNames[ev.Code]
		if !ok {
			name = "unknown"
		}
		parts = append(parts, name)
		return strings.Join(parts, "+")
	}

	if ev.Mods.Has(keys.WithCtrl) && ev.Rune < 0x20 {
		// Ctrl events carry the control byte already applied (keys.Ctrl);
		// recover the letter for display.
		parts = append(parts, "ctrl", string(rune(ev.Rune+0x60)))
		return strings.Join(parts, "+")
	}
	parts = append(parts, string(ev.Rune))
	return strings.Join(parts, "+")
}

// DecodeEvent parses a chord string produced by EncodeEvent.
func DecodeEvent(s string) (keys.Event, error) {
	fields := strings.Split(s, "+")
	var ev keys.Event
	ctrl := false
	for i, f := range fields {
		last := i == len(fields)-1
		switch strings.ToLower(f) {
		case "ctrl":
			ev.Mods |= keys.WithCtrl
			ctrl = true
		case "alt", "meta":
			ev.Mods |= keys.WithAlt
		case "shift":
			ev.Mods |= keys.WithShift
		default:
			if !last {
				return keys.Event{}, fmt.Errorf("keybindings: unexpected chord segment %q in %q", f, s)
			}
			if code, ok := namesToCode[strings.ToLower(f)]; ok {
				if code == keys.CodeTab && ev.Mods.Has(keys.WithShift) {
					// "shift+tab" splits into a shift segment and "tab".
					code = keys.CodeShiftTab
					ev.Mods &^= keys.WithShift
				}
				ev.Code = code
				return ev, nil
			}
			r := []rune(f)
			if len(r) != 1 {
				return keys.Event{}, fmt.Errorf("keybindings: invalid key %q in chord %q", f, s)
			}
			if ctrl {
				extraMods := ev.Mods
				ev = keys.Ctrl(r[0])
				ev.Mods |= extraMods
			} else {
				ev.Rune = r[0]
			}
		}
	}
	return ev, nil
}
