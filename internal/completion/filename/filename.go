// Package filename implements the filename completer (spec.md §4.6),
// ported from jorbakk/repline's completers.c (its directory-listing color
// logic is out of scope; the core only needs the word/prefix extraction
// and longest-common-prefix auto-fill).
package filename

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ovity/goline/internal/completion"
)

// Buffer is the surface this completer needs from the input buffer.
type Buffer interface {
	completion.Buffer
	Len() int
}

// ReadDir enumerates directory entries; overridable for tests and for
// callers that want a virtual filesystem. Defaults to os.ReadDir.
type ReadDir func(dir string) ([]os.DirEntry, error)

// Complete extracts the filesystem word around pos, enumerates dirname's
// entries matching the prefix, records the cut range on store, and
// auto-prefills the longest common prefix into buf, per spec.md §4.6
// steps 1-6. readDir defaults to os.ReadDir when nil.
func Complete(buf Buffer, pos int, store *completion.Store, budget int, readDir ReadDir) int {
	if readDir == nil {
		readDir = func(dir string) ([]os.DirEntry, error) { return os.ReadDir(dir) }
	}

	raw := buf.RawString()
	wordStart, wordEnd := wordBounds(raw, pos)
	word := raw[wordStart:wordEnd]

	sep := strings.LastIndexAny(word, "/\\")
	fnameStart := wordStart
	fnamePrefix := word
	dirname := "."
	if sep >= 0 {
		fnameStart = wordStart + sep + 1
		fnamePrefix = word[sep+1:]
		dirname = word[:sep]
		if dirname == "" {
			dirname = "/"
		}
	}
	cutStart := fnameStart
	cutStop := wordEnd
	store.Reset(cutStart, cutStop, budget)

	entries, err := readDir(dirname)
	if err != nil {
		// spec.md §7: directory enumeration failure is treated as empty.
		return pos
	}

	lcp := ""
	haveLCP := false
	for _, ent := range entries {
		name := ent.Name()
		if name == "." || name == ".." {
			continue
		}
		if !strings.HasPrefix(name, fnamePrefix) {
			continue
		}
		display := name
		isDir := ent.IsDir()
		if !isDir {
			if info, statErr := os.Stat(filepath.Join(dirname, name)); statErr == nil && info.IsDir() {
				isDir = true
			}
		}
		if isDir {
			display += string(filepath.Separator)
		}
		replacement := display
		if strings.ContainsFunc(display, unicode.IsSpace) {
			replacement = "'" + display + "'"
		}
		store.Add(replacement, display, "")

		if !haveLCP {
			lcp = display
			haveLCP = true
		} else {
			lcp = commonPrefix(lcp, display)
		}
	}

	if haveLCP && len(lcp) > len(fnamePrefix) {
		extra := lcp[len(fnamePrefix):]
		newPos := buf.InsertAt(pos, extra)
		store.CutStop = cutStop + len(extra)
		return newPos
	}
	return pos
}

// wordBounds finds the whitespace-delimited word containing pos, searching
// both directions from pos (spec.md §4.6 step 1).
func wordBounds(s string, pos int) (start, end int) {
	if pos > len(s) {
		pos = len(s)
	}
	start = pos
	for start > 0 && !unicode.IsSpace(rune(s[start-1])) {
		start--
	}
	end = pos
	for end < len(s) && !unicode.IsSpace(rune(s[end])) {
		end++
	}
	return start, end
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
