package history

import (
	"bufio"
	"os"
	"strings"
)

// Memory is an in-process History backed optionally by a flat file,
// mirroring jorbakk/repline's history.c: most-recent-first, with duplicate
// suppression (pushing an entry equal to the current most-recent entry is
// a no-op; pushing a value seen earlier moves it to the front).
type Memory struct {
	entries         []string // most recent first
	maxEntries      int
	allowDuplicates bool
	path            string
}

// MemoryOption configures a Memory history on construction.
type MemoryOption func(*Memory)

// WithMaxEntries caps the number of retained entries (0 = unlimited).
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) { m.maxEntries = n }
}

// WithDuplicates allows consecutive or historical duplicate entries to be
// pushed as distinct entries instead of being deduplicated/reordered.
func WithDuplicates(allow bool) MemoryOption {
	return func(m *Memory) { m.allowDuplicates = allow }
}

// NewMemory returns an empty in-process history.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{}
	for _, o := range opts {
		o(m)
	}
	return m
}

// LoadFile seeds the history from a flat file, one entry per line,
// oldest-first, mirroring history_load_from. A missing file is not an
// error — the history view's "filesystem enumeration failure" behavior
// (spec.md §7) is to treat it as empty.
func (m *Memory) LoadFile(path string) error {
	m.path = path
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	// file is oldest-first; m.entries is most-recent-first.
	m.entries = m.entries[:0]
	for i := len(lines) - 1; i >= 0; i-- {
		m.entries = append(m.entries, lines[i])
	}
	m.clampAndDedup()
	return nil
}

// SaveFile writes the history back out, oldest-first, to the path given to
// LoadFile (or path if non-empty).
func (m *Memory) SaveFile(path string) error {
	if path != "" {
		m.path = path
	}
	if m.path == "" {
		return nil
	}
	f, err := os.Create(m.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	w := bufio.NewWriter(f)
	for i := len(m.entries) - 1; i >= 0; i-- {
		if _, err := w.WriteString(m.entries[i] + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// CountWithPrefix implements History.
func (m *Memory) CountWithPrefix(prefix string) int {
	n := 0
	for _, e := range m.entries {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

// GetWithPrefix implements History.
func (m *Memory) GetWithPrefix(n int, prefix string) (string, bool) {
	if n < 1 {
		return "", false
	}
	count := 0
	for _, e := range m.entries {
		if strings.HasPrefix(e, prefix) {
			count++
			if count == n {
				return e, true
			}
		}
	}
	return "", false
}

// Push implements History, with repline's dedup semantics: re-pushing the
// current most-recent entry is a no-op; re-pushing any other previously
// seen entry removes the stale copy and reinserts it at the front.
func (m *Memory) Push(entry string) {
	if entry == "" {
		return
	}
	if !m.allowDuplicates {
		if len(m.entries) > 0 && m.entries[0] == entry {
			return
		}
		for i, e := range m.entries {
			if e == entry {
				m.entries = append(m.entries[:i], m.entries[i+1:]...)
				break
			}
		}
	}
	m.entries = append([]string{entry}, m.entries...)
	m.clampAndDedup()
}

// RemoveLast removes the most-recently pushed entry (repline's
// history_remove_last, used to drop a line re-submitted verbatim).
func (m *Memory) RemoveLast() {
	if len(m.entries) == 0 {
		return
	}
	m.entries = m.entries[1:]
}

// Clear empties the history.
func (m *Memory) Clear() { m.entries = nil }

func (m *Memory) clampAndDedup() {
	if m.maxEntries > 0 && len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
}
