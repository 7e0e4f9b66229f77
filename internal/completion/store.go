// Package completion implements the completion store (spec.md §4.5): an
// ordered candidate list with a cut range into the input buffer, sorting,
// and apply. Ported from the newest of jorbakk/repline's three
// completions.c variants (the word-around-cursor + cut-range one; spec.md
// §9 notes the older delete_before/delete_after forms are superseded).
package completion

import "strings"

// Elem is one completion candidate.
type Elem struct {
	Replacement string
	Display     string // empty means "use Replacement"
	Help        string
}

// DisplayText returns Display if set, otherwise Replacement.
func (e Elem) DisplayText() string {
	if e.Display != "" {
		return e.Display
	}
	return e.Replacement
}

// Store holds completion candidates generated for one Tab press.
type Store struct {
	elems        []Elem
	CutStart     int
	CutStop      int
	maxRemaining int
	moreAvail    bool
}

// New returns a store with the given provider budget (spec.md's
// max_remaining). A budget of 0 admits no candidates.
func New(budget int) *Store {
	return &Store{maxRemaining: budget}
}

// Reset clears the store for a new completion generation, setting the cut
// range and provider budget.
func (s *Store) Reset(cutStart, cutStop, budget int) {
	s.elems = s.elems[:0]
	s.CutStart = cutStart
	s.CutStop = cutStop
	s.maxRemaining = budget
	s.moreAvail = false
}

// Len returns the number of candidates currently stored.
func (s *Store) Len() int { return len(s.elems) }

// Elems returns the candidate slice (read-only by convention).
func (s *Store) Elems() []Elem { return s.elems }

// MoreAvailable reports whether the provider stopped only because the
// budget ran out, not because it was exhausted (spec.md §7).
func (s *Store) MoreAvailable() bool { return s.moreAvail }

// Add appends a candidate if the budget allows and no existing element has
// the same Replacement; the budget is decremented unconditionally,
// matching spec.md §4.5 exactly.
func (s *Store) Add(replacement, display, help string) {
	if s.maxRemaining > 0 {
		for _, e := range s.elems {
			if e.Replacement == replacement {
				s.maxRemaining--
				return
			}
		}
		s.elems = append(s.elems, Elem{Replacement: replacement, Display: display, Help: help})
		s.maxRemaining--
		return
	}
	s.moreAvail = true
}

// Sort orders candidates by case-insensitive ASCII comparison on
// Replacement.
func (s *Store) Sort() {
	// insertion sort: completion lists are small (tens of entries) and this
	// keeps the comparison logic easy to read, matching the simplicity of
	// the C source's sort callback.
	for i := 1; i < len(s.elems); i++ {
		for j := i; j > 0 && lessFold(s.elems[j].Replacement, s.elems[j-1].Replacement); j-- {
			s.elems[j], s.elems[j-1] = s.elems[j-1], s.elems[j]
		}
	}
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// Buffer is the minimal surface Apply needs from the input buffer, so this
// package doesn't import sbuf directly and stays a pure data structure.
type Buffer interface {
	RawString() string
	DeleteFromTo(a, b int)
	InsertAt(pos int, s string) int
}

// Apply replaces [CutStart, CutStop) in buf with the chosen candidate's
// replacement and returns the new cursor position. If the span already
// equals the replacement byte-for-byte, it reports "no change" (changed
// == false) and does not mutate buf, per spec.md §4.5.
func (s *Store) Apply(index int, buf Buffer) (newPos int, changed bool) {
	if index < 0 || index >= len(s.elems) {
		return s.CutStop, false
	}
	elem := s.elems[index]
	raw := buf.RawString()
	n := s.CutStop - s.CutStart
	if n == len(elem.Replacement) && s.CutStart >= 0 && s.CutStop <= len(raw) && raw[s.CutStart:s.CutStop] == elem.Replacement {
		return s.CutStop, false
	}
	buf.DeleteFromTo(s.CutStart, s.CutStop)
	newPos = buf.InsertAt(s.CutStart, elem.Replacement)
	return newPos, true
}
