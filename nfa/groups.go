package nfa

import (
	"github.com/coregx/vimregex/editor"
)

// Group is a finished capture: the half-open range [Start, End) and the text
// it covered when it was recorded.
type Group struct {
	Start int
	End   int
	Text  string
}

// Len returns the length of the group in characters.
func (g Group) Len() int {
	return g.End - g.Start
}

// groupSlot tracks one group number. An open start is kept apart from the
// last finished range so a backreference keeps seeing the most recent
// completed capture while the group is being re-entered.
type groupSlot struct {
	open     int
	isOpen   bool
	done     bool
	finished Group
}

// Groups is the match group collection of one simulation.
//
// Group 0 is the overall match. Updates overwrite (last write wins); a
// group's end is never recorded before its start.
//
// A Groups value is owned by a single simulation. The strategies clone it
// before writing whenever it may be shared between search paths.
type Groups struct {
	slots []groupSlot
}

// NewGroups creates an empty collection sized for count groups.
// The collection grows on demand, so count is only a hint.
func NewGroups(count int) *Groups {
	return &Groups{slots: make([]groupSlot, max(count, 1))}
}

func (g *Groups) slot(n int) *groupSlot {
	if n >= len(g.slots) {
		grown := make([]groupSlot, n+1)
		copy(grown, g.slots)
		g.slots = grown
	}
	return &g.slots[n]
}

// SetStart records that group n starts at index.
func (g *Groups) SetStart(n, index int) {
	if n < 0 {
		return
	}
	s := g.slot(n)
	s.open = index
	s.isOpen = true
}

// SetEnd closes group n at index and materializes its text.
// It is ignored when the group has no open start or index precedes it.
func (g *Groups) SetEnd(n, index int, text editor.Provider) {
	if n < 0 || n >= len(g.slots) {
		return
	}
	s := &g.slots[n]
	if !s.isOpen || index < s.open {
		return
	}
	s.finished = Group{Start: s.open, End: index, Text: editor.Slice(text, s.open, index)}
	s.done, s.isOpen = true, false
}

// SetForceEnd closes group n at index even though its natural end marker
// was not reached. A group that was never started becomes an empty capture
// at index; a group that already finished and was not reopened is kept.
func (g *Groups) SetForceEnd(n, index int, text editor.Provider) {
	if n < 0 {
		return
	}
	s := g.slot(n)
	switch {
	case s.isOpen && index >= s.open:
		s.finished = Group{Start: s.open, End: index, Text: editor.Slice(text, s.open, index)}
		s.done, s.isOpen = true, false
	case !s.isOpen && !s.done:
		s.open = index
		s.finished = Group{Start: index, End: index}
		s.done = true
	}
}

// Get returns group n if it has a finished range.
func (g *Groups) Get(n int) (Group, bool) {
	if g == nil || n < 0 || n >= len(g.slots) || !g.slots[n].done {
		return Group{}, false
	}
	return g.slots[n].finished, true
}

// Count returns one more than the highest group number tracked.
func (g *Groups) Count() int {
	if g == nil {
		return 0
	}
	return len(g.slots)
}

// Clone returns an independent copy.
func (g *Groups) Clone() *Groups {
	slots := make([]groupSlot, len(g.slots))
	copy(slots, g.slots)
	return &Groups{slots: slots}
}

// apply writes the capture markers of s at index.
func (g *Groups) apply(s *State, index int, text editor.Provider) {
	for _, n := range s.startCapture {
		g.SetStart(n, index)
	}
	for _, n := range s.endCapture {
		g.SetEnd(n, index, text)
	}
	for _, n := range s.forceEndCapture {
		g.SetForceEnd(n, index, text)
	}
}

// visit returns the collection to continue with after entering s: g itself
// when s writes nothing, otherwise a modified clone.
func (g *Groups) visit(s *State, index int, text editor.Provider) *Groups {
	if !s.hasCaptures() {
		return g
	}
	c := g.Clone()
	c.apply(s, index, text)
	return c
}

// ensureWhole records group 0 as [start, end) when the automaton carries no
// markers for it.
func (g *Groups) ensureWhole(start, end int, text editor.Provider) {
	if _, ok := g.Get(0); ok {
		return
	}
	s := g.slot(0)
	s.open = start
	s.finished = Group{Start: start, End: end, Text: editor.Slice(text, start, end)}
	s.done = true
}
