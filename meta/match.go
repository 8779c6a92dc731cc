package meta

import (
	"fmt"

	"github.com/coregx/vimregex/nfa"
)

// Match is a successful search result: the overall range and the capture
// groups recorded on the winning path.
//
// Example:
//
//	m := engine.FindAt(text, 0, false)
//	if m != nil {
//	    fmt.Println(m.Start(), m.End(), m.Text())
//	}
type Match struct {
	whole  nfa.Group
	groups *nfa.Groups
}

// NewMatch wraps the groups of a Matched result. It returns nil when the
// result is not Matched.
func NewMatch(r nfa.Result) *Match {
	whole, ok := r.Whole()
	if !ok {
		return nil
	}
	return &Match{whole: whole, groups: r.Groups()}
}

// Start returns the inclusive start offset of the match.
func (m *Match) Start() int {
	return m.whole.Start
}

// End returns the exclusive end offset of the match.
func (m *Match) End() int {
	return m.whole.End
}

// Len returns the length of the match in characters.
func (m *Match) Len() int {
	return m.whole.Len()
}

// Text returns the matched text.
func (m *Match) Text() string {
	return m.whole.Text
}

// IsEmpty reports whether the match has zero length.
func (m *Match) IsEmpty() bool {
	return m.whole.Start == m.whole.End
}

// Group returns capture group n. Group 0 is the whole match.
func (m *Match) Group(n int) (nfa.Group, bool) {
	return m.groups.Get(n)
}

// NumGroups returns the number of group slots, including group 0.
func (m *Match) NumGroups() int {
	return m.groups.Count()
}

// String returns a human-readable representation of the match.
func (m *Match) String() string {
	return fmt.Sprintf("[%d:%d] %q", m.whole.Start, m.whole.End, m.whole.Text)
}
