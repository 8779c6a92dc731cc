package nfa

import (
	"fmt"

	"github.com/coregx/vimregex/editor"
)

// MatchContext is what a matcher may look at: the text, the captures of the
// current search path, case sensitivity and the cursors that are still
// possible on this path.
type MatchContext struct {
	Text            editor.Provider
	Groups          *Groups
	CaseInsensitive bool

	// Cursors holds the cursor offsets the current path is still consistent
	// with. Cursor-relative matchers narrow it.
	Cursors []int
}

// Verdict is the outcome of a single matcher test.
type Verdict struct {
	ok       bool
	consumed int

	// cursors, when non-nil, replaces the possible-cursor set for the rest
	// of the path
	cursors []int
}

// Failure is the verdict of a matcher that does not accept at the index.
var Failure = Verdict{}

// Success returns an accepting verdict that consumes n characters.
func Success(n int) Verdict {
	return Verdict{ok: true, consumed: n}
}

// SuccessWithCursors returns a zero-width accepting verdict that narrows the
// possible cursors to cursors.
func SuccessWithCursors(cursors []int) Verdict {
	return Verdict{ok: true, cursors: cursors}
}

// OK reports whether the transition may be taken.
func (v Verdict) OK() bool {
	return v.ok
}

// Consumed returns how many characters the transition consumes.
func (v Verdict) Consumed() int {
	return v.consumed
}

// Cursors returns the narrowed cursor set, or nil when unchanged.
func (v Verdict) Cursors() []int {
	return v.cursors
}

// Matcher decides whether a transition may be taken at an index.
//
// Implementations are immutable and safe for concurrent use. They read the
// Groups in the context but never write them; zero-width matchers return
// Success(0).
type Matcher interface {
	Match(ctx *MatchContext, index int) Verdict
}

// backtrackingMatcher is implemented by matchers whose outcome depends on
// the path taken so far in a way a forward state-set scan cannot track.
type backtrackingMatcher interface {
	RequiresBacktracking() bool
}

func requiresBacktracking(m Matcher) bool {
	bm, ok := m.(backtrackingMatcher)
	return ok && bm.RequiresBacktracking()
}

// Relation compares an index-derived quantity with a reference value.
type Relation uint8

const (
	// At requires equality
	At Relation = iota
	// Before requires the quantity to be smaller than the reference
	Before
	// After requires the quantity to be larger than the reference
	After
)

// String returns a human-readable representation of the Relation
func (r Relation) String() string {
	switch r {
	case At:
		return "At"
	case Before:
		return "Before"
	case After:
		return "After"
	default:
		return fmt.Sprintf("Relation(%d)", r)
	}
}

func (r Relation) holds(value, ref int) bool {
	switch r {
	case Before:
		return value < ref
	case After:
		return value > ref
	default:
		return value == ref
	}
}

// Epsilon is an unconditional zero-width transition.
type Epsilon struct{}

// Match always succeeds without consuming.
func (Epsilon) Match(*MatchContext, int) Verdict {
	return Success(0)
}
