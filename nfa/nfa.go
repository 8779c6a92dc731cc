package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state within its automaton.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Transition is an edge of the automaton. The matcher decides whether the
// edge may be taken at a given index and how many characters it consumes.
// A transition whose matcher consumes nothing is an epsilon transition.
type Transition struct {
	Matcher Matcher
	Next    StateID
}

// Assertion is a lookaround: a nested automaton that lives in the same state
// table as the outer one, identified by its own start/accept pair.
type Assertion struct {
	Start  StateID
	Accept StateID

	// Ahead selects lookahead (true) or lookbehind (false).
	Ahead bool

	// Positive is the polarity: the assertion passes when the nested
	// automaton's match result equals Positive.
	Positive bool

	// Consume advances the outer scan to the end of the nested match when a
	// positive lookahead succeeds. Used by Vim's \@> and \& style constructs.
	Consume bool

	// Limit bounds how far a lookbehind scans backwards, in characters.
	// 0 means unbounded, but a lookbehind never crosses more than one line
	// boundary backwards.
	Limit int
}

// State is a single NFA node. The capture sets are applied when the state is
// visited, before its assertion and transitions are considered.
type State struct {
	id          StateID
	transitions []Transition
	assertion   *Assertion

	startCapture    []int
	endCapture      []int
	forceEndCapture []int

	// lazy marks states generated for Vim's lazy repetition \{-n,m}
	lazy bool
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Transitions returns the outgoing transitions in declaration order.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Assertion returns the nested lookaround, or nil.
func (s *State) Assertion() *Assertion {
	return s.assertion
}

// StartCaptures returns the groups whose start is recorded at this state.
func (s *State) StartCaptures() []int {
	return s.startCapture
}

// EndCaptures returns the groups whose end is recorded at this state.
func (s *State) EndCaptures() []int {
	return s.endCapture
}

// ForceEndCaptures returns the groups that are force-closed at this state.
func (s *State) ForceEndCaptures() []int {
	return s.forceEndCapture
}

// IsLazy reports whether the state belongs to a lazy repetition.
func (s *State) IsLazy() bool {
	return s.lazy
}

// hasCaptures reports whether visiting the state writes any group.
func (s *State) hasCaptures() bool {
	return len(s.startCapture) > 0 || len(s.endCapture) > 0 || len(s.forceEndCapture) > 0
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	extra := ""
	if s.assertion != nil {
		dir := "behind"
		if s.assertion.Ahead {
			dir = "ahead"
		}
		extra = fmt.Sprintf(", assert %s positive=%v [%d..%d]", dir, s.assertion.Positive,
			s.assertion.Start, s.assertion.Accept)
	}
	if s.lazy {
		extra += ", lazy"
	}
	return fmt.Sprintf("State(%d, %d transitions%s)", s.id, len(s.transitions), extra)
}

// NFA is a compiled automaton ready for simulation.
// It is immutable after Builder.Build and safe for concurrent use.
type NFA struct {
	// states contains all NFA states indexed by StateID, including the
	// states of nested assertion automata
	states []State

	start  StateID
	accept StateID

	// captureCount is a sizing hint: the number of groups including group 0
	captureCount int

	// prefixLiterals, when set, promises that every match begins with one of
	// these strings (case-sensitively). Used for prefiltering searches.
	prefixLiterals []string

	// pattern is the source text, kept for diagnostics only
	pattern string
}

// Start returns the start state of the top-level automaton.
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the accept state of the top-level automaton.
func (n *NFA) Accept() StateID {
	return n.accept
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// CaptureCount returns the number of capture groups, including group 0.
func (n *NFA) CaptureCount() int {
	return n.captureCount
}

// PrefixLiterals returns the literals every match is declared to start with.
func (n *NFA) PrefixLiterals() []string {
	return n.prefixLiterals
}

// Pattern returns the source pattern recorded at build time, if any.
func (n *NFA) Pattern() string {
	return n.pattern
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	if n.pattern != "" {
		return fmt.Sprintf("NFA{pattern: %q, states: %d, start: %d, accept: %d}",
			n.pattern, len(n.states), n.start, n.accept)
	}
	return fmt.Sprintf("NFA{states: %d, start: %d, accept: %d}", len(n.states), n.start, n.accept)
}
