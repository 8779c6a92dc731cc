package nfa

import (
	"fmt"

	"github.com/coregx/vimregex/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
// It is the boundary with the pattern compiler: states are added first and
// wired with transitions afterwards, so loops and forward references need
// no patching.
type Builder struct {
	states []State
	start  StateID
	accept StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
		accept: InvalidState,
	}
}

// AddState adds an empty state and returns its ID
func (b *Builder) AddState() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id})
	return id
}

// AddTransition appends a transition from -> next guarded by m.
// Declaration order is the priority order used by both strategies.
func (b *Builder) AddTransition(from StateID, m Matcher, next StateID) error {
	s, err := b.state(from)
	if err != nil {
		return err
	}
	if m == nil {
		return &BuildError{Message: "nil matcher", StateID: from}
	}
	s.transitions = append(s.transitions, Transition{Matcher: m, Next: next})
	return nil
}

// AddEpsilon appends a pass-through transition from -> next.
func (b *Builder) AddEpsilon(from, next StateID) error {
	return b.AddTransition(from, Epsilon{}, next)
}

// SetCaptures sets the capture markers applied when the state is visited.
// Any of the slices may be nil.
func (b *Builder) SetCaptures(id StateID, start, end, forceEnd []int) error {
	s, err := b.state(id)
	if err != nil {
		return err
	}
	s.startCapture = append([]int(nil), start...)
	s.endCapture = append([]int(nil), end...)
	s.forceEndCapture = append([]int(nil), forceEnd...)
	return nil
}

// SetAssertion attaches a lookaround to the state.
func (b *Builder) SetAssertion(id StateID, a Assertion) error {
	s, err := b.state(id)
	if err != nil {
		return err
	}
	if a.Limit < 0 {
		return &BuildError{Message: fmt.Sprintf("negative lookbehind limit %d", a.Limit), StateID: id}
	}
	s.assertion = &a
	return nil
}

// SetLazy marks the state as part of a lazy repetition.
func (b *Builder) SetLazy(id StateID) error {
	s, err := b.state(id)
	if err != nil {
		return err
	}
	s.lazy = true
	return nil
}

// SetStart sets the start state of the top-level automaton
func (b *Builder) SetStart(id StateID) {
	b.start = id
}

// SetAccept sets the accept state of the top-level automaton
func (b *Builder) SetAccept(id StateID) {
	b.accept = id
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

func (b *Builder) state(id StateID) (*State, error) {
	if id == InvalidState || int(id) >= len(b.states) {
		return nil, &BuildError{
			Message: "state ID out of bounds",
			StateID: id,
		}
	}
	return &b.states[id], nil
}

func (b *Builder) valid(id StateID) bool {
	return id != InvalidState && int(id) < len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start and accept states are valid
// - All transition targets point to valid states
// - Every assertion has a valid start/accept pair
// - Capture group numbers are non-negative
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if !b.valid(b.start) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	if b.accept == InvalidState {
		return &BuildError{Message: "accept state not set", StateID: InvalidState}
	}
	if !b.valid(b.accept) {
		return &BuildError{Message: "accept state out of bounds", StateID: b.accept}
	}

	for i := range b.states {
		s := &b.states[i]
		for j, t := range s.transitions {
			if !b.valid(t.Next) {
				return &BuildError{
					Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next),
					StateID: s.id,
				}
			}
		}
		if a := s.assertion; a != nil {
			if !b.valid(a.Start) || !b.valid(a.Accept) {
				return &BuildError{
					Message: fmt.Sprintf("invalid assertion automaton [%d..%d]", a.Start, a.Accept),
					StateID: s.id,
				}
			}
		}
		for _, groups := range [][]int{s.startCapture, s.endCapture, s.forceEndCapture} {
			for _, g := range groups {
				if g < 0 {
					return &BuildError{
						Message: fmt.Sprintf("negative capture group %d", g),
						StateID: s.id,
					}
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
// The builder must not be used afterwards.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	n := &NFA{
		states: b.states,
		start:  b.start,
		accept: b.accept,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.captureCount == 0 {
		n.captureCount = b.maxGroup() + 1
	}
	b.states = nil
	return n, nil
}

func (b *Builder) maxGroup() int {
	maxGroup := 0
	for i := range b.states {
		s := &b.states[i]
		for _, groups := range [][]int{s.startCapture, s.endCapture, s.forceEndCapture} {
			for _, g := range groups {
				maxGroup = max(maxGroup, g)
			}
		}
	}
	return maxGroup
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithCaptureCount sets the number of capture groups in the NFA, including
// group 0. Without it the count is derived from the capture markers.
func WithCaptureCount(count int) BuildOption {
	return func(n *NFA) {
		n.captureCount = count
	}
}

// WithPrefixLiterals declares that every match begins with one of lits.
// Searches use them to skip start positions that cannot match.
func WithPrefixLiterals(lits ...string) BuildOption {
	return func(n *NFA) {
		n.prefixLiterals = append([]string(nil), lits...)
	}
}

// WithPattern records the source pattern for diagnostics.
func WithPattern(pattern string) BuildOption {
	return func(n *NFA) {
		n.pattern = pattern
	}
}
