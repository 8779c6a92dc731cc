// Package nfa simulates Vim-dialect regular expressions that have been
// compiled into a nondeterministic finite automaton.
//
// The package holds the automaton representation (State, Transition,
// Assertion, NFA and the Builder used by pattern compilers), the Matcher
// contract with one concrete matcher per atom/anchor kind, the per-search
// Groups collection, and two simulation strategies:
//
//   - Backtracker: explicit-stack depth-first search. Always decides and
//     supports lookaround, backreferences and lazy repetition.
//   - ImplicitDFA: a single left-to-right state-set scan. Fast, but returns
//     an Incomplete result when the automaton needs backtracking.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidState indicates an invalid NFA state ID was encountered
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrInvalidStart indicates a simulation start index outside the text
	ErrInvalidStart = errors.New("start index out of range")
)

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidState) match out-of-range state errors.
func (e *BuildError) Unwrap() error {
	if e.StateID == InvalidState {
		return nil
	}
	return ErrInvalidState
}

// ErrorKind classifies why a simulation did not produce a match.
type ErrorKind uint8

const (
	// PatternNotFound: the automaton cannot reach its accept state from the
	// start index
	PatternNotFound ErrorKind = iota

	// StartOutOfRange: the start index lies outside [0, len(text)]
	StartOutOfRange

	// NeedsAssertion: the fast strategy met a lookaround state
	NeedsAssertion

	// NeedsLazyRepetition: the fast strategy met a lazy repetition state
	NeedsLazyRepetition

	// NeedsBackReference: the fast strategy met a backreference transition
	NeedsBackReference

	// NeedsMultiCharTransition: the fast strategy met a transition that
	// consumes more than one character
	NeedsMultiCharTransition

	// NeedsCursorSplit: two paths of the fast strategy reached the same
	// state with different possible cursors
	NeedsCursorSplit
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case PatternNotFound:
		return "PatternNotFound"
	case StartOutOfRange:
		return "StartOutOfRange"
	case NeedsAssertion:
		return "NeedsAssertion"
	case NeedsLazyRepetition:
		return "NeedsLazyRepetition"
	case NeedsBackReference:
		return "NeedsBackReference"
	case NeedsMultiCharTransition:
		return "NeedsMultiCharTransition"
	case NeedsCursorSplit:
		return "NeedsCursorSplit"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// SimulationError is the reason attached to a Failed or Incomplete Result.
type SimulationError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *SimulationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *SimulationError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *SimulationError) Is(target error) bool {
	t, ok := target.(*SimulationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel simulation errors, compared by kind with errors.Is.
var (
	ErrPatternNotFound = &SimulationError{
		Kind:    PatternNotFound,
		Message: "pattern not found",
	}

	ErrStartOutOfRange = &SimulationError{
		Kind:    StartOutOfRange,
		Message: "start index out of range",
		Cause:   ErrInvalidStart,
	}

	ErrNeedsAssertion = &SimulationError{
		Kind:    NeedsAssertion,
		Message: "lookaround requires backtracking",
	}

	ErrNeedsLazyRepetition = &SimulationError{
		Kind:    NeedsLazyRepetition,
		Message: "lazy repetition requires backtracking",
	}

	ErrNeedsBackReference = &SimulationError{
		Kind:    NeedsBackReference,
		Message: "backreference requires backtracking",
	}

	ErrNeedsMultiCharTransition = &SimulationError{
		Kind:    NeedsMultiCharTransition,
		Message: "multi-character transition requires backtracking",
	}

	ErrNeedsCursorSplit = &SimulationError{
		Kind:    NeedsCursorSplit,
		Message: "diverging cursor sets require backtracking",
	}
)
