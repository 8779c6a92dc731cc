package nfa

import (
	"fmt"

	"github.com/coregx/vimregex/editor"
)

// Status tags a simulation Result.
type Status uint8

const (
	// Matched: the automaton reached its accept state. Groups are available.
	Matched Status = iota

	// Failed: the simulation proved there is no match from the start index.
	Failed

	// Incomplete: the strategy could not decide. Not a failure; the caller
	// must retry with a complete strategy.
	Incomplete
)

// String returns a human-readable representation of the Status
func (s Status) String() string {
	switch s {
	case Matched:
		return "Matched"
	case Failed:
		return "Failed"
	case Incomplete:
		return "Incomplete"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Result is the tri-state outcome of Simulate. Callers must branch on
// Status; a Result is never coerced between outcomes.
type Result struct {
	status Status
	groups *Groups
	err    *SimulationError
}

// MatchedResult wraps the captures of a successful simulation.
func MatchedResult(groups *Groups) Result {
	return Result{status: Matched, groups: groups}
}

// FailedResult returns a Failed result with the given reason.
func FailedResult(reason *SimulationError) Result {
	return Result{status: Failed, err: reason}
}

// IncompleteResult returns an Incomplete result with the given reason.
func IncompleteResult(reason *SimulationError) Result {
	return Result{status: Incomplete, err: reason}
}

// Status returns the outcome tag.
func (r Result) Status() Status {
	return r.status
}

// Groups returns the captures of a Matched result, or nil.
func (r Result) Groups() *Groups {
	return r.groups
}

// Whole returns group 0 of a Matched result.
func (r Result) Whole() (Group, bool) {
	if r.status != Matched {
		return Group{}, false
	}
	return r.groups.Get(0)
}

// Err returns the reason of a Failed or Incomplete result, or nil.
func (r Result) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// String returns a human-readable representation of the Result
func (r Result) String() string {
	switch r.status {
	case Matched:
		g, _ := r.groups.Get(0)
		return fmt.Sprintf("Matched[%d:%d %q]", g.Start, g.End, g.Text)
	default:
		return fmt.Sprintf("%s(%v)", r.status, r.Err())
	}
}

// Simulator is the contract shared by the simulation strategies.
//
// Simulate runs the automaton anchored at startIndex. It is synchronous,
// does not modify the automaton or the text, and keeps no state between
// calls.
type Simulator interface {
	Simulate(n *NFA, text editor.Provider, startIndex int, caseInsensitive bool) Result
}
