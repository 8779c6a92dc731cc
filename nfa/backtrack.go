package nfa

import (
	"github.com/coregx/vimregex/editor"
)

// Backtracker is the complete simulation strategy: a depth-first search over
// (index, state) pairs that always reaches a definite answer and supports
// every matcher and assertion kind.
//
// The search frontier is an explicit stack, so the native call stack only
// grows with the nesting depth of assertions in the pattern, never with the
// length of the input. Worst-case running time is exponential.
//
// Backtracker holds no per-search state and is safe for concurrent use.
type Backtracker struct{}

// NewBacktracker creates a backtracking simulator.
func NewBacktracker() *Backtracker {
	return &Backtracker{}
}

// Simulate runs the automaton anchored at startIndex.
// The result is Matched or Failed, never Incomplete.
func (b *Backtracker) Simulate(n *NFA, text editor.Provider, startIndex int, caseInsensitive bool) Result {
	if startIndex < 0 || startIndex > text.Len() {
		return FailedResult(ErrStartOutOfRange)
	}

	s := &backtrackSearch{nfa: n, text: text, caseInsensitive: caseInsensitive}
	end, groups, ok := s.run(n.start, n.accept, startIndex, text.Len(), -1,
		text.Cursors(), NewGroups(n.captureCount))
	if !ok {
		return FailedResult(ErrPatternNotFound)
	}
	groups.ensureWhole(startIndex, end, text)
	return MatchedResult(groups)
}

// epsilonVisit is an immutable cons list of the states a path entered
// through zero-width transitions since it last consumed input. Each path
// owns its own chain, so a state that one branch has already passed through
// stays reachable from another branch.
type epsilonVisit struct {
	state StateID
	next  *epsilonVisit
}

func (v *epsilonVisit) contains(id StateID) bool {
	for ; v != nil; v = v.next {
		if v.state == id {
			return true
		}
	}
	return false
}

// frame is a pending search step.
type frame struct {
	index   int
	state   StateID
	visited *epsilonVisit
	cursors []int
	groups  *Groups
}

type backtrackSearch struct {
	nfa             *NFA
	text            editor.Provider
	caseInsensitive bool
}

// run searches from (index, start) for a path to accept.
// Frames beyond maxIndex are dropped. When endAt >= 0 the accept state only
// counts if reached exactly at endAt.
// Returns the end index and the captures of the first successful path.
func (s *backtrackSearch) run(start, accept StateID, index, maxIndex, endAt int,
	cursors []int, groups *Groups) (int, *Groups, bool) {
	stack := make([]frame, 0, 16)
	stack = append(stack, frame{
		index:   index,
		state:   start,
		visited: &epsilonVisit{state: start},
		cursors: cursors,
		groups:  groups,
	})
	ctx := &MatchContext{Text: s.text, CaseInsensitive: s.caseInsensitive}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.index > maxIndex {
			continue
		}

		st := &s.nfa.states[f.state]
		g := f.groups.visit(st, f.index, s.text)

		if f.state == accept {
			if endAt < 0 || f.index == endAt {
				return f.index, g, true
			}
			continue
		}

		at, visited := f.index, f.visited
		if a := st.assertion; a != nil {
			resume, ag, ok := s.assert(a, at, f.cursors, g)
			if !ok {
				continue
			}
			g = ag
			if resume != at {
				at, visited = resume, nil
			}
		}

		ctx.Groups = g
		ctx.Cursors = f.cursors
		// Reverse order: the first-listed transition is popped first.
		for i := len(st.transitions) - 1; i >= 0; i-- {
			t := st.transitions[i]
			v := t.Matcher.Match(ctx, at)
			if !v.ok {
				continue
			}
			next := frame{
				index:   at + v.consumed,
				state:   t.Next,
				cursors: f.cursors,
				groups:  g,
			}
			if v.cursors != nil {
				next.cursors = v.cursors
			}
			if v.consumed == 0 {
				if visited.contains(t.Next) {
					continue
				}
				next.visited = &epsilonVisit{state: t.Next, next: visited}
			} else {
				next.visited = &epsilonVisit{state: t.Next}
			}
			stack = append(stack, next)
		}
	}

	return -1, nil, false
}

// assert evaluates a lookaround at index. It returns the index to resume at
// and the captures to continue with; ok is false when the assertion fails.
func (s *backtrackSearch) assert(a *Assertion, index int, cursors []int, g *Groups) (int, *Groups, bool) {
	if a.Ahead {
		end, ng, matched := s.run(a.Start, a.Accept, index, s.text.Len(), -1, cursors, g)
		switch {
		case matched != a.Positive:
			return 0, nil, false
		case !matched:
			return index, g, true
		case a.Consume:
			return end, ng, true
		default:
			return index, ng, true
		}
	}

	floor := s.lookbehindFloor(index, a.Limit)
	for from := index - 1; from >= floor; from-- {
		_, ng, matched := s.run(a.Start, a.Accept, from, index, index, cursors, g)
		if !matched {
			continue
		}
		if a.Positive {
			return index, ng, true
		}
		return 0, nil, false
	}
	if a.Positive {
		return 0, nil, false
	}
	return index, g, true
}

// lookbehindFloor returns the smallest start index a lookbehind at index may
// try: limit characters back, and never before the previous line.
func (s *backtrackSearch) lookbehindFloor(index, limit int) int {
	floor := editor.LineStart(s.text, index)
	if floor > 0 {
		floor = editor.LineStart(s.text, floor-1)
	}
	if limit > 0 {
		floor = max(floor, index-limit)
	}
	return max(floor, 0)
}
