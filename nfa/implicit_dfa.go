package nfa

import (
	"slices"

	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/internal/conv"
	"github.com/coregx/vimregex/internal/sparse"
)

// ImplicitDFA is the fast simulation strategy. It scans the text once from
// left to right and tracks the set of NFA states reachable after each
// character (subset construction done on the fly, never materialized).
//
// Threads are kept in priority order, the order a depth-first search would
// try them, so the reported match is the one the Backtracker would find.
//
// Lookaround, lazy repetition and backreferences cannot be expressed in a
// forward state-set scan, nor can two paths reaching one state with
// different possible cursors. When the scan reaches any of them it stops and
// returns an Incomplete result; the caller must retry with the Backtracker.
//
// ImplicitDFA holds no per-search state and is safe for concurrent use.
type ImplicitDFA struct{}

// NewImplicitDFA creates a state-set simulator.
func NewImplicitDFA() *ImplicitDFA {
	return &ImplicitDFA{}
}

// dfaThread is one member of the current state set.
type dfaThread struct {
	state   StateID
	cursors []int
	groups  *Groups
}

// closureItem is an entry of the epsilon-closure stack. A step item carries
// a thread that already consumed a character and belongs to the next
// generation.
type closureItem struct {
	thread dfaThread
	step   bool
}

type dfaScan struct {
	nfa  *NFA
	text editor.Provider
	ctx  MatchContext

	// visited holds the states entered during the current generation and
	// entered the cursor set each state was first entered with
	visited *sparse.SparseSet
	entered [][]int
	stack   []closureItem
}

// Simulate runs the automaton anchored at startIndex.
func (d *ImplicitDFA) Simulate(n *NFA, text editor.Provider, startIndex int, caseInsensitive bool) Result {
	if startIndex < 0 || startIndex > text.Len() {
		return FailedResult(ErrStartOutOfRange)
	}

	sc := &dfaScan{
		nfa:     n,
		text:    text,
		ctx:     MatchContext{Text: text, CaseInsensitive: caseInsensitive},
		visited: sparse.NewSparseSet(conv.IntToUint32(n.States())),
		entered: make([][]int, n.States()),
	}

	current := []dfaThread{{
		state:   n.start,
		cursors: text.Cursors(),
		groups:  NewGroups(n.captureCount),
	}}
	var next []dfaThread
	var best *Groups
	bestEnd := -1

	for index := startIndex; index <= text.Len(); index++ {
		sc.visited.Clear()
		next = next[:0]

		for _, t := range current {
			g, matched, reason := sc.closure(t, index, &next)
			if reason != nil {
				return IncompleteResult(reason)
			}
			if matched {
				// Lower-priority threads can only produce worse matches.
				best, bestEnd = g, index
				break
			}
		}

		if len(next) == 0 {
			break
		}
		current, next = next, current
	}

	if best == nil {
		return FailedResult(ErrPatternNotFound)
	}
	best.ensureWhole(startIndex, bestEnd, text)
	return MatchedResult(best)
}

// closure follows zero-width transitions from t at index in priority order,
// applying capture markers as states are entered. Consuming transitions are
// appended to next. It stops at the accept state and returns its captures.
func (sc *dfaScan) closure(t dfaThread, index int, next *[]dfaThread) (*Groups, bool, *SimulationError) {
	sc.stack = append(sc.stack[:0], closureItem{thread: t})

	for len(sc.stack) > 0 {
		item := sc.stack[len(sc.stack)-1]
		sc.stack = sc.stack[:len(sc.stack)-1]

		if item.step {
			*next = append(*next, item.thread)
			continue
		}

		th := item.thread
		if !sc.visited.Insert(uint32(th.state)) {
			// Merging threads that disagree on the possible cursors would
			// lose the lower-priority one's future.
			if !slices.Equal(sc.entered[th.state], th.cursors) {
				return nil, false, ErrNeedsCursorSplit
			}
			continue
		}
		sc.entered[th.state] = th.cursors
		st := &sc.nfa.states[th.state]
		if reason := unsupported(st); reason != nil {
			return nil, false, reason
		}

		g := th.groups.visit(st, index, sc.text)
		if th.state == sc.nfa.accept {
			return g, true, nil
		}

		sc.ctx.Groups = g
		sc.ctx.Cursors = th.cursors
		mark := len(sc.stack)
		for _, tr := range st.transitions {
			v := tr.Matcher.Match(&sc.ctx, index)
			if !v.ok {
				continue
			}
			child := dfaThread{state: tr.Next, cursors: th.cursors, groups: g}
			if v.cursors != nil {
				child.cursors = v.cursors
			}
			switch v.consumed {
			case 0:
				sc.stack = append(sc.stack, closureItem{thread: child})
			case 1:
				sc.stack = append(sc.stack, closureItem{thread: child, step: true})
			default:
				return nil, false, ErrNeedsMultiCharTransition
			}
		}
		// Transitions were pushed in declaration order; reverse them so the
		// first-listed one is popped first.
		pushed := sc.stack[mark:]
		for i, j := 0, len(pushed)-1; i < j; i, j = i+1, j-1 {
			pushed[i], pushed[j] = pushed[j], pushed[i]
		}
	}

	return nil, false, nil
}

// unsupported returns why a state cannot be handled by a forward scan.
func unsupported(st *State) *SimulationError {
	if st.assertion != nil {
		return ErrNeedsAssertion
	}
	if st.lazy {
		return ErrNeedsLazyRepetition
	}
	for _, tr := range st.transitions {
		if requiresBacktracking(tr.Matcher) {
			return ErrNeedsBackReference
		}
	}
	return nil
}
