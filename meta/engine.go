package meta

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/nfa"
)

// Engine runs one compiled automaton with the fast-first policy.
//
// The Engine:
//  1. Tries the implicit DFA, which decides most automata in one pass
//  2. Falls back to the backtracker when the scan is Incomplete
//  3. Builds a literal prefilter for repeated search when the automaton
//     declares prefix literals
//
// Thread safety: the automaton, the strategies and the prefilter are
// immutable; statistics are updated atomically. Multiple goroutines can
// call Simulate, FindAt and FindAll on the same Engine concurrently.
//
// Example:
//
//	engine, err := meta.NewEngine(n, meta.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	r := engine.Simulate(editor.NewBuffer("foo bar"), 4, false)
type Engine struct {
	// stats MUST be first for 8-byte alignment of the atomic counters on
	// 32-bit platforms.
	stats Stats

	nfa       *nfa.NFA
	config    Config
	fast      *nfa.ImplicitDFA
	slow      *nfa.Backtracker
	prefilter *literalPrefilter
	log       *log.Logger
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// FastSimulations counts implicit DFA runs
	FastSimulations uint64

	// Fallbacks counts implicit DFA runs that were Incomplete and had to be
	// repeated by the backtracker
	Fallbacks uint64

	// BacktrackSimulations counts backtracker runs, fallbacks included
	BacktrackSimulations uint64

	// PrefilterSkips counts start positions repeated search skipped because
	// no prefix literal could begin there
	PrefilterSkips uint64

	// Undecided counts start positions repeated search treated as no match
	// because the result was Incomplete (UseImplicitDFA only)
	Undecided uint64
}

// NewEngine creates an Engine for n.
func NewEngine(n *nfa.NFA, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		nfa:    n,
		config: config,
		fast:   nfa.NewImplicitDFA(),
		slow:   nfa.NewBacktracker(),
		log:    config.logger(),
	}

	if config.EnablePrefilter && len(n.PrefixLiterals()) > 0 {
		pf, err := newLiteralPrefilter(n.PrefixLiterals())
		if err != nil {
			// Search still works without it.
			e.log.Warn("prefilter disabled", "pattern", n.Pattern(), "err", err)
		} else if pf != nil {
			e.prefilter = pf
			e.log.Debug("prefilter built", "pattern", n.Pattern(), "literals", len(n.PrefixLiterals()))
		}
	}

	return e, nil
}

// NFA returns the automaton the engine runs.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// Strategy returns the configured strategy.
func (e *Engine) Strategy() Strategy {
	return e.config.Strategy
}

// Simulate runs the automaton anchored at startIndex.
//
// With UseAuto and UseBacktracker the result is never Incomplete.
func (e *Engine) Simulate(text editor.Provider, startIndex int, caseInsensitive bool) nfa.Result {
	switch e.config.Strategy {
	case UseBacktracker:
		return e.backtrack(text, startIndex, caseInsensitive)
	case UseImplicitDFA:
		atomic.AddUint64(&e.stats.FastSimulations, 1)
		return e.fast.Simulate(e.nfa, text, startIndex, caseInsensitive)
	}

	atomic.AddUint64(&e.stats.FastSimulations, 1)
	r := e.fast.Simulate(e.nfa, text, startIndex, caseInsensitive)
	if r.Status() != nfa.Incomplete {
		return r
	}

	atomic.AddUint64(&e.stats.Fallbacks, 1)
	e.log.Debug("implicit DFA incomplete, backtracking",
		"pattern", e.nfa.Pattern(), "start", startIndex, "reason", r.Err())
	return e.backtrack(text, startIndex, caseInsensitive)
}

func (e *Engine) backtrack(text editor.Provider, startIndex int, caseInsensitive bool) nfa.Result {
	atomic.AddUint64(&e.stats.BacktrackSimulations, 1)
	return e.slow.Simulate(e.nfa, text, startIndex, caseInsensitive)
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		FastSimulations:      atomic.LoadUint64(&e.stats.FastSimulations),
		Fallbacks:            atomic.LoadUint64(&e.stats.Fallbacks),
		BacktrackSimulations: atomic.LoadUint64(&e.stats.BacktrackSimulations),
		PrefilterSkips:       atomic.LoadUint64(&e.stats.PrefilterSkips),
		Undecided:            atomic.LoadUint64(&e.stats.Undecided),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.FastSimulations, 0)
	atomic.StoreUint64(&e.stats.Fallbacks, 0)
	atomic.StoreUint64(&e.stats.BacktrackSimulations, 0)
	atomic.StoreUint64(&e.stats.PrefilterSkips, 0)
	atomic.StoreUint64(&e.stats.Undecided, 0)
}

// Dispatcher applies the fast-first policy to any automaton. It satisfies
// nfa.Simulator for callers that do not keep an Engine per automaton.
type Dispatcher struct {
	fast *nfa.ImplicitDFA
	slow *nfa.Backtracker
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{fast: nfa.NewImplicitDFA(), slow: nfa.NewBacktracker()}
}

// Simulate runs the implicit DFA and, if it is Incomplete, the backtracker.
// The result is never Incomplete.
func (d *Dispatcher) Simulate(n *nfa.NFA, text editor.Provider, startIndex int, caseInsensitive bool) nfa.Result {
	if r := d.fast.Simulate(n, text, startIndex, caseInsensitive); r.Status() != nfa.Incomplete {
		return r
	}
	return d.slow.Simulate(n, text, startIndex, caseInsensitive)
}
