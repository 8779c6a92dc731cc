// Package vimregex runs Vim-dialect regular expressions against editor text.
//
// Patterns are compiled elsewhere into an nfa.NFA (see nfa.Builder); this
// package wraps a compiled automaton with the dispatcher from package meta
// and exposes the search operations an editor needs:
//   - MatchAt: anchored match at one offset, or an error when undecided
//   - Find: leftmost match at or after an offset, wrapping like 'wrapscan'
//   - FindAll: successive non-overlapping matches
//
// Text is read through editor.Provider, which also supplies the cursors,
// selection and marks that Vim atoms such as \%#, \%V and \%'m refer to.
//
// Basic usage:
//
//	b := nfa.NewBuilder()
//	n, err := b.Finish(b.Literal("foo", false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re := vimregex.MustNew(n)
//	m := re.Find(editor.NewBuffer("a foo"), 0)
//	fmt.Println(m.Start(), m.Text()) // 2 foo
//
// Matching is leftmost-first: alternatives and greedy repetitions are tried
// in the order the automaton declares them, so the reported match is the one
// Vim's backtracking engine reports.
package vimregex

import (
	"fmt"

	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/meta"
	"github.com/coregx/vimregex/nfa"
)

// Match is a successful search result with its capture groups.
type Match = meta.Match

// Regexp is a compiled automaton ready for searching.
//
// A Regexp is safe to use concurrently from multiple goroutines, except for
// ResetStats.
type Regexp struct {
	engine     *meta.Engine
	ignoreCase bool
}

// Option configures a Regexp.
type Option func(*options)

type options struct {
	config     meta.Config
	ignoreCase bool
}

// WithConfig replaces the dispatcher configuration.
func WithConfig(config meta.Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithIgnoreCase makes every search case-insensitive, like Vim's
// 'ignorecase'. Matchers that set their own IgnoreCase are unaffected.
func WithIgnoreCase(ignore bool) Option {
	return func(o *options) {
		o.ignoreCase = ignore
	}
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// New wraps a compiled automaton.
func New(n *nfa.NFA, opts ...Option) (*Regexp, error) {
	o := options{config: meta.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	engine, err := meta.NewEngine(n, o.config)
	if err != nil {
		return nil, err
	}
	return &Regexp{engine: engine, ignoreCase: o.ignoreCase}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(n *nfa.NFA, opts ...Option) *Regexp {
	re, err := New(n, opts...)
	if err != nil {
		panic("vimregex: New: " + err.Error())
	}
	return re
}

// MatchAt reports the match that starts exactly at start, or nil.
//
// The error is non-nil only when the configured strategy cannot decide the
// match (meta.UseImplicitDFA on an automaton that needs backtracking). It
// wraps the reason, so errors.Is(err, nfa.ErrNeedsBackReference) and the
// like identify it.
func (r *Regexp) MatchAt(text editor.Provider, start int) (*Match, error) {
	res := r.engine.Simulate(text, start, r.ignoreCase)
	if res.Status() == nfa.Incomplete {
		return nil, fmt.Errorf("vimregex: match at %d undecided: %w", start, res.Err())
	}
	return meta.NewMatch(res), nil
}

// Find returns the leftmost match starting at or after from, or nil.
func (r *Regexp) Find(text editor.Provider, from int) *Match {
	return r.engine.FindAt(text, from, r.ignoreCase)
}

// FindAll returns all successive non-overlapping matches.
func (r *Regexp) FindAll(text editor.Provider) []*Match {
	return r.engine.FindAll(text, r.ignoreCase)
}

// MatchString reports whether s contains a match.
func (r *Regexp) MatchString(s string) bool {
	return r.Find(editor.NewBuffer(s), 0) != nil
}

// FindString returns the text of the leftmost match in s, or "".
func (r *Regexp) FindString(s string) string {
	if m := r.Find(editor.NewBuffer(s), 0); m != nil {
		return m.Text()
	}
	return ""
}

// FindAllString returns the texts of successive matches in s.
// If n >= 0, at most n matches are returned.
func (r *Regexp) FindAllString(s string, n int) []string {
	if n == 0 {
		return nil
	}
	var out []string
	for _, m := range r.FindAll(editor.NewBuffer(s)) {
		if n > 0 && len(out) == n {
			break
		}
		out = append(out, m.Text())
	}
	return out
}

// NumGroups returns the number of capture groups, including group 0.
func (r *Regexp) NumGroups() int {
	return r.engine.NFA().CaptureCount()
}

// Stats returns the dispatcher statistics.
func (r *Regexp) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats resets the dispatcher statistics.
func (r *Regexp) ResetStats() {
	r.engine.ResetStats()
}

// String returns the source pattern recorded in the automaton.
func (r *Regexp) String() string {
	return r.engine.NFA().Pattern()
}
