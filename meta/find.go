package meta

import (
	"sync/atomic"

	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/nfa"
)

// search is the state of one repeated search over a text.
type search struct {
	e    *Engine
	text editor.Provider
	ci   bool

	// hay is nil when the prefilter does not apply
	hay *haystack
}

func (e *Engine) newSearch(text editor.Provider, caseInsensitive bool) *search {
	s := &search{e: e, text: text, ci: caseInsensitive}
	// Literals are matched byte for byte; case folding would need every
	// case variant in the automaton.
	if e.prefilter != nil && !caseInsensitive {
		s.hay = newHaystack(text)
	}
	return s
}

// scan tries start positions lo..hi in order and returns the first match.
// Incomplete results (UseImplicitDFA only) count as no match and are
// recorded in Stats.Undecided.
func (s *search) scan(lo, hi int) *Match {
	for i := lo; i <= hi; i++ {
		if s.hay != nil {
			next := s.e.prefilter.next(s.hay, i)
			if next < 0 || next > hi {
				atomic.AddUint64(&s.e.stats.PrefilterSkips, uint64(hi-i+1))
				return nil
			}
			atomic.AddUint64(&s.e.stats.PrefilterSkips, uint64(next-i))
			i = next
		}

		r := s.e.Simulate(s.text, i, s.ci)
		switch r.Status() {
		case nfa.Matched:
			return NewMatch(r)
		case nfa.Incomplete:
			atomic.AddUint64(&s.e.stats.Undecided, 1)
			s.e.log.Debug("undecided start position", "start", i, "reason", r.Err())
		}
	}
	return nil
}

// FindAt returns the leftmost match starting at or after from, or nil.
//
// With Config.WrapScan the search continues from the start of the text up
// to from, like Vim's 'wrapscan'.
func (e *Engine) FindAt(text editor.Provider, from int, caseInsensitive bool) *Match {
	if from < 0 || from > text.Len() {
		return nil
	}
	s := e.newSearch(text, caseInsensitive)
	if m := s.scan(from, text.Len()); m != nil {
		return m
	}
	if e.config.WrapScan && from > 0 {
		if m := s.scan(0, from-1); m != nil {
			e.log.Debug("search wrapped around", "from", from, "start", m.Start())
			return m
		}
	}
	return nil
}

// FindAll returns successive non-overlapping matches from the start of the
// text. An empty match advances the search by one character. At most
// Config.MaxMatches matches are returned when it is positive.
func (e *Engine) FindAll(text editor.Provider, caseInsensitive bool) []*Match {
	s := e.newSearch(text, caseInsensitive)
	var matches []*Match

	for pos := 0; pos <= text.Len(); {
		if e.config.MaxMatches > 0 && len(matches) >= e.config.MaxMatches {
			break
		}
		m := s.scan(pos, text.Len())
		if m == nil {
			break
		}
		matches = append(matches, m)
		if m.IsEmpty() {
			pos = m.End() + 1
		} else {
			pos = m.End()
		}
	}

	return matches
}
