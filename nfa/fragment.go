package nfa

// Fragment is a partially built automaton with one entry and one exit
// state, the unit of Thompson construction. Pattern compilers combine
// fragments bottom-up and close the result with Builder.Finish.
type Fragment struct {
	Start StateID
	End   StateID
}

// link appends a transition between two states the builder created itself.
func (b *Builder) link(from StateID, m Matcher, next StateID) {
	s := &b.states[from]
	s.transitions = append(s.transitions, Transition{Matcher: m, Next: next})
}

func (b *Builder) fragment() Fragment {
	return Fragment{Start: b.AddState(), End: b.AddState()}
}

// Atom returns a fragment crossing a single matcher.
func (b *Builder) Atom(m Matcher) Fragment {
	f := b.fragment()
	b.link(f.Start, m, f.End)
	return f
}

// Literal returns a fragment matching the characters of s in sequence.
func (b *Builder) Literal(s string, ignoreCase bool) Fragment {
	var parts []Fragment
	for _, r := range s {
		parts = append(parts, b.Atom(Char{R: r, IgnoreCase: ignoreCase}))
	}
	return b.Concat(parts...)
}

// Empty returns a fragment that matches the empty string.
func (b *Builder) Empty() Fragment {
	return b.Atom(Epsilon{})
}

// Concat chains fragments in order. With no arguments it matches empty.
func (b *Builder) Concat(parts ...Fragment) Fragment {
	if len(parts) == 0 {
		return b.Empty()
	}
	for i := 1; i < len(parts); i++ {
		b.link(parts[i-1].End, Epsilon{}, parts[i].Start)
	}
	return Fragment{Start: parts[0].Start, End: parts[len(parts)-1].End}
}

// Alternate tries branches in order; the first listed has priority.
func (b *Builder) Alternate(branches ...Fragment) Fragment {
	f := b.fragment()
	for _, br := range branches {
		b.link(f.Start, Epsilon{}, br.Start)
		b.link(br.End, Epsilon{}, f.End)
	}
	return f
}

// loop wires the repetition split: greedy tries body before exit, lazy
// tries exit first and marks the split state lazy.
func (b *Builder) loop(split StateID, body Fragment, exit StateID, lazy bool) {
	if lazy {
		b.link(split, Epsilon{}, exit)
		b.link(split, Epsilon{}, body.Start)
		b.states[split].lazy = true
		return
	}
	b.link(split, Epsilon{}, body.Start)
	b.link(split, Epsilon{}, exit)
}

// Star repeats f zero or more times (Vim's * or \{-}).
func (b *Builder) Star(f Fragment, lazy bool) Fragment {
	out := b.fragment()
	b.loop(out.Start, f, out.End, lazy)
	b.link(f.End, Epsilon{}, out.Start)
	return out
}

// Plus repeats f one or more times (Vim's \+ or \{-1,}).
func (b *Builder) Plus(f Fragment, lazy bool) Fragment {
	split := b.AddState()
	end := b.AddState()
	b.link(f.End, Epsilon{}, split)
	b.loop(split, f, end, lazy)
	return Fragment{Start: f.Start, End: end}
}

// Optional matches f or nothing (Vim's \? or \{-0,1}).
func (b *Builder) Optional(f Fragment, lazy bool) Fragment {
	out := b.fragment()
	b.loop(out.Start, f, out.End, lazy)
	b.link(f.End, Epsilon{}, out.End)
	return out
}

// Group wraps f in capture group n.
func (b *Builder) Group(n int, f Fragment) Fragment {
	out := b.fragment()
	b.states[out.Start].startCapture = []int{n}
	b.states[out.End].endCapture = []int{n}
	b.link(out.Start, Epsilon{}, f.Start)
	b.link(f.End, Epsilon{}, out.End)
	return out
}

// Look wraps f as a lookaround. Start and Accept of a are taken from f.
func (b *Builder) Look(f Fragment, a Assertion) Fragment {
	out := b.fragment()
	a.Start, a.Accept = f.Start, f.End
	b.states[out.Start].assertion = &a
	b.link(out.Start, Epsilon{}, out.End)
	return out
}

// Finish wraps f in group 0, makes it the top-level automaton and builds.
func (b *Builder) Finish(f Fragment, opts ...BuildOption) (*NFA, error) {
	whole := b.Group(0, f)
	b.SetStart(whole.Start)
	b.SetAccept(whole.End)
	return b.Build(opts...)
}
