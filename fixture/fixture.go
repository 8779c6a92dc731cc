// Package fixture loads compiled automata and their expected results from
// YAML, so tests and the vimsim tool can exercise the simulator without a
// pattern compiler.
//
// A fixture file looks like:
//
//	pattern: 'a\(b\)\@!'
//	start: 0
//	accept: 5
//	states:
//	  - id: 0
//	    start_capture: [0]
//	    transitions:
//	      - to: 1
//	        matcher: {kind: char, char: a}
//	  ...
//	cases:
//	  - text: "ac"
//	    want: {status: matched, groups: {0: "a"}}
package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/nfa"
)

// Load errors
var (
	// ErrUnknownKind is returned for a matcher kind the loader does not know
	ErrUnknownKind = errors.New("unknown matcher kind")

	// ErrUnknownState is returned for a reference to an undeclared state
	ErrUnknownState = errors.New("unknown state")

	// ErrDuplicateState is returned when two states share an id
	ErrDuplicateState = errors.New("duplicate state id")
)

// Document is the YAML representation of an automaton.
type Document struct {
	Name           string      `yaml:"name"`
	Pattern        string      `yaml:"pattern"`
	Start          int         `yaml:"start"`
	Accept         int         `yaml:"accept"`
	Captures       int         `yaml:"captures"`
	PrefixLiterals []string    `yaml:"prefix_literals"`
	States         []StateSpec `yaml:"states"`
	Cases          []Case      `yaml:"cases"`
}

// StateSpec describes one state.
type StateSpec struct {
	ID              int              `yaml:"id"`
	StartCapture    []int            `yaml:"start_capture"`
	EndCapture      []int            `yaml:"end_capture"`
	ForceEndCapture []int            `yaml:"force_end_capture"`
	Lazy            bool             `yaml:"lazy"`
	Assertion       *AssertionSpec   `yaml:"assertion"`
	Transitions     []TransitionSpec `yaml:"transitions"`
}

// AssertionSpec describes a lookaround. Start and Accept name states.
type AssertionSpec struct {
	Start    int  `yaml:"start"`
	Accept   int  `yaml:"accept"`
	Ahead    bool `yaml:"ahead"`
	Positive bool `yaml:"positive"`
	Consume  bool `yaml:"consume"`
	Limit    int  `yaml:"limit"`
}

// TransitionSpec describes a transition. A missing matcher is an epsilon.
type TransitionSpec struct {
	To      int         `yaml:"to"`
	Matcher MatcherSpec `yaml:"matcher"`
}

// Case is one expected simulation result.
type Case struct {
	Name       string         `yaml:"name"`
	Text       string         `yaml:"text"`
	Start      int            `yaml:"start"`
	IgnoreCase bool           `yaml:"ignore_case"`
	Cursors    []int          `yaml:"cursors"`
	Marks      map[string]int `yaml:"marks"`
	Selection  []int          `yaml:"selection"`
	Want       Want           `yaml:"want"`
}

// Want is the expected outcome of a Case. Status is "matched" or "failed";
// Groups maps group numbers to their expected text.
type Want struct {
	Status string         `yaml:"status"`
	Groups map[int]string `yaml:"groups"`
}

// Fixture is a loaded document with its automaton built.
type Fixture struct {
	Document
	NFA *nfa.NFA
}

// Load parses a fixture from r and builds its automaton.
// Unknown YAML fields are errors.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}

	n, err := doc.Build()
	if err != nil {
		return nil, err
	}
	return &Fixture{Document: doc, NFA: n}, nil
}

// LoadFile loads a fixture from the named file.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	defer f.Close()

	fx, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if fx.Name == "" {
		fx.Name = path
	}
	return fx, nil
}

// Build constructs the automaton described by the document.
func (d *Document) Build() (*nfa.NFA, error) {
	b := nfa.NewBuilderWithCapacity(len(d.States))
	ids := make(map[int]nfa.StateID, len(d.States))
	for _, s := range d.States {
		if _, dup := ids[s.ID]; dup {
			return nil, fmt.Errorf("fixture: state %d: %w", s.ID, ErrDuplicateState)
		}
		ids[s.ID] = b.AddState()
	}
	ref := func(id int) (nfa.StateID, error) {
		sid, ok := ids[id]
		if !ok {
			return nfa.InvalidState, fmt.Errorf("%w %d", ErrUnknownState, id)
		}
		return sid, nil
	}

	for _, s := range d.States {
		sid := ids[s.ID]
		if err := b.SetCaptures(sid, s.StartCapture, s.EndCapture, s.ForceEndCapture); err != nil {
			return nil, fmt.Errorf("fixture: state %d: %w", s.ID, err)
		}
		if s.Lazy {
			if err := b.SetLazy(sid); err != nil {
				return nil, fmt.Errorf("fixture: state %d: %w", s.ID, err)
			}
		}
		if a := s.Assertion; a != nil {
			start, err := ref(a.Start)
			if err != nil {
				return nil, fmt.Errorf("fixture: state %d assertion: %w", s.ID, err)
			}
			accept, err := ref(a.Accept)
			if err != nil {
				return nil, fmt.Errorf("fixture: state %d assertion: %w", s.ID, err)
			}
			err = b.SetAssertion(sid, nfa.Assertion{
				Start:    start,
				Accept:   accept,
				Ahead:    a.Ahead,
				Positive: a.Positive,
				Consume:  a.Consume,
				Limit:    a.Limit,
			})
			if err != nil {
				return nil, fmt.Errorf("fixture: state %d: %w", s.ID, err)
			}
		}
		for j, t := range s.Transitions {
			to, err := ref(t.To)
			if err != nil {
				return nil, fmt.Errorf("fixture: state %d transition %d: %w", s.ID, j, err)
			}
			m, err := t.Matcher.Matcher()
			if err != nil {
				return nil, fmt.Errorf("fixture: state %d transition %d: %w", s.ID, j, err)
			}
			if err := b.AddTransition(sid, m, to); err != nil {
				return nil, fmt.Errorf("fixture: state %d transition %d: %w", s.ID, j, err)
			}
		}
	}

	start, err := ref(d.Start)
	if err != nil {
		return nil, fmt.Errorf("fixture: start: %w", err)
	}
	accept, err := ref(d.Accept)
	if err != nil {
		return nil, fmt.Errorf("fixture: accept: %w", err)
	}
	b.SetStart(start)
	b.SetAccept(accept)

	opts := []nfa.BuildOption{nfa.WithPattern(d.Pattern)}
	if d.Captures > 0 {
		opts = append(opts, nfa.WithCaptureCount(d.Captures))
	}
	if len(d.PrefixLiterals) > 0 {
		opts = append(opts, nfa.WithPrefixLiterals(d.PrefixLiterals...))
	}
	n, err := b.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return n, nil
}

// Buffer returns the text of the case with its editor state applied.
func (c *Case) Buffer() (*editor.Buffer, error) {
	var opts []editor.Option
	if len(c.Cursors) > 0 {
		opts = append(opts, editor.WithCursors(c.Cursors...))
	}
	for name, off := range c.Marks {
		r, err := singleRune(name)
		if err != nil {
			return nil, fmt.Errorf("fixture: mark %q: %w", name, err)
		}
		opts = append(opts, editor.WithMark(r, off))
	}
	switch len(c.Selection) {
	case 0:
	case 2:
		opts = append(opts, editor.WithSelection(c.Selection[0], c.Selection[1]))
	default:
		return nil, fmt.Errorf("fixture: selection needs [start, end], got %v", c.Selection)
	}
	return editor.NewBuffer(c.Text, opts...), nil
}

// StatusValue converts the expected status name to an nfa.Status.
func (w Want) StatusValue() (nfa.Status, error) {
	switch w.Status {
	case "matched", "":
		return nfa.Matched, nil
	case "failed":
		return nfa.Failed, nil
	case "incomplete":
		return nfa.Incomplete, nil
	default:
		return nfa.Failed, fmt.Errorf("fixture: unknown status %q", w.Status)
	}
}
