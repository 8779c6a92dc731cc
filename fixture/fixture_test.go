package fixture

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/vimregex/meta"
	"github.com/coregx/vimregex/nfa"
)

func TestTestdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	simulators := map[string]nfa.Simulator{
		"backtrack": nfa.NewBacktracker(),
		"dispatch":  meta.NewDispatcher(),
	}

	for _, path := range paths {
		fx, err := LoadFile(path)
		require.NoError(t, err, path)
		require.NotEmpty(t, fx.Cases, path)

		t.Run(filepath.Base(path), func(t *testing.T) {
			for i, c := range fx.Cases {
				text, err := c.Buffer()
				require.NoError(t, err)
				want, err := c.Want.StatusValue()
				require.NoError(t, err)

				for name, sim := range simulators {
					r := sim.Simulate(fx.NFA, text, c.Start, c.IgnoreCase)
					require.Equal(t, want, r.Status(), "%s case %d (%q at %d): %v", name, i, c.Text, c.Start, r)
					for n, wantText := range c.Want.Groups {
						g, ok := r.Groups().Get(n)
						require.True(t, ok, "%s case %d: group %d unset", name, i, n)
						assert.Equal(t, wantText, g.Text, "%s case %d: group %d", name, i, n)
					}
				}
			}
		})
	}
}

func TestLoad_Fields(t *testing.T) {
	fx, err := LoadFile(filepath.Join("testdata", "lookbehind.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "bar after foo", fx.Name)
	assert.Equal(t, `\(foo\)\@<=bar`, fx.NFA.Pattern())
	assert.Equal(t, []string{"bar"}, fx.NFA.PrefixLiterals())
	assert.Equal(t, 9, fx.NFA.States())

	a := fx.NFA.State(fx.NFA.Start()).Assertion()
	require.NotNil(t, a)
	assert.False(t, a.Ahead)
	assert.True(t, a.Positive)
}

func TestLoad_MatcherKinds(t *testing.T) {
	tests := []struct {
		spec MatcherSpec
		want nfa.Matcher
	}{
		{MatcherSpec{}, nfa.Epsilon{}},
		{MatcherSpec{Kind: "char", Char: "é", IgnoreCase: true}, nfa.Char{R: 'é', IgnoreCase: true}},
		{MatcherSpec{Kind: "wildcard", EOL: true}, nfa.Wildcard{IncludesNewline: true}},
		{MatcherSpec{Kind: "backref", Group: 2}, nfa.BackReference{Group: 2}},
		{MatcherSpec{Kind: "end_of_line"}, nfa.EndOfLine{}},
		{MatcherSpec{Kind: "start_of_file"}, nfa.StartOfFile{}},
		{MatcherSpec{Kind: "column", Column: 3, Relation: "<"}, nfa.Column{Column: 3, Relation: nfa.Before}},
		{MatcherSpec{Kind: "cursor_line", Relation: "after"}, nfa.CursorLine{Relation: nfa.After}},
		{MatcherSpec{Kind: "mark", Mark: "z"}, nfa.Mark{Name: 'z', Relation: nfa.At}},
	}

	for _, tt := range tests {
		t.Run(tt.spec.Kind, func(t *testing.T) {
			got, err := tt.spec.Matcher()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_Collection(t *testing.T) {
	m, err := MatcherSpec{
		Kind:    "collection",
		Chars:   "_",
		Ranges:  []string{"a-f"},
		Classes: []string{"digit", "Greek"},
		Negated: true,
		EOL:     true,
	}.Matcher()
	require.NoError(t, err)

	c, ok := m.(*nfa.Collection)
	require.True(t, ok)
	assert.Equal(t, []rune{'_'}, c.Chars)
	assert.Equal(t, []nfa.RuneRange{{Lo: 'a', Hi: 'f'}}, c.Ranges)
	assert.Len(t, c.Classes, 2)
	assert.True(t, c.Negated)
	assert.True(t, c.IncludesEOL)
}

func TestLoad_Errors(t *testing.T) {
	const header = "start: 0\naccept: 1\n"
	tests := []struct {
		name string
		doc  string
		is   error
		msg  string
	}{
		{
			name: "unknown kind",
			doc:  header + "states:\n  - id: 0\n    transitions:\n      - to: 1\n        matcher: {kind: lookahead}\n  - id: 1\n",
			is:   ErrUnknownKind,
		},
		{
			name: "dangling transition",
			doc:  header + "states:\n  - id: 0\n    transitions:\n      - to: 7\n  - id: 1\n",
			is:   ErrUnknownState,
		},
		{
			name: "dangling assertion",
			doc:  header + "states:\n  - id: 0\n    assertion: {start: 1, accept: 9}\n  - id: 1\n",
			is:   ErrUnknownState,
		},
		{
			name: "dangling accept",
			doc:  "start: 0\naccept: 4\nstates:\n  - id: 0\n",
			is:   ErrUnknownState,
		},
		{
			name: "duplicate state",
			doc:  header + "states:\n  - id: 0\n  - id: 1\n  - id: 1\n",
			is:   ErrDuplicateState,
		},
		{
			name: "negative group",
			doc:  header + "states:\n  - id: 0\n    start_capture: [-1]\n  - id: 1\n",
			msg:  "negative capture group",
		},
		{
			name: "unknown field",
			doc:  header + "colour: blue\nstates:\n  - id: 0\n  - id: 1\n",
			msg:  "decode",
		},
		{
			name: "bad char",
			doc:  header + "states:\n  - id: 0\n    transitions:\n      - to: 1\n        matcher: {kind: char, char: ab}\n  - id: 1\n",
			msg:  "exactly one character",
		},
		{
			name: "bad range",
			doc:  header + "states:\n  - id: 0\n    transitions:\n      - to: 1\n        matcher: {kind: collection, ranges: [z-a]}\n  - id: 1\n",
			msg:  "bad range",
		},
		{
			name: "bad relation",
			doc:  header + "states:\n  - id: 0\n    transitions:\n      - to: 1\n        matcher: {kind: line, line: 1, relation: near}\n  - id: 1\n",
			msg:  "unknown relation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}

func TestCaseBuffer(t *testing.T) {
	c := Case{Text: "abc", Cursors: []int{2}, Marks: map[string]int{"m": 1}, Selection: []int{0, 2}}
	b, err := c.Buffer()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, b.Cursors())
	off, ok := b.Mark('m')
	assert.True(t, ok)
	assert.Equal(t, 1, off)

	c.Selection = []int{1}
	_, err = c.Buffer()
	assert.Error(t, err)

	_, err = Want{Status: "maybe"}.StatusValue()
	assert.Error(t, err)
}
