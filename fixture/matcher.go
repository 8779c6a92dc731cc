package fixture

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/vimregex/nfa"
)

// MatcherSpec describes a matcher. Kind selects the matcher; the other
// fields apply to the kinds noted next to them.
type MatcherSpec struct {
	Kind string `yaml:"kind"`

	Char       string   `yaml:"char"`        // char
	IgnoreCase bool     `yaml:"ignore_case"` // char, collection, backref
	Chars      string   `yaml:"chars"`       // collection
	Ranges     []string `yaml:"ranges"`      // collection, "a-z"
	Classes    []string `yaml:"classes"`     // collection, unicode table names
	Negated    bool     `yaml:"negated"`     // collection
	EOL        bool     `yaml:"eol"`         // collection, wildcard

	Group    int    `yaml:"group"`    // backref
	Line     int    `yaml:"line"`     // line
	Column   int    `yaml:"column"`   // column
	Mark     string `yaml:"mark"`     // mark
	Relation string `yaml:"relation"` // line, column, mark, cursor_line
}

// classAliases names the tables behind Vim's character class atoms.
var classAliases = map[string]*unicode.RangeTable{
	"digit": unicode.Digit,
	"alpha": unicode.Letter,
	"lower": unicode.Lower,
	"upper": unicode.Upper,
	"space": unicode.White_Space,
	"punct": unicode.Punct,
}

// Matcher builds the nfa.Matcher described by s.
func (s MatcherSpec) Matcher() (nfa.Matcher, error) {
	switch s.Kind {
	case "", "epsilon":
		return nfa.Epsilon{}, nil
	case "char":
		r, err := singleRune(s.Char)
		if err != nil {
			return nil, fmt.Errorf("char: %w", err)
		}
		return nfa.Char{R: r, IgnoreCase: s.IgnoreCase}, nil
	case "collection":
		return s.collection()
	case "wildcard":
		return nfa.Wildcard{IncludesNewline: s.EOL}, nil
	case "backref":
		if s.Group < 0 {
			return nil, fmt.Errorf("backref: negative group %d", s.Group)
		}
		return nfa.BackReference{Group: s.Group, IgnoreCase: s.IgnoreCase}, nil
	case "start_of_word":
		return nfa.StartOfWord{}, nil
	case "end_of_word":
		return nfa.EndOfWord{}, nil
	case "start_of_line":
		return nfa.StartOfLine{}, nil
	case "end_of_line":
		return nfa.EndOfLine{}, nil
	case "start_of_file":
		return nfa.StartOfFile{}, nil
	case "end_of_file":
		return nfa.EndOfFile{}, nil
	case "cursor":
		return nfa.Cursor{}, nil
	case "visual":
		return nfa.Visual{}, nil
	}

	rel, err := parseRelation(s.Relation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Kind, err)
	}
	switch s.Kind {
	case "line":
		return nfa.Line{Line: s.Line, Relation: rel}, nil
	case "column":
		return nfa.Column{Column: s.Column, Relation: rel}, nil
	case "mark":
		r, err := singleRune(s.Mark)
		if err != nil {
			return nil, fmt.Errorf("mark: %w", err)
		}
		return nfa.Mark{Name: r, Relation: rel}, nil
	case "cursor_line":
		return nfa.CursorLine{Relation: rel}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, s.Kind)
}

func (s MatcherSpec) collection() (nfa.Matcher, error) {
	c := &nfa.Collection{
		Chars:       []rune(s.Chars),
		Negated:     s.Negated,
		IncludesEOL: s.EOL,
		IgnoreCase:  s.IgnoreCase,
	}
	for _, rg := range s.Ranges {
		rs := []rune(rg)
		if len(rs) != 3 || rs[1] != '-' || rs[0] > rs[2] {
			return nil, fmt.Errorf("collection: bad range %q", rg)
		}
		c.Ranges = append(c.Ranges, nfa.RuneRange{Lo: rs[0], Hi: rs[2]})
	}
	for _, name := range s.Classes {
		tab, ok := lookupClass(name)
		if !ok {
			return nil, fmt.Errorf("collection: unknown class %q", name)
		}
		c.Classes = append(c.Classes, tab)
	}
	return c, nil
}

func lookupClass(name string) (*unicode.RangeTable, bool) {
	if tab, ok := classAliases[name]; ok {
		return tab, true
	}
	for _, tables := range []map[string]*unicode.RangeTable{unicode.Categories, unicode.Scripts, unicode.Properties} {
		if tab, ok := tables[name]; ok {
			return tab, true
		}
	}
	return nil, false
}

func parseRelation(s string) (nfa.Relation, error) {
	switch s {
	case "", "at", "=":
		return nfa.At, nil
	case "before", "<":
		return nfa.Before, nil
	case "after", ">":
		return nfa.After, nil
	default:
		return nfa.At, fmt.Errorf("unknown relation %q", s)
	}
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("want exactly one character, got %q", s)
	}
	return r, nil
}
