package meta

import (
	"fmt"
	"strings"
)

// Strategy selects the simulation strategies an Engine runs.
type Strategy int

const (
	// UseAuto runs the implicit DFA first and falls back to the
	// backtracker when it is Incomplete. Results are never Incomplete.
	UseAuto Strategy = iota

	// UseBacktracker runs only the backtracker.
	UseBacktracker

	// UseImplicitDFA runs only the implicit DFA. Results may be
	// Incomplete; intended for diagnostics.
	UseImplicitDFA
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case UseAuto:
		return "auto"
	case UseBacktracker:
		return "backtrack"
	case UseImplicitDFA:
		return "dfa"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps the names printed by Strategy.String back to values.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return UseAuto, nil
	case "backtrack", "backtracker":
		return UseBacktracker, nil
	case "dfa", "implicit-dfa":
		return UseImplicitDFA, nil
	default:
		return UseAuto, &ConfigError{Field: "Strategy", Message: fmt.Sprintf("unknown strategy %q", name)}
	}
}
