// Package meta implements the dispatcher that runs compiled Vim-dialect
// automata against editor text.
//
// The dispatcher coordinates the two simulation strategies of package nfa:
//   - ImplicitDFA: single-pass state-set scan, tried first
//   - Backtracker: complete depth-first search, run when the scan is
//     Incomplete
//
// On top of single anchored simulations it provides repeated search
// (FindAt, FindAll) with an optional Aho-Corasick prefilter over the
// automaton's declared prefix literals.
package meta

import (
	"os"

	"github.com/charmbracelet/log"
)

// Config controls dispatcher behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.Strategy = meta.UseBacktracker // skip the fast scan
//	engine, err := meta.NewEngine(n, config)
type Config struct {
	// Strategy selects which simulation strategies run.
	// Default: UseAuto
	Strategy Strategy

	// EnablePrefilter enables the literal prefilter for repeated search.
	// It only applies to automata built with nfa.WithPrefixLiterals and to
	// case-sensitive searches.
	// Default: true
	EnablePrefilter bool

	// MaxMatches bounds the number of matches FindAll returns.
	// Zero means no limit.
	// Default: 0
	MaxMatches int

	// WrapScan makes FindAt continue from the start of the text when no
	// match is found after the start position, like Vim's 'wrapscan'.
	// Default: true
	WrapScan bool

	// Logger receives debug output about fallbacks and prefilter
	// construction. Nil selects the package default (warn level, stderr).
	Logger *log.Logger
}

var defaultLogger = log.NewWithOptions(os.Stderr, log.Options{
	Level:  log.WarnLevel,
	Prefix: "vimregex",
})

// DefaultConfig returns a configuration that runs the fast scan first and
// falls back to backtracking.
func DefaultConfig() Config {
	return Config{
		Strategy:        UseAuto,
		EnablePrefilter: true,
		WrapScan:        true,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Strategy: one of UseAuto, UseBacktracker, UseImplicitDFA
//   - MaxMatches: 0 (unlimited) or positive
func (c Config) Validate() error {
	if c.Strategy > UseImplicitDFA {
		return &ConfigError{
			Field:   "Strategy",
			Message: "unknown strategy " + c.Strategy.String(),
		}
	}
	if c.MaxMatches < 0 {
		return &ConfigError{
			Field:   "MaxMatches",
			Message: "must be zero (unlimited) or positive",
		}
	}
	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return defaultLogger
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "vimregex: invalid config: " + e.Field + ": " + e.Message
}
